//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/cubemesh/api"
	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// loadConfig reads an optional YAML config string at args[i].
func loadConfig(args []js.Value, i int) (config.Config, error) {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return config.Default(), nil
	}
	return config.Parse([]byte(args[i].String()))
}

func coordArg(args []js.Value) voxmesh.ChunkCoord {
	return voxmesh.ChunkCoord{X: args[0].Int(), Y: args[1].Int(), Z: args[2].Int()}
}

func toUint8Array(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

// chunk2glb(x, y, z, [yaml])
func chunk2glb(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return js.ValueOf("missing chunk coordinate")
	}
	cfg, err := loadConfig(args, 3)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.ChunkToGLB(cfg, coordArg(args))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// lattice2glb([yaml])
func lattice2glb(this js.Value, args []js.Value) any {
	cfg, err := loadConfig(args, 0)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.LatticeToGLB(cfg)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// latticeVolume([yaml])
func latticeVolume(this js.Value, args []js.Value) any {
	cfg, err := loadConfig(args, 0)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.LatticeVolume(cfg)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// world2pack(x0, y0, z0, x1, y1, z1, [yaml])
func world2pack(this js.Value, args []js.Value) any {
	if len(args) < 6 {
		return js.ValueOf("missing chunk box")
	}
	cfg, err := loadConfig(args, 6)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.WorldToPack(cfg, coordArg(args[0:3]), coordArg(args[3:6]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

// pack2glb(packBytes, [yaml])
func pack2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing pack bytes")
	}
	cfg, err := loadConfig(args, 1)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	out, err := api.PackToGLB(cfg, buf)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toUint8Array(out)
}

func main() {
	js.Global().Set("chunk2glb", js.FuncOf(chunk2glb))
	js.Global().Set("lattice2glb", js.FuncOf(lattice2glb))
	js.Global().Set("latticeVolume", js.FuncOf(latticeVolume))
	js.Global().Set("world2pack", js.FuncOf(world2pack))
	js.Global().Set("pack2glb", js.FuncOf(pack2glb))
	select {}
}
