package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/cubemesh/transform"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	opts, err := cfg.ChunkOptions()
	if err != nil {
		t.Fatalf("ChunkOptions failed: %v", err)
	}
	if opts.Size != 16 || opts.Layout != voxmesh.LayoutZeroBased || len(opts.Palette) != 8 {
		t.Fatalf("unexpected default chunk options %+v", opts)
	}
	comp, _ := cfg.Compression()
	if comp != voxmesh.PackCompZstd {
		t.Fatalf("default compression %s", comp)
	}
	world, _ := cfg.WorldTransform()
	if !world.ApproxEqual(transform.FromIdentity(), 1e-6) {
		t.Fatalf("default world transform %+v", world)
	}
}

func TestParseOverrides(t *testing.T) {
	raw := []byte(`
chunk_size: 4
layout: centered
palette: ["#ff0000", "#00ff00ff"]
seed: 7
workers: 3
pack:
  compression: zlib
world:
  translation: [1, 0, 0]
  rotation_axis: [0, 2, 0]
  rotation_deg: 90
  scale: [2, 1, 1]
`)
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Seed != 7 || cfg.PoolSize() != 3 {
		t.Fatalf("seed %d workers %d", cfg.Seed, cfg.PoolSize())
	}
	opts, err := cfg.ChunkOptions()
	if err != nil {
		t.Fatalf("ChunkOptions failed: %v", err)
	}
	if opts.Size != 4 || opts.Layout != voxmesh.LayoutCentered || len(opts.Palette) != 2 {
		t.Fatalf("chunk options %+v", opts)
	}
	// untouched sections keep their defaults
	if cfg.Lattice.Inset != 0.001 || len(cfg.Lattice.Dims) != 3 {
		t.Fatalf("lattice defaults lost: %+v", cfg.Lattice)
	}
	world, err := cfg.WorldTransform()
	if err != nil {
		t.Fatalf("WorldTransform failed: %v", err)
	}
	got := world.ApplyToPoint(mgl32.Vec3{0, 0, 1})
	if !transform.VecNear(got, mgl32.Vec3{2, 0, 0}, 1e-5) {
		t.Fatalf("world maps (0,0,1) to %v", got)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"size":        "chunk_size: 0",
		"odd center":  "chunk_size: 3\nlayout: centered",
		"layout":      "layout: spiral",
		"alpha":       "alpha: 2",
		"palette":     `palette: ["red"]`,
		"workers":     "workers: -2",
		"compression": "pack:\n  compression: lz4",
		"dims":        "lattice:\n  dims: [1, 2]",
		"dims zero":   "lattice:\n  dims: [1, 0, 2]",
		"inset":       "lattice:\n  inset: -1",
		"fill":        "lattice:\n  fill: stripes",
		"scale":       "world:\n  scale: [1, 1]",
		"yaml":        "chunk_size: [",
	}
	for name, raw := range cases {
		if _, err := Parse([]byte(raw)); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: got %v, want ErrInvalidConfig", name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.ChunkSize != Default().ChunkSize {
		t.Fatalf("Load(\"\") = %+v, %v", cfg, err)
	}
	path := filepath.Join(t.TempDir(), "cubemesh.yaml")
	if err := os.WriteFile(path, []byte("chunk_size: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = Load(path)
	if err != nil || cfg.ChunkSize != 1 {
		t.Fatalf("Load = %+v, %v", cfg, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestLatticeVolume(t *testing.T) {
	cfg := Default()
	cfg.Lattice.Dims = []int{2, 2, 2}
	vol, err := cfg.LatticeVolume()
	if err != nil {
		t.Fatalf("LatticeVolume failed: %v", err)
	}
	if vol.At(0, 0, 0) != 0xBBFFFFFF {
		t.Fatalf("default fill is not the checkerboard: %08x", vol.At(0, 0, 0))
	}
	cfg.Lattice.Fill = "solid"
	vol, err = cfg.LatticeVolume()
	if err != nil {
		t.Fatalf("LatticeVolume failed: %v", err)
	}
	// lattice.color defaults to #ff000080
	if vol.At(1, 1, 1) != 0x800000FF {
		t.Fatalf("solid fill %08x", vol.At(1, 1, 1))
	}
}
