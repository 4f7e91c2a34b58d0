//go:build !(js && wasm)

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/utils"
)

func usage() {
	fmt.Println("Usage: cubemesh [flags] <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  chunk2glb x,y,z output.glb                 (mesh one random-colored chunk -> .glb)")
	fmt.Println("  lattice2glb output.glb                     (slab lattice from config -> .glb)")
	fmt.Println("  lattice2vol output.bin                     (lattice cell color volume, host layout)")
	fmt.Println("  world2pack x0,y0,z0 x1,y1,z1 output.cmpack (generate every chunk in the box -> pack)")
	fmt.Println("  pack2glb input.cmpack output.glb           (rebuild a pack -> .glb, one node per chunk)")
	fmt.Println("  packinfo input.cmpack                      (list pack records)")
	fmt.Println("  bench <frames>                             (regenerate chunks and report chunks/s)")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func main() {
	var (
		configPath = flag.String("config", "", "path to cubemesh.yaml (default: built-in settings)")
		dbPath     = flag.String("db", "", "sqlite catalog to record packed chunks in (world2pack)")
		verify     = flag.Bool("verify", false, "rebuild every record and check its digest (packinfo)")
		workers    = flag.Int("workers", -1, "worker pool size override, 0 = one per CPU")
		seed       = flag.String("seed", "", "world seed override")
	)
	flag.Usage = usage
	flag.Parse()

	logger := log.New(os.Stdout, "[cubemesh] ", log.LstdFlags|log.Lmicroseconds)

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *seed != "" {
		s, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			fail(fmt.Errorf("seed: %w", err))
		}
		cfg.Seed = s
	}

	switch args[0] {
	case "chunk2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		coord, err := utils.ParseCoord(args[1])
		if err != nil {
			fail(err)
		}
		err = utils.RunChunk2GLB(logger, cfg, coord, args[2])
		if err != nil {
			fail(err)
		}
	case "lattice2glb":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunLattice2GLB(logger, cfg, args[1]); err != nil {
			fail(err)
		}
	case "lattice2vol":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunLatticeVolume(logger, cfg, args[1]); err != nil {
			fail(err)
		}
	case "world2pack":
		if len(args) != 4 {
			usage()
			os.Exit(1)
		}
		from, err := utils.ParseCoord(args[1])
		if err != nil {
			fail(err)
		}
		to, err := utils.ParseCoord(args[2])
		if err != nil {
			fail(err)
		}
		if err := utils.RunWorld2Pack(context.Background(), logger, cfg, from, to, args[3], *dbPath); err != nil {
			fail(err)
		}
	case "pack2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunPack2GLB(logger, cfg, args[1], args[2]); err != nil {
			fail(err)
		}
	case "packinfo":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunPackInfo(logger, args[1], *verify); err != nil {
			fail(err)
		}
	case "bench":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		var frames int
		if _, err := fmt.Sscan(args[1], &frames); err != nil {
			fail(err)
		}
		if err := utils.RunBench(logger, cfg, frames, 0); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}
