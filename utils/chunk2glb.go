package utils

import (
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/voxelsplace/cubemesh/api"
	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// RunChunk2GLB meshes the chunk at coord and writes it to outPath.
func RunChunk2GLB(logger *log.Logger, cfg config.Config, coord voxmesh.ChunkCoord, outPath string) error {
	out, err := api.ChunkToGLB(cfg, coord)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	cubes := cfg.ChunkSize * cfg.ChunkSize * cfg.ChunkSize
	logger.Printf("chunk %v: %s cubes, %s vertices -> %s (%s)", coord,
		humanize.Comma(int64(cubes)), humanize.Comma(int64(cubes*voxmesh.VerticesPerCube)),
		outPath, humanize.Bytes(uint64(len(out))))
	return nil
}

// RunLattice2GLB writes the configured slab lattice to outPath.
func RunLattice2GLB(logger *log.Logger, cfg config.Config, outPath string) error {
	out, err := api.LatticeToGLB(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	d := cfg.Lattice.Dims
	logger.Printf("lattice %dx%dx%d: %s faces -> %s (%s)", d[0], d[1], d[2],
		humanize.Comma(int64(2*(d[0]+d[1]+d[2]))), outPath, humanize.Bytes(uint64(len(out))))
	return nil
}

// RunLatticeVolume writes the configured lattice color volume in host layout.
func RunLatticeVolume(logger *log.Logger, cfg config.Config, outPath string) error {
	out, err := api.LatticeVolume(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	logger.Printf("lattice volume (%s fill) -> %s (%s)", cfg.Lattice.Fill, outPath, humanize.Bytes(uint64(len(out))))
	return nil
}
