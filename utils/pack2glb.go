package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/voxelsplace/cubemesh/api"
	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// RunPack2GLB rebuilds a pack into a .glb with one node per chunk.
func RunPack2GLB(logger *log.Logger, cfg config.Config, inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	out, err := api.PackToGLB(cfg, data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	logger.Printf("%s -> %s (%s)", inPath, outPath, humanize.Bytes(uint64(len(out))))
	return nil
}

// RunPackInfo logs the header and records of a pack. With verify set every
// record is rebuilt and checked against its digest.
func RunPackInfo(logger *log.Logger, inPath string, verify bool) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	pack, comp, err := voxmesh.UnmarshalPack(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	logger.Printf("%s: %s, %s, %d palette colors, %d records", inPath,
		humanize.Bytes(uint64(len(data))), comp, len(pack.Palette), len(pack.Records))
	var cubes int
	for i, r := range pack.Records {
		cubes += r.Cubes()
		logger.Printf("  %-20s %v size=%d layout=%s digest=%016x", r.Name, r.Coord, r.Size, r.Layout, r.Digest)
		if verify {
			if _, err := pack.Mesh(i); err != nil {
				return err
			}
		}
	}
	logger.Printf("total: %s cubes, %s vertices", humanize.Comma(int64(cubes)), humanize.Comma(int64(cubes*voxmesh.VerticesPerCube)))
	if verify {
		logger.Printf("all %d digests verified", len(pack.Records))
	}
	return nil
}
