package utils

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/voxelsplace/cubemesh/api"
	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/index"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// RunWorld2Pack generates every chunk in from..to and writes them as one pack.
// When dbPath is set the records are also catalogued there.
func RunWorld2Pack(ctx context.Context, logger *log.Logger, cfg config.Config, from, to voxmesh.ChunkCoord, outPath, dbPath string) error {
	comp, err := cfg.Compression()
	if err != nil {
		return err
	}
	start := time.Now()
	pack, err := api.BuildWorldPack(cfg, from, to)
	if err != nil {
		return err
	}
	out, err := pack.Marshal(comp)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	logger.Printf("packed %d chunks (%s, %d workers) -> %s (%s) in %v",
		len(pack.Records), comp, cfg.PoolSize(), outPath, humanize.Bytes(uint64(len(out))), time.Since(start).Round(time.Millisecond))

	if dbPath == "" {
		return nil
	}
	cat, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer cat.Close()
	abs, err := filepath.Abs(outPath)
	if err != nil {
		abs = outPath
	}
	if err := cat.Record(ctx, abs, pack.Records); err != nil {
		return err
	}
	logger.Printf("catalogued %d chunks in %s", len(pack.Records), dbPath)
	return nil
}
