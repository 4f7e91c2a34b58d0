package utils

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/index"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

func TestParseCoord(t *testing.T) {
	c, err := ParseCoord("1, -2,3")
	if err != nil || c != (voxmesh.ChunkCoord{X: 1, Y: -2, Z: 3}) {
		t.Fatalf("ParseCoord = %v, %v", c, err)
	}
	for _, bad := range []string{"", "1,2", "1,2,x", "1,2,3,4"} {
		if _, err := ParseCoord(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestWorldPackCommands(t *testing.T) {
	dir := t.TempDir()
	logger, logs := testLogger()
	cfg := config.Default()
	cfg.ChunkSize = 2

	packPath := filepath.Join(dir, "out", "world.cmpack")
	dbPath := filepath.Join(dir, "index.sqlite")
	err := RunWorld2Pack(context.Background(), logger, cfg, voxmesh.ChunkCoord{}, voxmesh.ChunkCoord{X: 1, Z: 1}, packPath, dbPath)
	if err != nil {
		t.Fatalf("RunWorld2Pack failed: %v", err)
	}
	if !strings.Contains(logs.String(), "packed 4 chunks") {
		t.Fatalf("unexpected log output:\n%s", logs.String())
	}

	cat, err := index.Open(dbPath)
	if err != nil {
		t.Fatalf("index.Open failed: %v", err)
	}
	entries, err := cat.List(context.Background())
	cat.Close()
	if err != nil || len(entries) != 4 {
		t.Fatalf("catalog has %d entries, err %v", len(entries), err)
	}

	if err := RunPackInfo(logger, packPath, true); err != nil {
		t.Fatalf("RunPackInfo failed: %v", err)
	}
	if !strings.Contains(logs.String(), "all 4 digests verified") {
		t.Fatalf("unexpected log output:\n%s", logs.String())
	}

	glbPath := filepath.Join(dir, "world.glb")
	if err := RunPack2GLB(logger, cfg, packPath, glbPath); err != nil {
		t.Fatalf("RunPack2GLB failed: %v", err)
	}
	if fi, err := os.Stat(glbPath); err != nil || fi.Size() == 0 {
		t.Fatalf("glb not written: %v", err)
	}
}

func TestChunkAndLatticeCommands(t *testing.T) {
	dir := t.TempDir()
	logger, _ := testLogger()
	cfg := config.Default()
	cfg.ChunkSize = 1
	cfg.Lattice.Dims = []int{2, 2, 2}

	if err := RunChunk2GLB(logger, cfg, voxmesh.ChunkCoord{}, filepath.Join(dir, "chunk.glb")); err != nil {
		t.Fatalf("RunChunk2GLB failed: %v", err)
	}
	if err := RunLattice2GLB(logger, cfg, filepath.Join(dir, "lattice.glb")); err != nil {
		t.Fatalf("RunLattice2GLB failed: %v", err)
	}
	volPath := filepath.Join(dir, "lattice.bin")
	if err := RunLatticeVolume(logger, cfg, volPath); err != nil {
		t.Fatalf("RunLatticeVolume failed: %v", err)
	}
	if fi, err := os.Stat(volPath); err != nil || fi.Size() != 12+4*8 {
		t.Fatalf("volume file: %v", err)
	}
}

func TestRunBench(t *testing.T) {
	logger, logs := testLogger()
	cfg := config.Default()
	cfg.ChunkSize = 2
	if err := RunBench(logger, cfg, 5, 5); err != nil {
		t.Fatalf("RunBench failed: %v", err)
	}
	if !strings.Contains(logs.String(), "frame 5:") {
		t.Fatalf("unexpected log output:\n%s", logs.String())
	}
	if err := RunBench(logger, cfg, 0, 1); err == nil {
		t.Fatalf("expected error for zero frames")
	}
}
