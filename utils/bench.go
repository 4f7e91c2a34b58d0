package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/voxelsplace/cubemesh/api"
	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/fps"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// RunBench regenerates chunks one after another, treating each as a frame,
// and logs the rolling rate every reportEvery frames.
func RunBench(logger *log.Logger, cfg config.Config, frames, reportEvery int) error {
	if frames <= 0 {
		return fmt.Errorf("%w: frames %d", voxmesh.ErrInvalidArgument, frames)
	}
	if reportEvery <= 0 {
		reportEvery = fps.DefaultWindow
	}
	meter := fps.New(fps.DefaultWindow)
	start := time.Now()
	var vertices int
	for i := 0; i < frames; i++ {
		mesh, err := api.Chunk(cfg, voxmesh.ChunkCoord{X: i})
		if err != nil {
			return err
		}
		vertices += len(mesh.Vertices)
		meter.Tick()
		if (i+1)%reportEvery == 0 {
			logger.Printf("frame %d: %.1f chunks/s", i+1, meter.Rate())
		}
	}
	elapsed := time.Since(start)
	logger.Printf("%d chunks of %d^3, %s vertices in %v", frames, cfg.ChunkSize,
		humanize.Comma(int64(vertices)), elapsed.Round(time.Millisecond))
	return nil
}
