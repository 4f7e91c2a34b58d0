package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voxelsplace/cubemesh/voxmesh"
)

// ParseCoord reads a chunk coordinate written as "x,y,z".
func ParseCoord(s string) (voxmesh.ChunkCoord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return voxmesh.ChunkCoord{}, fmt.Errorf("%w: coordinate %q, want x,y,z", voxmesh.ErrInvalidArgument, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return voxmesh.ChunkCoord{}, fmt.Errorf("%w: coordinate %q: %v", voxmesh.ErrInvalidArgument, s, err)
		}
		v[i] = n
	}
	return voxmesh.ChunkCoord{X: v[0], Y: v[1], Z: v[2]}, nil
}
