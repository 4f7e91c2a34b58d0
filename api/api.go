package api

import (
	"fmt"

	"github.com/alitto/pond/v2"

	"github.com/voxelsplace/cubemesh/config"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

// Chunk meshes the chunk at coord with a per-chunk seed derived from cfg.Seed.
func Chunk(cfg config.Config, coord voxmesh.ChunkCoord) (*voxmesh.Mesh, error) {
	opts, err := cfg.ChunkOptions()
	if err != nil {
		return nil, err
	}
	return voxmesh.GenerateChunkWithOptions(coord, opts, voxmesh.NewSeededSource(voxmesh.ChunkSeed(cfg.Seed, coord)))
}

// ChunkToGLB meshes one chunk and returns it as .glb bytes.
func ChunkToGLB(cfg config.Config, coord voxmesh.ChunkCoord) ([]byte, error) {
	mesh, err := Chunk(cfg, coord)
	if err != nil {
		return nil, err
	}
	world, err := cfg.WorldTransform()
	if err != nil {
		return nil, err
	}
	scene := newScene("cubemesh chunk -> GLB", world)
	scene.add(recordName(coord), mesh)
	return scene.encode()
}

// LatticeToGLB builds the slab lattice from cfg.Lattice and returns it as .glb
// bytes. The cell color volume rides along in the lattice mesh's extras.
func LatticeToGLB(cfg config.Config) ([]byte, error) {
	opts, err := cfg.LatticeOptions()
	if err != nil {
		return nil, err
	}
	mesh, err := voxmesh.GenerateLattice(opts)
	if err != nil {
		return nil, err
	}
	world, err := cfg.WorldTransform()
	if err != nil {
		return nil, err
	}
	vol, err := cfg.LatticeVolume()
	if err != nil {
		return nil, err
	}
	scene := newScene("cubemesh lattice -> GLB", world)
	scene.attachVolume(scene.add("Lattice", mesh), vol)
	return scene.encode()
}

// LatticeVolume returns the configured lattice color volume in host layout.
func LatticeVolume(cfg config.Config) ([]byte, error) {
	vol, err := cfg.LatticeVolume()
	if err != nil {
		return nil, err
	}
	return vol.Bytes(), nil
}

// CoordsBetween lists the chunk coordinates of the inclusive box from..to,
// x outermost.
func CoordsBetween(from, to voxmesh.ChunkCoord) ([]voxmesh.ChunkCoord, error) {
	if from.X > to.X || from.Y > to.Y || from.Z > to.Z {
		return nil, fmt.Errorf("%w: empty chunk box %v..%v", voxmesh.ErrInvalidArgument, from, to)
	}
	n := (to.X - from.X + 1) * (to.Y - from.Y + 1) * (to.Z - from.Z + 1)
	out := make([]voxmesh.ChunkCoord, 0, n)
	for x := from.X; x <= to.X; x++ {
		for y := from.Y; y <= to.Y; y++ {
			for z := from.Z; z <= to.Z; z++ {
				out = append(out, voxmesh.ChunkCoord{X: x, Y: y, Z: z})
			}
		}
	}
	return out, nil
}

// BuildWorldPack generates every chunk in from..to on a worker pool. Each
// task owns its seeded source and buffers, so the pack does not depend on
// the pool size.
func BuildWorldPack(cfg config.Config, from, to voxmesh.ChunkCoord) (*voxmesh.Pack, error) {
	opts, err := cfg.ChunkOptions()
	if err != nil {
		return nil, err
	}
	coords, err := CoordsBetween(from, to)
	if err != nil {
		return nil, err
	}

	pool := pond.NewResultPool[voxmesh.ChunkRecord](cfg.PoolSize())
	defer pool.StopAndWait()
	group := pool.NewGroup()
	for _, c := range coords {
		group.SubmitErr(func() (voxmesh.ChunkRecord, error) {
			_, rec, err := voxmesh.RecordChunk(c, opts, voxmesh.NewSeededSource(voxmesh.ChunkSeed(cfg.Seed, c)))
			if err != nil {
				return voxmesh.ChunkRecord{}, fmt.Errorf("chunk %v: %w", c, err)
			}
			return rec, nil
		})
	}
	records, err := group.Wait()
	if err != nil {
		return nil, err
	}
	return &voxmesh.Pack{Palette: opts.Palette, Records: records}, nil
}

// WorldToPack builds and encodes a world pack with cfg's compression.
func WorldToPack(cfg config.Config, from, to voxmesh.ChunkCoord) ([]byte, error) {
	comp, err := cfg.Compression()
	if err != nil {
		return nil, err
	}
	pack, err := BuildWorldPack(cfg, from, to)
	if err != nil {
		return nil, err
	}
	return pack.Marshal(comp)
}

// PackToGLB rebuilds every record of a pack, one glTF node per chunk.
func PackToGLB(cfg config.Config, packBytes []byte) ([]byte, error) {
	pack, _, err := voxmesh.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	if len(pack.Records) == 0 {
		return nil, fmt.Errorf("%w: pack has no records", voxmesh.ErrInvalidArgument)
	}
	world, err := cfg.WorldTransform()
	if err != nil {
		return nil, err
	}
	scene := newScene("cubemesh pack -> GLB", world)
	for i, rec := range pack.Records {
		mesh, err := pack.Mesh(i)
		if err != nil {
			return nil, err
		}
		scene.add(rec.Name, mesh)
	}
	return scene.encode()
}

func recordName(c voxmesh.ChunkCoord) string {
	return fmt.Sprintf("chunk_%d_%d_%d", c.X, c.Y, c.Z)
}
