package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/voxelsplace/cubemesh/transform"
	"github.com/voxelsplace/cubemesh/voxmesh"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ChunkSize int      `yaml:"chunk_size"`
	Layout    string   `yaml:"layout"`
	Alpha     float32  `yaml:"alpha"`
	Palette   []string `yaml:"palette,omitempty"`
	Seed      uint64   `yaml:"seed"`
	Workers   int      `yaml:"workers"`

	Lattice Lattice `yaml:"lattice"`
	Pack    Pack    `yaml:"pack"`
	World   World   `yaml:"world"`
}

type Lattice struct {
	Dims  []int   `yaml:"dims"`
	Color string  `yaml:"color"`
	Inset float32 `yaml:"inset"`
	// Fill is "checkerboard" or "solid" (every cell gets Color).
	Fill string `yaml:"fill"`
}

type Pack struct {
	Compression string `yaml:"compression"`
}

// World places generated geometry in the exported scene.
type World struct {
	Translation  []float32 `yaml:"translation"`
	RotationAxis []float32 `yaml:"rotation_axis"`
	RotationDeg  float32   `yaml:"rotation_deg"`
	Scale        []float32 `yaml:"scale"`
}

func Default() Config {
	return Config{
		ChunkSize: 16,
		Layout:    "zero",
		Alpha:     0.5,
		Seed:      1337,
		Workers:   0,
		Lattice: Lattice{
			Dims:  []int{128, 32, 128},
			Color: "#ff000080",
			Inset: 0.001,
			Fill:  "checkerboard",
		},
		Pack: Pack{Compression: "zstd"},
		World: World{
			Translation:  []float32{0, 0, 0},
			RotationAxis: []float32{0, 1, 0},
			RotationDeg:  0,
			Scale:        []float32{1, 1, 1},
		},
	}
}

// Load reads a YAML file over Default. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.ChunkOptions(); err != nil {
		return err
	}
	if _, err := c.LatticeOptions(); err != nil {
		return err
	}
	if _, err := c.LatticeVolume(); err != nil {
		return err
	}
	if _, err := c.Compression(); err != nil {
		return err
	}
	if _, err := c.WorldTransform(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// PoolSize is Workers, or the CPU count when Workers is 0.
func (c Config) PoolSize() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

func (c Config) PaletteColors() (voxmesh.Palette, error) {
	if len(c.Palette) == 0 {
		if c.Alpha < 0 || c.Alpha > 1 {
			return nil, fmt.Errorf("%w: alpha %v outside [0,1]", ErrInvalidConfig, c.Alpha)
		}
		return voxmesh.DefaultPalette(c.Alpha), nil
	}
	p, err := voxmesh.ParsePalette(c.Palette)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return p, nil
}

func (c Config) ChunkOptions() (voxmesh.ChunkOptions, error) {
	layout, err := voxmesh.ParseLayout(c.Layout)
	if err != nil {
		return voxmesh.ChunkOptions{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	palette, err := c.PaletteColors()
	if err != nil {
		return voxmesh.ChunkOptions{}, err
	}
	if c.ChunkSize <= 0 {
		return voxmesh.ChunkOptions{}, fmt.Errorf("%w: chunk_size %d", ErrInvalidConfig, c.ChunkSize)
	}
	if layout == voxmesh.LayoutCentered && c.ChunkSize%2 != 0 {
		return voxmesh.ChunkOptions{}, fmt.Errorf("%w: centered layout needs an even chunk_size, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	return voxmesh.ChunkOptions{Size: c.ChunkSize, Layout: layout, Palette: palette}, nil
}

func (c Config) LatticeOptions() (voxmesh.LatticeOptions, error) {
	if len(c.Lattice.Dims) != 3 {
		return voxmesh.LatticeOptions{}, fmt.Errorf("%w: lattice.dims needs 3 values, got %d", ErrInvalidConfig, len(c.Lattice.Dims))
	}
	color, err := voxmesh.ParseHexColor(c.Lattice.Color)
	if err != nil {
		return voxmesh.LatticeOptions{}, fmt.Errorf("%w: lattice.color: %v", ErrInvalidConfig, err)
	}
	opts := voxmesh.LatticeOptions{Color: color, Inset: c.Lattice.Inset}
	for i, d := range c.Lattice.Dims {
		if d <= 0 {
			return voxmesh.LatticeOptions{}, fmt.Errorf("%w: lattice.dims[%d] = %d", ErrInvalidConfig, i, d)
		}
		opts.Dims[i] = d
	}
	if opts.Inset < 0 {
		return voxmesh.LatticeOptions{}, fmt.Errorf("%w: lattice.inset %v", ErrInvalidConfig, opts.Inset)
	}
	return opts, nil
}

// LatticeVolume builds the per-cell color volume for the lattice.
func (c Config) LatticeVolume() (*voxmesh.LatticeVolume, error) {
	opts, err := c.LatticeOptions()
	if err != nil {
		return nil, err
	}
	vol, err := voxmesh.NewLatticeVolume(opts.Dims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Lattice.Fill {
	case "", "checkerboard":
		vol.FillCheckerboard()
	case "solid":
		vol.Fill(opts.Color)
	default:
		return nil, fmt.Errorf("%w: lattice.fill %q", ErrInvalidConfig, c.Lattice.Fill)
	}
	return vol, nil
}

func (c Config) Compression() (voxmesh.PackCompression, error) {
	comp, err := voxmesh.ParsePackCompression(c.Pack.Compression)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return comp, nil
}

// WorldTransform builds the scene root transform. A zero rotation axis
// means no rotation.
func (c Config) WorldTransform() (transform.Transform, error) {
	t, err := vec3(c.World.Translation, "world.translation", mgl32.Vec3{})
	if err != nil {
		return transform.Transform{}, err
	}
	s, err := vec3(c.World.Scale, "world.scale", mgl32.Vec3{1, 1, 1})
	if err != nil {
		return transform.Transform{}, err
	}
	axis, err := vec3(c.World.RotationAxis, "world.rotation_axis", mgl32.Vec3{0, 1, 0})
	if err != nil {
		return transform.Transform{}, err
	}
	rot := mgl32.QuatIdent()
	if axis.LenSqr() > 0 && c.World.RotationDeg != 0 {
		rot = mgl32.QuatRotate(mgl32.DegToRad(c.World.RotationDeg), axis.Normalize())
	}
	return transform.FromTranslationRotationScale(t, rot, s), nil
}

func vec3(v []float32, name string, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl32.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrInvalidConfig, name, len(v))
}
