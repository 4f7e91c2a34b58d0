package voxmesh

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/klauspost/compress/zstd"
)

// PackCompression indicates the compression used for the pack content section.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

func (c PackCompression) String() string {
	switch c {
	case PackCompNone:
		return "none"
	case PackCompZlib:
		return "zlib"
	case PackCompZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// ParsePackCompression accepts the names produced by PackCompression.String.
func ParsePackCompression(s string) (PackCompression, error) {
	switch s {
	case "none":
		return PackCompNone, nil
	case "zlib":
		return PackCompZlib, nil
	case "", "zstd":
		return PackCompZstd, nil
	}
	return 0, fmt.Errorf("%w: unknown pack compression %q", ErrInvalidArgument, s)
}

const (
	packMagic   = "CMSHPACK"
	packVersion = 1

	// MaxPackPalette is the largest palette a pack can index.
	MaxPackPalette = 256
)

// ChunkRecord is a chunk stored by its palette draws rather than its
// geometry; the mesh is rebuilt on demand and checked against Digest.
type ChunkRecord struct {
	Name   string
	Coord  ChunkCoord
	Size   int
	Layout Layout
	// Colors holds one palette index per cube in generation order.
	Colors []uint8
	Digest uint64
}

// Cubes is the number of cubes in the record's chunk.
func (r ChunkRecord) Cubes() int { return r.Size * r.Size * r.Size }

// Pack is a set of chunk records sharing one palette.
type Pack struct {
	Palette Palette
	Records []ChunkRecord
}

// minRecordBytes is the encoded size of a record with an empty name and payload.
var minRecordBytes = 2 + binary.Size(recordHeader{})

type recordHeader struct {
	X, Y, Z    int32
	Size       uint16
	Layout     uint8
	Digest     uint64
	PayloadLen uint32
}

// Marshal encodes the pack. Records are written in Morton order of their
// coordinates, so a decoded pack lists them in that order.
func (p *Pack) Marshal(comp PackCompression) ([]byte, error) {
	if len(p.Palette) == 0 || len(p.Palette) > MaxPackPalette {
		return nil, fmt.Errorf("%w: pack palette has %d colors", ErrInvalidArgument, len(p.Palette))
	}
	width := indexWidth(len(p.Palette))

	var content bytes.Buffer
	_ = binary.Write(&content, binary.LittleEndian, uint16(len(p.Palette)))
	for _, c := range p.Palette {
		_ = binary.Write(&content, binary.LittleEndian, c)
	}
	content.Write(writeUVarint(nil, uint32(len(p.Records))))

	records := slices.Clone(p.Records)
	slices.SortStableFunc(records, func(a, b ChunkRecord) int {
		ka, kb := MortonKey(a.Coord), MortonKey(b.Coord)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
	for _, r := range records {
		if err := r.check(len(p.Palette)); err != nil {
			return nil, err
		}
		nb := []byte(r.Name)
		if len(nb) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: record name too long: %s", ErrInvalidArgument, r.Name)
		}
		payload := packIndices(r.Colors, width)
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, recordHeader{
			X: int32(r.Coord.X), Y: int32(r.Coord.Y), Z: int32(r.Coord.Z),
			Size:       uint16(r.Size),
			Layout:     uint8(r.Layout),
			Digest:     r.Digest,
			PayloadLen: uint32(len(payload)),
		})
		content.Write(payload)
	}

	var final []byte
	switch comp {
	case PackCompNone:
		final = content.Bytes()
	case PackCompZlib:
		var buf bytes.Buffer
		zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		final = buf.Bytes()
	case PackCompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		final = enc.EncodeAll(content.Bytes(), nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("%w: unsupported compression %d", ErrInvalidArgument, comp)
	}

	var out bytes.Buffer
	out.WriteString(packMagic)
	out.WriteByte(packVersion)
	out.WriteByte(byte(comp))
	out.Write(final)
	return out.Bytes(), nil
}

func (r ChunkRecord) check(paletteLen int) error {
	if !InMortonRange(r.Coord) {
		return fmt.Errorf("%w: record %s at %v outside [%d,%d)", ErrInvalidArgument, r.Name, r.Coord, -MortonCoordLimit, MortonCoordLimit)
	}
	if r.Size <= 0 || r.Size > math.MaxUint16 {
		return fmt.Errorf("%w: record %s has size %d", ErrInvalidArgument, r.Name, r.Size)
	}
	if len(r.Colors) != r.Cubes() {
		return fmt.Errorf("%w: record %s has %d colors for %d cubes", ErrInvalidArgument, r.Name, len(r.Colors), r.Cubes())
	}
	for i, c := range r.Colors {
		if int(c) >= paletteLen {
			return fmt.Errorf("%w: record %s color %d at %d outside palette", ErrInvalidArgument, r.Name, c, i)
		}
	}
	return nil
}

// UnmarshalPack parses a pack and reports the compression it used.
func UnmarshalPack(data []byte) (*Pack, PackCompression, error) {
	if len(data) < len(packMagic)+2 || string(data[:len(packMagic)]) != packMagic {
		return nil, 0, fmt.Errorf("%w: missing %s header", ErrBadPack, packMagic)
	}
	if v := data[len(packMagic)]; v != packVersion {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrBadPack, v)
	}
	comp := PackCompression(data[len(packMagic)+1])
	content := data[len(packMagic)+2:]
	switch comp {
	case PackCompNone:
	case PackCompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(content))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrBadPack, err)
		}
		defer zr.Close()
		b, err := io.ReadAll(zr)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrBadPack, err)
		}
		content = b
	case PackCompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		b, err := dec.DecodeAll(content, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrBadPack, err)
		}
		content = b
	default:
		return nil, 0, fmt.Errorf("%w: unknown compression %d", ErrBadPack, comp)
	}

	pack, err := decodeContent(content)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrBadPack, err)
	}
	return pack, comp, nil
}

func decodeContent(content []byte) (*Pack, error) {
	r := bytes.NewReader(content)
	var nColors uint16
	if err := binary.Read(r, binary.LittleEndian, &nColors); err != nil {
		return nil, err
	}
	if nColors == 0 || int(nColors) > MaxPackPalette {
		return nil, fmt.Errorf("palette has %d colors", nColors)
	}
	palette := make(Palette, nColors)
	if err := binary.Read(r, binary.LittleEndian, palette); err != nil {
		return nil, err
	}
	width := indexWidth(len(palette))

	pos := len(content) - r.Len()
	n, err := readUVarint(content, &pos)
	if err != nil {
		return nil, err
	}
	r = bytes.NewReader(content[pos:])

	if int64(n) > int64(r.Len()/minRecordBytes) {
		return nil, fmt.Errorf("%d records cannot fit in %d bytes", n, r.Len())
	}
	pack := &Pack{Palette: palette, Records: make([]ChunkRecord, 0, n)}
	for i := uint32(0); i < n; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}
		var h recordHeader
		if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
			return nil, err
		}
		if int64(h.PayloadLen) > int64(r.Len()) {
			return nil, fmt.Errorf("record %s: payload of %d bytes exceeds remaining %d", name, h.PayloadLen, r.Len())
		}
		cubes := int64(h.Size) * int64(h.Size) * int64(h.Size)
		if want := (cubes*int64(width) + 7) / 8; want != int64(h.PayloadLen) {
			return nil, fmt.Errorf("record %s: payload of %d bytes, want %d", name, h.PayloadLen, want)
		}
		payload := make([]byte, h.PayloadLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		rec := ChunkRecord{
			Name:   string(name),
			Coord:  ChunkCoord{int(h.X), int(h.Y), int(h.Z)},
			Size:   int(h.Size),
			Layout: Layout(h.Layout),
			Digest: h.Digest,
		}
		colors, err := unpackIndices(payload, rec.Cubes(), width)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.Name, err)
		}
		rec.Colors = colors
		if err := rec.check(len(palette)); err != nil {
			return nil, err
		}
		pack.Records = append(pack.Records, rec)
	}
	return pack, nil
}

// Mesh rebuilds record i and verifies it against the recorded digest.
func (p *Pack) Mesh(i int) (*Mesh, error) {
	if i < 0 || i >= len(p.Records) {
		return nil, fmt.Errorf("%w: record %d of %d", ErrInvalidArgument, i, len(p.Records))
	}
	rec := p.Records[i]
	if err := rec.check(len(p.Palette)); err != nil {
		return nil, err
	}
	opts := ChunkOptions{Size: rec.Size, Layout: rec.Layout, Palette: p.Palette}
	mesh, err := GenerateChunkWithOptions(rec.Coord, opts, NewReplaySource(rec.Colors))
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.Name, err)
	}
	if d := mesh.Digest(); d != rec.Digest {
		return nil, fmt.Errorf("%w: record %s has %016x, rebuilt %016x", ErrDigestMismatch, rec.Name, rec.Digest, d)
	}
	return mesh, nil
}

func writeUVarint(dst []byte, x uint32) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

func readUVarint(src []byte, pos *int) (uint32, error) {
	var x uint32
	var s uint
	for i := *pos; i < len(src); i++ {
		b := src[i]
		if b < 0x80 {
			if s == 28 && b > 0x0F {
				return 0, fmt.Errorf("uvarint overflows uint32")
			}
			*pos = i + 1
			return x | uint32(b)<<s, nil
		}
		x |= uint32(b&0x7F) << s
		s += 7
		if s > 28 {
			return 0, fmt.Errorf("uvarint overflows uint32")
		}
	}
	return 0, io.ErrUnexpectedEOF
}
