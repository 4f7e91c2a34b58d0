package voxmesh

import (
	"io"
	"math/bits"
)

type bitWriter struct {
	buf []byte
	acc uint64
	n   uint8
}

func newBitWriter(capacity int) *bitWriter { return &bitWriter{buf: make([]byte, 0, capacity)} }

func (w *bitWriter) writeBits(v uint64, width uint8) {
	w.acc |= (v & ((1 << width) - 1)) << w.n
	w.n += width
	for w.n >= 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc >>= 8
		w.n -= 8
	}
}

func (w *bitWriter) bytes() []byte {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc = 0
		w.n = 0
	}
	return w.buf
}

type bitReader struct {
	data []byte
	acc  uint64
	n    uint8
	pos  int
}

func newBitReader(b []byte) *bitReader { return &bitReader{data: b} }

func (r *bitReader) readBits(width uint8) (uint64, error) {
	for r.n < width {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		r.acc |= uint64(r.data[r.pos]) << r.n
		r.n += 8
		r.pos++
	}
	v := r.acc & ((1 << width) - 1)
	r.acc >>= width
	r.n -= width
	return v, nil
}

// indexWidth is the number of bits needed to store a palette index.
func indexWidth(paletteLen int) uint8 {
	if paletteLen <= 2 {
		return 1
	}
	return uint8(bits.Len(uint(paletteLen - 1)))
}

func packIndices(vals []uint8, width uint8) []byte {
	bw := newBitWriter((len(vals)*int(width) + 7) / 8)
	for _, v := range vals {
		bw.writeBits(uint64(v), width)
	}
	return bw.bytes()
}

func unpackIndices(data []byte, count int, width uint8) ([]uint8, error) {
	br := newBitReader(data)
	out := make([]uint8, count)
	for i := range out {
		v, err := br.readBits(width)
		if err != nil {
			return nil, err
		}
		out[i] = uint8(v)
	}
	return out, nil
}
