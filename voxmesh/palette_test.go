package voxmesh

import (
	"errors"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff000080")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	if c[0] != 1 || c[1] != 0 || c[2] != 0 || c[3] != float32(0x80)/255 {
		t.Fatalf("got %v", c)
	}
	c, err = ParseHexColor("#00ff00")
	if err != nil || c != (Color{0, 1, 0, 1}) {
		t.Fatalf("got %v, %v", c, err)
	}
	for _, bad := range []string{"", "ff0000", "#ff00", "#gg0000"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#000000", "#ffffff"})
	if err != nil || len(p) != 2 || !p.Opaque() {
		t.Fatalf("got %v, %v", p, err)
	}
	if _, err := ParsePalette(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty palette: got %v", err)
	}
	if DefaultPalette(0.5).Opaque() {
		t.Fatalf("half-alpha palette reported opaque")
	}
}
