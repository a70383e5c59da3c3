package koipond

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadTTFFontInvalid(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a font"), 12); err == nil {
		t.Fatal("expected an error for invalid TTF data")
	}
}

func TestLoadTTFFont(t *testing.T) {
	f, err := LoadTTFFont(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("LoadTTFFont: %v", err)
	}
	if f.LineHeight() <= 16 || f.Face().Size != 16 {
		t.Errorf("line height %v, size %v", f.LineHeight(), f.Face().Size)
	}
	w1, h1 := f.MeasureString("koi")
	w2, _ := f.MeasureString("koi koi")
	if w1 <= 0 || h1 <= 0 || w2 <= w1 {
		t.Errorf("MeasureString: %v x %v, longer %v", w1, h1, w2)
	}
}

func TestFaceCache(t *testing.T) {
	var c faceCache
	if c.face(0) != nil || c.face(-3) != nil {
		t.Error("non-positive size returned a face")
	}
	a := c.face(16)
	if a == nil {
		t.Fatal("no face for size 16")
	}
	if c.face(16) != a {
		t.Error("face not cached")
	}
	b := c.face(24)
	if b == a || b.Source != a.Source {
		t.Error("sizes should share one parsed source")
	}
	if len(c.faces) != 2 {
		t.Errorf("cache holds %d faces", len(c.faces))
	}
}
