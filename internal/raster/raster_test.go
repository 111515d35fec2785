package raster

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func flatImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// stripeImage alternates white and black vertical bands two pixels wide.
func stripeImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if x%4 < 2 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestGrayscaleLuminosity(t *testing.T) {
	img := flatImage(4, 4, color.RGBA{R: 255, A: 255})
	g := Grayscale(img)
	// pure red -> 0.299 * 255 ~ 76
	if got := g.GrayAt(1, 1).Y; got != 76 {
		t.Errorf("gray of pure red = %d, want 76", got)
	}
}

func TestEdgeDensity(t *testing.T) {
	flat := EdgeDensity(flatImage(32, 32, color.RGBA{R: 40, G: 80, B: 40, A: 255}))
	if flat != 0 {
		t.Errorf("flat image edge density = %v, want 0", flat)
	}
	busy := EdgeDensity(stripeImage(32, 32))
	if busy <= 0.3 {
		t.Errorf("striped edge density = %v, want > 0.3", busy)
	}
	if !LowTexture(flatImage(32, 32, color.RGBA{A: 255}), 0.01) {
		t.Error("flat image not judged low-texture")
	}
	if LowTexture(stripeImage(32, 32), 0.01) {
		t.Error("striped image judged low-texture")
	}
}

func TestSaveLoadPNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "img.png")
	if err := SavePNG(p, stripeImage(8, 8)); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	img, err := LoadImage(p)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("loaded size = %v", b)
	}
}

func TestIndex(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "circle")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		filepath.Join(sub, "geoglyph_circle_#G1.png"),
		filepath.Join(dir, "geoglyph_square_#G2.jpg"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "unrelated.png"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := BuildIndex(dir)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("indexed %d files, want 2", idx.Len())
	}
	p, err := idx.Lookup("G1")
	if err != nil {
		t.Fatalf("Lookup(G1): %v", err)
	}
	if filepath.Base(p) != "geoglyph_circle_#G1.png" {
		t.Errorf("Lookup(G1) = %s", p)
	}

	_, err = idx.Lookup("G404")
	var miss *MissingImageError
	if !errors.As(err, &miss) || miss.Code != "G404" {
		t.Fatalf("Lookup(G404) = %v, want *MissingImageError{G404}", err)
	}
}
