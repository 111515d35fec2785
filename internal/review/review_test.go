package review

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"glyphprep/internal/raster"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), A: 255})
		}
	}
	if err := raster.SavePNG(path, img); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) (Model, string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	if err := os.MkdirAll(in, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(in, "negative_G1_-10.002_-67.001.png"))
	writePNG(t, filepath.Join(in, "negative_G2_-10.498_-67.503.png"))
	keep := filepath.Join(dir, "keep")
	discard := filepath.Join(dir, "discard")
	m := New(in, keep, discard)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return mm.(Model), keep, discard
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestReviewKeepAndDiscard(t *testing.T) {
	m, keep, discard := setup(t)
	if len(m.files) != 2 {
		t.Fatalf("found %d images, want 2", len(m.files))
	}

	mm, _ := m.Update(key("right"))
	m = mm.(Model)
	if m.kept != 1 || m.index != 1 {
		t.Fatalf("after keep: kept=%d index=%d", m.kept, m.index)
	}
	if _, err := os.Stat(filepath.Join(keep, "negative_G1_-10.002_-67.001.png")); err != nil {
		t.Errorf("kept file not copied: %v", err)
	}
	// source stays in place (copy, not move)
	if _, err := os.Stat(m.files[0]); err != nil {
		t.Errorf("source removed: %v", err)
	}

	mm, _ = m.Update(key("left"))
	m = mm.(Model)
	if m.discarded != 1 || !m.done {
		t.Fatalf("after discard: discarded=%d done=%v", m.discarded, m.done)
	}
	if _, err := os.Stat(filepath.Join(discard, "negative_G2_-10.498_-67.503.png")); err != nil {
		t.Errorf("discarded file not copied: %v", err)
	}
}

func TestReviewViewShowsProgress(t *testing.T) {
	m, _, _ := setup(t)
	v := m.View()
	if !strings.Contains(v, "image 1 of 2") {
		t.Errorf("view missing position header:\n%s", v)
	}
}

func TestReviewEmptyDir(t *testing.T) {
	m := New(t.TempDir(), "k", "d")
	if !m.done {
		t.Error("empty input dir should finish immediately")
	}
}
