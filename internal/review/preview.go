package review

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"glyphprep/internal/raster"
)

// loadPreview renders the current image into m.preview as half-block cells:
// each terminal cell carries two vertically stacked pixels ("▀" with the top
// pixel as foreground and the bottom as background).
func (m *Model) loadPreview() {
	if m.width == 0 || m.height == 0 {
		return
	}
	img, err := raster.LoadImage(m.files[m.index])
	if err != nil {
		m.preview = ""
		m.status = "load error: " + err.Error()
		return
	}

	cols := max(16, min(m.width-6, 100))
	rows := max(8, min(m.height-8, 50))
	m.preview = renderHalfBlocks(img, cols, rows)
}

func renderHalfBlocks(img image.Image, cols, rows int) string {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return ""
	}
	// two pixel rows per text row
	pxH := rows * 2

	sample := func(cx, py int) string {
		sx := b.Min.X + cx*w/cols
		sy := b.Min.Y + py*h/pxH
		r, g, bl, _ := img.At(sx, sy).RGBA()
		return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(bl>>8))
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := sample(col, row*2)
			bottom := sample(col, row*2+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
			sb.WriteString(cell)
		}
		if row < rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
