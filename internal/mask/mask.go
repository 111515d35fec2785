// Package mask rasterizes vector annotations into single-channel masks
// aligned with the pixel grid of a stitched raster. Every vertex is projected
// through mercator.PixelOffset against the geometry's own centroid, so a mask
// only lines up with a raster that was stitched around the same point.
package mask

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"glyphprep/internal/annot"
	"glyphprep/internal/mercator"
)

// On is the mask's foreground value.
const On = 255

// UnsupportedGeometryError names an annotation kind the rasterizer cannot
// draw. It aborts that mask only.
type UnsupportedGeometryError struct {
	Kind string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("unsupported geometry kind %q", e.Kind)
}

// Rasterize draws rec into a zero-initialized w x h mask.
// Point: filled disk of radius 3*linePaddingPx. LineString: stroke of width
// 2*linePaddingPx. Polygon: exterior ring outlined and filled. Anything else
// fails with *UnsupportedGeometryError.
func Rasterize(rec annot.Record, w, h, zoom, linePaddingPx int) (*image.Gray, error) {
	center := rec.Centroid()
	project := func(p orb.Point) (float64, float64) {
		return mercator.PixelOffset(mercator.Point{Lat: p.Lat(), Lon: p.Lon()}, center, zoom, w, h)
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	switch g := rec.Geometry.(type) {
	case orb.Point:
		x, y := project(g)
		fillDisk(img, x, y, float64(3*linePaddingPx))
	case orb.LineString:
		drawStroke(img, projectAll(g, project), float64(2*linePaddingPx))
	case orb.Polygon:
		if len(g) == 0 || len(g[0]) < 3 {
			return nil, &UnsupportedGeometryError{Kind: rec.Kind()}
		}
		ring := projectAll(orb.LineString(g[0]), project)
		fillRing(img, ring)
		drawStroke(img, closeRing(ring), 1)
	default:
		return nil, &UnsupportedGeometryError{Kind: rec.Kind()}
	}
	return img, nil
}

type pixel struct{ x, y float64 }

func projectAll(ls orb.LineString, project func(orb.Point) (float64, float64)) []pixel {
	out := make([]pixel, 0, len(ls))
	for _, p := range ls {
		x, y := project(p)
		out = append(out, pixel{x, y})
	}
	return out
}

func closeRing(ring []pixel) []pixel {
	if len(ring) > 1 && ring[0] != ring[len(ring)-1] {
		return append(append([]pixel{}, ring...), ring[0])
	}
	return ring
}

var on = color.Gray{Y: On}

// fillDisk sets every pixel whose center lies within r of (cx, cy).
func fillDisk(img *image.Gray, cx, cy, r float64) {
	x0, x1, y0, y1 := clipBox(img, cx-r, cx+r, cy-r, cy+r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				img.SetGray(x, y, on)
			}
		}
	}
}

// drawStroke draws a connected polyline of the given width by filling every
// pixel within width/2 of each segment.
func drawStroke(img *image.Gray, pts []pixel, width float64) {
	if len(pts) == 1 {
		fillDisk(img, pts[0].x, pts[0].y, math.Max(width/2, 0.5))
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		fillSegment(img, pts[i], pts[i+1], math.Max(width/2, 0.5))
	}
}

func fillSegment(img *image.Gray, a, b pixel, halfWidth float64) {
	x0, x1, y0, y1 := clipBox(img,
		math.Min(a.x, b.x)-halfWidth, math.Max(a.x, b.x)+halfWidth,
		math.Min(a.y, b.y)-halfWidth, math.Max(a.y, b.y)+halfWidth)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			if distToSegment(px, py, a, b) <= halfWidth {
				img.SetGray(x, y, on)
			}
		}
	}
}

// clipBox converts a float bounding box to inclusive pixel bounds clipped to
// the image, so off-image geometry never grows the fill loops.
func clipBox(img *image.Gray, minX, maxX, minY, maxY float64) (x0, x1, y0, y1 int) {
	b := img.Bounds()
	x0 = maxInt(int(math.Floor(minX))-1, b.Min.X)
	x1 = minInt(int(math.Ceil(maxX))+1, b.Max.X-1)
	y0 = maxInt(int(math.Floor(minY))-1, b.Min.Y)
	y1 = minInt(int(math.Ceil(maxY))+1, b.Max.Y-1)
	return x0, x1, y0, y1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func distToSegment(px, py float64, a, b pixel) float64 {
	dx, dy := b.x-a.x, b.y-a.y
	len2 := dx*dx + dy*dy
	t := 0.0
	if len2 > 0 {
		t = ((px-a.x)*dx + (py-a.y)*dy) / len2
		t = math.Max(0, math.Min(1, t))
	}
	cx := a.x + t*dx
	cy := a.y + t*dy
	return math.Hypot(px-cx, py-cy)
}

// fillRing fills the interior of a closed ring using even-odd scanline
// intersection, one pass per pixel row.
func fillRing(img *image.Gray, ring []pixel) {
	if len(ring) < 3 {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sy := float64(y) + 0.5
		var xs []float64
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a.y == c.y {
				continue
			}
			if (sy >= a.y && sy < c.y) || (sy >= c.y && sy < a.y) {
				t := (sy - a.y) / (c.y - a.y)
				xs = append(xs, a.x+t*(c.x-a.x))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Ceil(xs[i] - 0.5))
			end := int(math.Floor(xs[i+1] - 0.5))
			for x := start; x <= end; x++ {
				if inBounds(img, x, y) {
					img.SetGray(x, y, on)
				}
			}
		}
	}
}

func inBounds(img *image.Gray, x, y int) bool {
	b := img.Bounds()
	return x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y
}
