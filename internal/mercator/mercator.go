// Package mercator implements spherical Web-Mercator coordinate math:
// geographic -> world -> pixel/tile conversions at a given zoom level.
// All pixel placements in the pipeline route through PixelOffset so that
// stitched rasters and annotation masks stay mutually aligned.
package mercator

import "math"

// TileSize is the edge length in pixels of one provider tile.
const TileSize = 256

// MaxZoom is the largest zoom level the tile grid supports.
const MaxZoom = 23

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// World converts a geographic point to Web-Mercator world coordinates,
// where the whole globe spans [0, TileSize) per axis at zoom 0.
// The sine of the latitude is clamped so the poles stay finite.
func World(p Point) (x, y float64) {
	siny := math.Sin(p.Lat * math.Pi / 180)
	if siny > 0.9999 {
		siny = 0.9999
	} else if siny < -0.9999 {
		siny = -0.9999
	}
	x = TileSize * (0.5 + p.Lon/360)
	y = TileSize * (0.5 - math.Log((1+siny)/(1-siny))/(4*math.Pi))
	return x, y
}

// PixelOffset returns the pixel position of p inside an imgW x imgH raster
// whose exact center corresponds to the geographic point center.
// A point equal to center lands at (imgW/2, imgH/2).
func PixelOffset(p, center Point, zoom, imgW, imgH int) (px, py float64) {
	scale := float64(int64(1) << uint(zoom))
	x, y := World(p)
	cx, cy := World(center)
	px = float64(imgW)/2 + (x-cx)*scale*TileSize
	py = float64(imgH)/2 + (y-cy)*scale*TileSize
	return px, py
}

// Tile returns the integer tile-grid coordinate containing p at the given
// zoom. x grows eastward, y grows southward.
func Tile(p Point, zoom int) (x, y int) {
	scale := float64(int64(1) << uint(zoom))
	wx, wy := World(p)
	x = int(math.Floor(wx * scale / TileSize))
	y = int(math.Floor(wy * scale / TileSize))
	return x, y
}
