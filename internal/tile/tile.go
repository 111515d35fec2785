// Package tile fetches map-provider tiles and stitches them into large
// rasters centered on a geographic point.
package tile

import (
	"context"
	"fmt"
)

// Layer selects the provider imagery layer encoded in the tile URL.
type Layer string

const (
	Roadmap        Layer = "v"
	Terrain        Layer = "p"
	AlteredRoadmap Layer = "r"
	Satellite      Layer = "s"
	TerrainOnly    Layer = "t"
	Hybrid         Layer = "y"
)

// Fetcher retrieves the encoded image bytes for one tile.
type Fetcher interface {
	FetchTile(ctx context.Context, x, y, zoom int, layer Layer) ([]byte, error)
}

// FetchError reports a failed fetch or decode of a single tile. It aborts
// the enclosing stitch; partial rasters are never returned.
type FetchError struct {
	X    int
	Y    int
	Zoom int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("tile (%d,%d) z%d: %v", e.X, e.Y, e.Zoom, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
