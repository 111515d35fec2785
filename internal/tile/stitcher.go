package tile

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	"glyphprep/internal/mercator"
)

// Stitcher composites provider tiles into one raster per geographic center.
type Stitcher struct {
	fetcher Fetcher
	layer   Layer
}

func NewStitcher(fetcher Fetcher, layer Layer) *Stitcher {
	return &Stitcher{fetcher: fetcher, layer: layer}
}

// Stitch downloads a tileWidth x tileHeight block of tiles around center and
// pastes them into a single RGBA raster of exactly
// (256*tileWidth) x (256*tileHeight) pixels. Tile offsets run over
// [-tileWidth/2, tileWidth/2) x [-tileHeight/2, tileHeight/2) so the center
// tile sits at the middle of the mosaic. Any single failed or undecodable
// tile aborts the whole stitch with a *FetchError.
func (s *Stitcher) Stitch(ctx context.Context, center mercator.Point, zoom, tileWidth, tileHeight int) (*image.RGBA, error) {
	cx, cy := mercator.Tile(center, zoom)

	w := mercator.TileSize * tileWidth
	h := mercator.TileSize * tileHeight
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	for i := -tileWidth / 2; i < tileWidth-tileWidth/2; i++ {
		for j := -tileHeight / 2; j < tileHeight-tileHeight/2; j++ {
			tileImg, err := s.fetchOne(ctx, cx+i, cy+j, zoom)
			if err != nil {
				return nil, err
			}
			px := (i + tileWidth/2) * mercator.TileSize
			py := (j + tileHeight/2) * mercator.TileSize
			dst := image.Rect(px, py, px+mercator.TileSize, py+mercator.TileSize)
			draw.Draw(out, dst, tileImg, tileImg.Bounds().Min, draw.Src)
		}
	}
	return out, nil
}

// fetchOne scopes the acquisition and decode of one tile: the raw payload
// only lives inside this call, so nothing per-tile survives a failure.
func (s *Stitcher) fetchOne(ctx context.Context, x, y, zoom int) (image.Image, error) {
	raw, err := s.fetcher.FetchTile(ctx, x, y, zoom, s.layer)
	if err != nil {
		return nil, &FetchError{X: x, Y: y, Zoom: zoom, Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &FetchError{X: x, Y: y, Zoom: zoom, Err: err}
	}
	return img, nil
}
