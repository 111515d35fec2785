package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"glyphprep/internal/raster"
	"glyphprep/internal/sites"
)

// Sites downloads one stitched raster per known site of the given form,
// named geoglyph_<form>_#<code>.png. With grayscale set, a _gray variant is
// written next to each raster.
func (p *Pipeline) Sites(ctx context.Context, form string, grayscale bool) (Summary, error) {
	var sum Summary

	all, err := sites.LoadCSV(p.cfg.Paths.Sites)
	if err != nil {
		return sum, fmt.Errorf("load site table: %w", err)
	}
	matched := sites.FilterForm(all, form)
	if len(matched) == 0 {
		return sum, fmt.Errorf("no sites with form %q", form)
	}
	if err := ensureDir(p.cfg.Paths.Images); err != nil {
		return sum, err
	}

	for _, site := range matched {
		if err := withContextCheck(ctx); err != nil {
			return sum, err
		}
		log := p.log.With(zap.String("code", site.Code),
			zap.Float64("lat", site.Point.Lat), zap.Float64("lon", site.Point.Lon))
		log.Info("downloading geoglyph")

		img, err := p.stitcher.Stitch(ctx, site.Point, p.cfg.Tiles.Zoom,
			p.cfg.Tiles.TileWidth, p.cfg.Tiles.TileHeight)
		if err != nil {
			log.Warn("stitch failed", zap.Error(err))
			sum.Failed++
			continue
		}

		name := fmt.Sprintf("geoglyph_%s_#%s.png", form, site.Code)
		path := outPath(p.cfg.Paths.Images, name)
		if err := raster.SavePNG(path, img); err != nil {
			log.Warn("save failed", zap.Error(err))
			sum.Failed++
			continue
		}
		if grayscale {
			grayName := fmt.Sprintf("geoglyph_%s_#%s_gray.png", form, site.Code)
			if err := raster.SavePNG(outPath(p.cfg.Paths.Images, grayName), raster.Grayscale(img)); err != nil {
				log.Warn("grayscale save failed", zap.Error(err))
			}
		}
		sum.Produced++
	}

	p.log.Info("site run complete", zap.String("form", form), zap.String("summary", sum.String()))
	return sum, nil
}
