package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"glyphprep/internal/annot"
	"glyphprep/internal/mask"
	"glyphprep/internal/raster"
)

// Masks rasterizes every annotation in annotPath into a single-channel mask
// sized like the downloaded raster it matches. Annotations without a
// matching raster are skipped with a warning; unsupported geometry kinds
// fail that mask only and leave no partial file.
func (p *Pipeline) Masks(ctx context.Context, annotPath string) (Summary, error) {
	var sum Summary

	records, err := annot.Load(annotPath)
	if err != nil {
		return sum, fmt.Errorf("load annotations: %w", err)
	}
	idx, err := raster.BuildIndex(p.cfg.Paths.Images)
	if err != nil {
		return sum, fmt.Errorf("index images: %w", err)
	}
	if err := ensureDir(p.cfg.Paths.Masks); err != nil {
		return sum, err
	}
	p.log.Info("rasterizing masks",
		zap.Int("annotations", len(records)), zap.Int("indexed_images", idx.Len()))

	for _, rec := range records {
		if err := withContextCheck(ctx); err != nil {
			return sum, err
		}
		log := p.log.With(zap.String("name", rec.Name), zap.String("kind", rec.Kind()))

		imgPath, err := idx.Lookup(glyphCode(rec.Name))
		if err != nil {
			var miss *raster.MissingImageError
			if errors.As(err, &miss) {
				log.Warn("missing image for annotation")
				sum.Skipped++
				continue
			}
			return sum, err
		}
		img, err := raster.LoadImage(imgPath)
		if err != nil {
			log.Warn("unreadable matched image", zap.Error(err))
			sum.Failed++
			continue
		}
		b := img.Bounds()

		m, err := mask.Rasterize(rec, b.Dx(), b.Dy(), p.cfg.Tiles.Zoom, p.cfg.Masks.LinePaddingPx)
		if err != nil {
			log.Warn("mask rasterization failed", zap.Error(err))
			sum.Failed++
			continue
		}
		if err := raster.SavePNG(outPath(p.cfg.Paths.Masks, maskFileName(rec.Name)), m); err != nil {
			log.Warn("save failed", zap.Error(err))
			sum.Failed++
			continue
		}
		sum.Produced++
	}

	p.log.Info("mask run complete", zap.String("summary", sum.String()))
	return sum, nil
}
