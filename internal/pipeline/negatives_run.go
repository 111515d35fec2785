package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"glyphprep/internal/raster"
	"glyphprep/internal/sampler"
	"glyphprep/internal/sites"
)

// Negatives generates exclusion-aware negative candidates for every known
// site, writes the candidate table, then downloads a raster per candidate.
// Low-texture rasters are discarded without replacement; the run stops once
// the global image cap is reached regardless of remaining candidates.
func (p *Pipeline) Negatives(ctx context.Context) (Summary, error) {
	var sum Summary
	cfg := p.cfg.Negatives

	positives, err := sites.LoadCSV(p.cfg.Paths.Sites)
	if err != nil {
		return sum, fmt.Errorf("load site table: %w", err)
	}
	if err := ensureDir(p.cfg.Paths.Negatives); err != nil {
		return sum, err
	}

	s := sampler.New(p.rng(), cfg.OffsetRadius, cfg.DistanceThreshold, cfg.PerSite, cfg.MaxAttempts)
	cands, sampleErrs := s.Generate(positives)
	for _, err := range sampleErrs {
		p.log.Warn("candidate generation starved", zap.Error(err))
		sum.Failed++
	}
	p.log.Info("generated negative candidates", zap.Int("count", len(cands)))

	if err := sites.WriteCandidates(cfg.CSV, cands); err != nil {
		return sum, fmt.Errorf("write candidate table: %w", err)
	}

	for _, cand := range cands {
		if err := withContextCheck(ctx); err != nil {
			return sum, err
		}
		if sum.Produced >= cfg.MaxImages {
			p.log.Info("image cap reached", zap.Int("max_images", cfg.MaxImages))
			break
		}
		log := p.log.With(zap.String("origin", cand.OriginCode),
			zap.Float64("lat", cand.Point.Lat), zap.Float64("lon", cand.Point.Lon))
		log.Info("downloading negative")

		img, err := p.stitcher.Stitch(ctx, cand.Point, p.cfg.Tiles.Zoom,
			p.cfg.Tiles.TileWidth, p.cfg.Tiles.TileHeight)
		if err != nil {
			log.Warn("stitch failed", zap.Error(err))
			sum.Failed++
			continue
		}
		if raster.LowTexture(img, cfg.EdgeDensity) {
			log.Info("discarded low-texture negative")
			sum.Skipped++
			continue
		}

		name := fmt.Sprintf("negative_%s_%.3f_%.3f.png", cand.OriginCode, cand.Point.Lat, cand.Point.Lon)
		if err := raster.SavePNG(outPath(p.cfg.Paths.Negatives, name), img); err != nil {
			log.Warn("save failed", zap.Error(err))
			sum.Failed++
			continue
		}
		sum.Produced++
	}

	p.log.Info("negative run complete", zap.String("summary", sum.String()))
	return sum, nil
}
