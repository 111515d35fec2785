// Package pipeline wires the projection, stitching, sampling and mask
// components into the three batch runs of the dataset preparation tool.
// Per-item failures are logged and counted so a batch completes for every
// processable item; setup failures abort the run.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"glyphprep/internal/config"
	"glyphprep/internal/tile"
)

// Summary counts the outcome of one batch run.
type Summary struct {
	Produced int
	Skipped  int
	Failed   int
}

func (s Summary) String() string {
	return fmt.Sprintf("produced=%d skipped=%d failed=%d", s.Produced, s.Skipped, s.Failed)
}

// Pipeline holds the shared collaborators of all batch runs.
type Pipeline struct {
	cfg      *config.Config
	stitcher *tile.Stitcher
	log      *zap.Logger

	// Rand seeds negative sampling; tests inject a fixed source.
	Rand *rand.Rand
}

func New(cfg *config.Config, fetcher tile.Fetcher, log *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		stitcher: tile.NewStitcher(fetcher, tile.Layer(cfg.Tiles.Layer)),
		log:      log,
	}
}

func (p *Pipeline) rng() *rand.Rand {
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p.Rand
}

// ensureDir is the shared fatal-on-failure output directory setup.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return nil
}

// glyphCode extracts the identifier used to match annotations to rasters:
// the part after the last '#' when present, otherwise the whole name.
func glyphCode(name string) string {
	if i := strings.LastIndex(name, "#"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func outPath(dir, name string) string { return filepath.Join(dir, name) }

// maskFileName flattens path separators out of an annotation name so the
// mask file always lands inside the masks directory.
func maskFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, `\`, "_")
	return name + "_mask.png"
}

// withContextCheck returns ctx.Err when the run was cancelled between items.
func withContextCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
