// Command glyphprep prepares a geoglyph image dataset: it downloads stitched
// satellite rasters for known sites, synthesizes negative samples, rasterizes
// annotation masks, and offers a terminal review tool for the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"glyphprep/internal/config"
	"glyphprep/internal/pipeline"
	"glyphprep/internal/review"
	"glyphprep/internal/tile"
)

const usage = `usage: glyphprep <command> [flags]

commands:
  sites      download stitched rasters for sites of one form
  negatives  generate negative samples and their rasters
  masks      rasterize annotation masks for downloaded rasters
  review     keep/discard review of generated images
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log := newLogger()
	defer log.Sync()

	var err error
	switch os.Args[1] {
	case "sites":
		err = runSites(log, os.Args[2:])
	case "negatives":
		err = runNegatives(log, os.Args[2:])
	case "masks":
		err = runMasks(log, os.Args[2:])
	case "review":
		err = runReview(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("run failed", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	return log
}

func newPipeline(log *zap.Logger, configPath string) (*pipeline.Pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	client := tile.NewClient(cfg.Tiles.Timeout)
	return pipeline.New(cfg, client, log), nil
}

func runSites(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("sites", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	form := fs.String("form", "", "geoglyph form to download (circle, square, zanja, ...)")
	gray := fs.Bool("gray", false, "also write grayscale variants")
	fs.Parse(args)
	if *form == "" {
		return fmt.Errorf("sites: -form is required")
	}

	p, err := newPipeline(log, *configPath)
	if err != nil {
		return err
	}
	sum, err := p.Sites(context.Background(), *form, *gray)
	if err != nil {
		return err
	}
	log.Info("done", zap.String("summary", sum.String()))
	return nil
}

func runNegatives(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("negatives", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	p, err := newPipeline(log, *configPath)
	if err != nil {
		return err
	}
	sum, err := p.Negatives(context.Background())
	if err != nil {
		return err
	}
	log.Info("done", zap.String("summary", sum.String()))
	return nil
}

func runMasks(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("masks", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	annotations := fs.String("annotations", "", "KML or GeoJSON annotation file")
	fs.Parse(args)
	if *annotations == "" {
		return fmt.Errorf("masks: -annotations is required")
	}

	p, err := newPipeline(log, *configPath)
	if err != nil {
		return err
	}
	sum, err := p.Masks(context.Background(), *annotations)
	if err != nil {
		return err
	}
	log.Info("done", zap.String("summary", sum.String()))
	return nil
}

func runReview(args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	input := fs.String("input", "negatives", "directory of images to review")
	keep := fs.String("keep", "keep", "directory for kept images")
	discard := fs.String("discard", "discard", "directory for discarded images")
	fs.Parse(args)

	m := review.New(*input, *keep, *discard)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
