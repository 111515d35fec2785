// Package review is a terminal tool for triaging generated rasters: each
// image is previewed in the terminal and either kept or discarded with one
// keystroke. Files are copied, never moved, so a review can be re-run.
package review

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	progress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	width  int
	height int

	inputDir   string
	keepDir    string
	discardDir string

	files []string
	index int

	kept      int
	discarded int

	preview string
	status  string
	done    bool

	prog progress.Model
}

// New builds a review session over every PNG in inputDir.
func New(inputDir, keepDir, discardDir string) Model {
	m := Model{
		inputDir:   inputDir,
		keepDir:    keepDir,
		discardDir: discardDir,
		status:     "review ready",
		prog:       progress.New(progress.WithDefaultGradient()),
	}
	m.files = listImages(inputDir)
	if len(m.files) == 0 {
		m.status = "no images to review in " + inputDir
		m.done = true
	} else {
		m.loadPreview()
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Remaining reports how many images are left, for the caller's exit summary.
func (m Model) Remaining() int { return len(m.files) - m.index }

func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files
}
