package review

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = max(10, m.width-4)
		if !m.done {
			m.loadPreview()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "right", "k":
			if !m.done {
				m.decide(m.keepDir, &m.kept, "kept")
			}
		case "left", "d":
			if !m.done {
				m.decide(m.discardDir, &m.discarded, "discarded")
			}
		}
		if m.done && msg.String() == "enter" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// decide copies the current image into dst and advances to the next one.
func (m *Model) decide(dst string, counter *int, verb string) {
	src := m.files[m.index]
	if err := copyFile(src, filepath.Join(dst, filepath.Base(src))); err != nil {
		m.status = "copy error: " + err.Error()
		return
	}
	*counter++
	m.status = fmt.Sprintf("%s %s", verb, filepath.Base(src))
	m.index++
	if m.index >= len(m.files) {
		m.done = true
		m.preview = ""
		m.status = "no more images to review"
		return
	}
	m.loadPreview()
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
