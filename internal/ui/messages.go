package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kateleext/linecompare/internal/watcher"
)

type fileChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// waitForChange blocks until the watcher reports the next change or error
func waitForChange(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path := <-w.Changes:
			return fileChangedMsg{path: path}
		case err := <-w.Errors:
			return watchErrMsg{err: err}
		}
	}
}
