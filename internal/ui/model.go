package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kateleext/linecompare/internal/compare"
	"github.com/kateleext/linecompare/internal/render"
	"github.com/kateleext/linecompare/internal/watcher"
	"github.com/kateleext/linecompare/internal/workspace"
)

// DevBuild shows a debug footer
var DevBuild bool

const (
	minBoxWidth         = 26
	defaultEditorHeight = 8
	minResultsHeight    = 3
)

type mode int

const (
	modeEdit mode = iota
	modeBrowse
	modePick
)

func (m mode) String() string {
	switch m {
	case modeBrowse:
		return "browse"
	case modePick:
		return "pick"
	default:
		return "edit"
	}
}

// Options configures a Model
type Options struct {
	Workspace    *workspace.Workspace
	Files        map[int]string // block id -> absolute path of file-backed blocks
	Watcher      *watcher.Watcher
	Reload       func(path string) (string, error)
	Render       render.Options
	EditorHeight int
	Logger       *slog.Logger
}

// Model is the bubbletea model
type Model struct {
	ws      *workspace.Workspace
	editors []textarea.Model // one per block, in workspace order
	focus   int
	mode    mode

	results viewport.Model
	current int   // index into ws.Comparisons()
	custom  []int // block ids of a custom pair, nil when following the policy
	picked  []int
	digits  string // box number typed so far in pick mode
	status  string

	keys keyMap
	help help.Model

	width        int
	height       int
	editorHeight int

	files      map[int]string
	watcher    *watcher.Watcher
	reload     func(string) (string, error)
	renderOpts render.Options
	logger     *slog.Logger
}

// New creates a new UI model
func New(opts Options) Model {
	m := Model{
		ws:           opts.Workspace,
		mode:         modeEdit,
		results:      viewport.New(80, minResultsHeight),
		keys:         defaultKeys(),
		help:         help.New(),
		width:        80,
		height:       24,
		editorHeight: opts.EditorHeight,
		files:        opts.Files,
		watcher:      opts.Watcher,
		reload:       opts.Reload,
		renderOpts:   opts.Render,
		logger:       opts.Logger,
	}
	if m.ws == nil {
		m.ws = workspace.New(compare.BaseVsRest, nil)
	}
	if m.editorHeight <= 0 {
		m.editorHeight = defaultEditorHeight
	}
	if m.files == nil {
		m.files = map[int]string{}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, b := range m.ws.Blocks() {
		m.editors = append(m.editors, m.newEditor(b.Content))
	}
	m.editors[0].Focus()
	m.layout()
	m.refresh()
	return m
}

func (m Model) newEditor(content string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Enter text to compare..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(m.editorHeight)
	ta.SetValue(content)
	return ta
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil
	case fileChangedMsg:
		m.reloadFile(msg.path)
		return m, waitForChange(m.watcher)
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		m.logger.Warn("watch error", "error", msg.err)
		return m, waitForChange(m.watcher)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modePick:
			return m.updatePick(msg)
		default:
			return m.updateEdit(msg)
		}
	}

	// Cursor blink and other editor messages
	var cmd tea.Cmd
	m.editors[m.focus], cmd = m.editors[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.NextBox):
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevBox):
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case key.Matches(msg, m.keys.AddBox):
		b := m.ws.Add("")
		m.editors = append(m.editors, m.newEditor(b.Content))
		m.layout()
		m.refresh()
		cmd := m.setFocus(len(m.editors) - 1)
		return m, cmd
	case key.Matches(msg, m.keys.RemoveBox):
		cmd := m.removeFocused()
		return m, cmd
	case key.Matches(msg, m.keys.Policy):
		m.togglePolicy()
		return m, nil
	case key.Matches(msg, m.keys.Browse):
		m.editors[m.focus].Blur()
		m.mode = modeBrowse
		return m, nil
	}

	before := m.editors[m.focus].Value()
	var cmd tea.Cmd
	m.editors[m.focus], cmd = m.editors[m.focus].Update(msg)
	if after := m.editors[m.focus].Value(); after != before {
		id := m.ws.Blocks()[m.focus].ID
		if err := m.ws.Update(id, after); err != nil {
			m.status = err.Error()
		}
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.BrowseQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		m.mode = modeEdit
		m.status = ""
		cmd := m.editors[m.focus].Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextResult):
		m.step(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevResult):
		m.step(-1)
		return m, nil
	case key.Matches(msg, m.keys.PickPair):
		m.mode = modePick
		m.picked = nil
		m.digits = ""
		m.status = "choose the first box (type its number)"
		return m, nil
	case key.Matches(msg, m.keys.AllPairs):
		m.custom = nil
		m.status = ""
		m.results.GotoTop()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Policy):
		m.togglePolicy()
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeBrowse
		m.picked = nil
		m.digits = ""
		m.status = ""
		return m, nil
	}
	blocks := m.ws.Blocks()
	s := msg.String()
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.digits == "" {
			return m, nil
		}
	case len(s) == 1 && s[0] >= '0' && s[0] <= '9':
		m.digits += s
		n, _ := strconv.Atoi(m.digits)
		if n < 1 || n > len(blocks) {
			m.status = fmt.Sprintf("there is no box %s", m.digits)
			m.digits = ""
			return m, nil
		}
		// Wait for another digit while a longer number could still name a box
		if n*10 <= len(blocks) {
			m.status = fmt.Sprintf("box %s... (enter to confirm)", m.digits)
			return m, nil
		}
	default:
		return m, nil
	}

	n, _ := strconv.Atoi(m.digits)
	m.digits = ""
	m.picked = append(m.picked, blocks[n-1].ID)
	if len(m.picked) < 2 {
		m.status = fmt.Sprintf("comparing box %d with... (type a box number)", n)
		return m, nil
	}

	m.mode = modeBrowse
	pair := m.picked
	m.picked = nil
	if _, err := m.ws.ComparePair(pair[0], pair[1]); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.custom = pair
	m.status = ""
	m.results.GotoTop()
	m.refresh()
	return m, nil
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.editors)
	i = ((i % n) + n) % n
	m.editors[m.focus].Blur()
	m.focus = i
	return m.editors[m.focus].Focus()
}

func (m *Model) removeFocused() tea.Cmd {
	id := m.ws.Blocks()[m.focus].ID
	if err := m.ws.Remove(id); err != nil {
		if errors.Is(err, workspace.ErrMinBlocks) {
			m.status = fmt.Sprintf("at least %d boxes are needed", workspace.MinBlocks)
		} else {
			m.status = err.Error()
		}
		return nil
	}
	m.editors = append(m.editors[:m.focus], m.editors[m.focus+1:]...)
	delete(m.files, id)
	if m.focus >= len(m.editors) {
		m.focus = len(m.editors) - 1
	}
	for _, c := range m.custom {
		if c == id {
			m.custom = nil
		}
	}
	m.layout()
	m.refresh()
	return m.editors[m.focus].Focus()
}

func (m *Model) togglePolicy() {
	p := m.ws.Policy().Next()
	m.ws.SetPolicy(p)
	m.current = 0
	m.custom = nil
	m.status = "pairing: " + p.String()
	m.results.GotoTop()
	m.refresh()
}

func (m *Model) step(delta int) {
	m.custom = nil
	n := len(m.ws.Comparisons())
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.results.GotoTop()
	m.refresh()
}

func (m *Model) reloadFile(path string) {
	if m.reload == nil {
		return
	}
	for id, p := range m.files {
		if p != path {
			continue
		}
		content, err := m.reload(path)
		if err != nil {
			m.status = err.Error()
			m.logger.Warn("reload failed", "path", path, "error", err)
			return
		}
		if err := m.ws.Update(id, content); err != nil {
			m.status = err.Error()
			return
		}
		for i, b := range m.ws.Blocks() {
			if b.ID == id {
				m.editors[i].SetValue(content)
			}
		}
		m.logger.Info("reloaded", "path", path, "block", id)
		m.refresh()
		return
	}
}

// boxWidth is the outer width of one text box
func (m Model) boxWidth() int {
	_, fit := m.boxesOnScreen()
	return max(minBoxWidth, m.width/fit)
}

func (m Model) boxesOnScreen() (n, fit int) {
	n = len(m.editors)
	fit = max(1, min(n, m.width/minBoxWidth))
	return n, fit
}

func (m *Model) layout() {
	w := m.boxWidth() - 2 // border
	for i := range m.editors {
		m.editors[i].SetWidth(w)
		m.editors[i].SetHeight(m.editorHeight)
	}
	m.help.Width = m.width

	// header + box title + box with border + results heading + status + help
	used := 1 + 1 + m.editorHeight + 2 + 1 + 1 + 1
	if DevBuild {
		used++
	}
	m.results.Width = m.width
	m.results.Height = max(minResultsHeight, m.height-used)
}

// selected returns the comparison shown in the results pane
func (m *Model) selected() (workspace.Comparison, string, bool) {
	if m.custom != nil {
		c, err := m.ws.ComparePair(m.custom[0], m.custom[1])
		if err == nil {
			return c, "custom", true
		}
		m.custom = nil
		m.status = err.Error()
	}
	cs := m.ws.Comparisons()
	if len(cs) == 0 {
		m.current = 0
		return workspace.Comparison{}, "", false
	}
	m.current = min(m.current, len(cs)-1)
	return cs[m.current], fmt.Sprintf("%d/%d", m.current+1, len(cs)), true
}

// refresh re-renders the results pane from the workspace
func (m *Model) refresh() {
	opts := m.renderOpts
	opts.Width = m.width
	if w := m.renderOpts.Width; w > 0 && (m.width == 0 || w < m.width) {
		opts.Width = w
	}
	offset := m.results.YOffset

	c, _, ok := m.selected()
	if !ok {
		m.results.SetContent(render.Hint(opts))
		m.results.GotoTop()
		return
	}
	m.results.SetContent(strings.Join(render.Lines(c, opts), "\n"))
	m.results.SetYOffset(offset)
}

func (m Model) snapshot() ViewSnapshot {
	blocks := m.ws.Blocks()
	n, fit := m.boxesOnScreen()
	start, end := visibleRange(n, m.focus, fit)

	s := ViewSnapshot{
		Width:  m.width,
		Policy: m.ws.Policy().String(),
		Hidden: n - (end - start),
		Status: m.status,
	}
	for i := start; i < end; i++ {
		s.Editors = append(s.Editors, EditorPreview{
			Number:  i + 1,
			Title:   blocks[i].Title(),
			View:    m.editors[i].View(),
			Focused: i == m.focus && m.mode == modeEdit,
		})
	}

	if c, pos, ok := m.selected(); ok {
		s.Heading = render.Header(c, m.renderOpts)
		s.Position = pos
	} else {
		s.Heading = titleStyle.Render("Comparison Results")
	}
	s.Results = m.results.View()

	switch m.mode {
	case modeBrowse:
		s.Help = m.help.ShortHelpView(m.keys.browseHelp())
	case modePick:
		s.Help = m.help.ShortHelpView(m.keys.pickHelp())
	default:
		s.Help = m.help.ShortHelpView(m.keys.editHelp())
	}
	if DevBuild {
		s.Debug = fmt.Sprintf("mode=%s focus=%d blocks=%d comparisons=%d current=%d custom=%v",
			m.mode, m.focus, n, len(m.ws.Comparisons()), m.current, m.custom)
	}
	return s
}

// View implements tea.Model
func (m Model) View() string {
	return renderFrame(m.snapshot())
}
