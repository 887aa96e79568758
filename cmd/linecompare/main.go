// linecompare shows line-by-line differences between several blocks of text.
//
// Usage:
//
//	linecompare                      # empty text boxes
//	linecompare a.txt b.txt c.txt    # one box per file
//	linecompare HEAD~1:main.go main.go --print
//	git show HEAD:x.go | linecompare - x.go --json
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kateleext/linecompare/internal/compare"
	"github.com/kateleext/linecompare/internal/config"
	"github.com/kateleext/linecompare/internal/render"
	"github.com/kateleext/linecompare/internal/source"
	"github.com/kateleext/linecompare/internal/ui"
	"github.com/kateleext/linecompare/internal/watcher"
	"github.com/kateleext/linecompare/internal/workspace"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var version = "dev"

type flags struct {
	configPath  string
	policy      compare.Policy
	print       bool
	json        bool
	pair        string
	watch       bool
	noHighlight bool
	width       int
}

func main() {
	rootCmd := rootCmd()
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "linecompare [file ...]",
		Short: "Compare blocks of text line by line",
		Long: "linecompare compares text blocks position by position: line n of one block against " +
			"line n of the other. Blocks come from files, git revisions (rev:path) or stdin (-).",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default ./"+config.FileName+" or ~/"+config.FileName+")")
	cmd.Flags().Var(&f.policy, "policy", "pairing policy: base (first vs every other) or consecutive")
	cmd.Flags().BoolVar(&f.print, "print", false, "print the comparisons instead of starting the TUI")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the comparisons as JSON")
	cmd.Flags().StringVar(&f.pair, "pair", "", "compare only blocks `a,b` (1-based)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "reload files when they change")
	cmd.Flags().BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
	cmd.Flags().IntVar(&f.width, "width", 0, "wrap width, overriding render.width (0 = no wrapping when printing)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linecompare %s\n", version)
		},
	}
}

func run(cmd *cobra.Command, f flags, args []string) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	policy, err := cfg.PairingPolicy()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("policy") {
		policy = f.policy
	}

	out := cmd.OutOrStdout()
	interactive := !f.print && !f.json && isTerminal(out)
	logger := newLogger(cfg, interactive, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx := cmd.Context()

	specs := make([]source.Spec, len(args))
	for i, a := range args {
		specs[i] = source.Parse(a)
	}
	loader := &source.Loader{Stdin: cmd.InOrStdin()}
	contents, err := loader.LoadAll(ctx, specs)
	if err != nil {
		return err
	}

	ws := workspace.New(policy, contents, workspace.WithLogger(logger))
	for i, s := range specs {
		if err := ws.Rename(i, s.Name()); err != nil {
			return err
		}
	}
	logger.Debug("loaded blocks", "blocks", ws.Len(), "policy", policy)

	opts := render.Options{
		Width:     cfg.Render.Width,
		Theme:     cfg.Theme,
		Highlight: cfg.Render.Highlight && !f.noHighlight,
	}
	if cmd.Flags().Changed("width") {
		opts.Width = f.width
	}

	comparisons := ws.Comparisons()
	if f.pair != "" {
		c, err := customPair(ws, f.pair)
		if err != nil {
			return err
		}
		comparisons = []workspace.Comparison{c}
	}

	switch {
	case f.json:
		return render.JSON(out, comparisons)
	case !interactive:
		opts.Highlight = opts.Highlight && isTerminal(out)
		opts.Renderer = lipgloss.NewRenderer(out)
		return render.Text(out, comparisons, opts)
	}

	return runTUI(ws, specs, cfg, f, opts, logger)
}

// customPair parses "a,b" as 1-based block numbers
func customPair(ws *workspace.Workspace, pair string) (workspace.Comparison, error) {
	first, second, ok := strings.Cut(pair, ",")
	if !ok {
		return workspace.Comparison{}, fmt.Errorf("--pair wants two numbers like 1,3, got %q", pair)
	}
	blocks := ws.Blocks()
	var ids [2]int
	for i, s := range []string{first, second} {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > len(blocks) {
			return workspace.Comparison{}, fmt.Errorf("--pair: %q is not a block number between 1 and %d", s, len(blocks))
		}
		ids[i] = blocks[n-1].ID
	}
	c, err := ws.ComparePair(ids[0], ids[1])
	if err != nil {
		return workspace.Comparison{}, fmt.Errorf("--pair %s: %w", pair, err)
	}
	return c, nil
}

func runTUI(ws *workspace.Workspace, specs []source.Spec, cfg config.Config, f flags, opts render.Options, logger *slog.Logger) error {
	files := map[int]string{}
	var paths []string
	for i, s := range specs {
		if !s.Watchable() {
			continue
		}
		abs, err := filepath.Abs(s.Path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", s.Path, err)
		}
		files[i] = abs
		paths = append(paths, abs)
	}

	var w *watcher.Watcher
	if (f.watch || cfg.Watch.Enabled) && len(paths) > 0 {
		var err error
		w, err = watcher.New(paths, cfg.Debounce())
		if err != nil {
			return err
		}
		defer w.Close()
		w.Start()
		logger.Info("watching files", "files", len(paths))
	}

	m := ui.New(ui.Options{
		Workspace: ws,
		Files:     files,
		Watcher:   w,
		Reload: func(path string) (string, error) {
			b, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("reload %s: %w", filepath.Base(path), err)
			}
			return string(b), nil
		},
		Render:       opts,
		EditorHeight: cfg.Editor.Height,
		Logger:       logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func newLogger(cfg config.Config, interactive bool, stderr io.Writer) *slog.Logger {
	if !interactive {
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	}
	// The TUI owns the terminal, so logs only go to a file in dev builds.
	if os.Getenv("LINECOMPARE_DEV") == "1" {
		ui.DevBuild = true
		if lf, err := tea.LogToFile("debug.log", "linecompare"); err == nil {
			return slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
