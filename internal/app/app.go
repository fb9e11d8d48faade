// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/gridline/internal/cachemanager"
	"github.com/zjrosen/gridline/internal/clipboard"
	"github.com/zjrosen/gridline/internal/config"
	"github.com/zjrosen/gridline/internal/document"
	"github.com/zjrosen/gridline/internal/editcell"
	"github.com/zjrosen/gridline/internal/flags"
	"github.com/zjrosen/gridline/internal/keys"
	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/pubsub"
	"github.com/zjrosen/gridline/internal/source"
	"github.com/zjrosen/gridline/internal/tableengine"
	"github.com/zjrosen/gridline/internal/ui/colpicker"
	"github.com/zjrosen/gridline/internal/ui/grid"
	"github.com/zjrosen/gridline/internal/ui/styles"
	"github.com/zjrosen/gridline/internal/ui/toaster"
	"github.com/zjrosen/gridline/internal/watcher"
)

const reloadTimeout = 30 * time.Second

// Options configures the application.
type Options struct {
	Config config.Config

	// ConfigPath is where column visibility changes are saved. Empty
	// disables saving.
	ConfigPath string

	// Dataset is the initially loaded table.
	Dataset source.Dataset

	// Loader reloads the dataset. Nil reloads Config.Source.
	Loader func(ctx context.Context) (source.Dataset, error)

	// Clipboard receives copied selections. Nil uses the system clipboard.
	Clipboard clipboard.Clipboard

	// HitTester maps pointer positions to grid cells. Nil uses zone marks.
	HitTester grid.HitTester

	// ExportDir is where CSV exports are written. Empty means the working
	// directory.
	ExportDir string

	// Now is the clock for double clicks and export file names.
	Now func() time.Time
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string

	engine *tableengine.Engine
	doc    *document.Document
	grid   *grid.Model

	keys      keys.GridKeyMap
	inputKeys keys.InputKeyMap

	// Filter bar
	filter     textinput.Model
	filtering  bool
	filterPrev string

	// Column visibility popover
	picker     colpicker.Model
	pickerOpen bool

	help     help.Model
	showHelp bool

	toaster toaster.Model

	width  int
	height int

	load      func(ctx context.Context) (source.Dataset, error)
	exportDir string
	now       func() time.Time

	// File watcher for auto reload (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.FileChange]
}

// New creates the application model and mounts the grid session on a new
// document.
func New(opts Options) (Model, error) {
	cfg := opts.Config

	km := keys.DefaultGridKeyMap()
	if err := km.Apply(cfg.Keys); err != nil {
		return Model{}, fmt.Errorf("applying key bindings: %w", err)
	}

	fl := flags.New(cfg.Flags)
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewSystem(os.Stdout, fl.Enabled(flags.FlagOSC52Clipboard))
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	load := opts.Loader
	if load == nil {
		src, overrides := cfg.Source, cfg.Columns
		load = func(ctx context.Context) (source.Dataset, error) {
			return source.Load(ctx, src, overrides)
		}
	}

	engine := tableengine.New(opts.Dataset.Columns, opts.Dataset.Records,
		tableengine.WithHidden(opts.Dataset.Hidden...),
		tableengine.WithRowCache(cachemanager.NewMemory[[]int]("rows", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)),
	)

	g := grid.New(grid.Config{
		Engine:         engine,
		Clipboard:      clip,
		Flags:          fl,
		Keys:           km,
		Editor:         keys.DefaultEditorKeyMap(),
		HitTester:      opts.HitTester,
		DoubleClick:    time.Duration(cfg.UI.DoubleClickMs) * time.Millisecond,
		StripeRows:     cfg.UI.StripeRows,
		MaxColumnWidth: cfg.UI.MaxColumnWidth,
		Now:            now,
	})
	doc := document.New()
	if err := g.Mount(doc); err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.PromptStyle = styles.FilterPromptStyle
	input.Placeholder = "filter rows"

	m := Model{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		engine:     engine,
		doc:        doc,
		grid:       g,
		keys:       km,
		inputKeys:  keys.DefaultInputKeyMap(),
		filter:     input,
		picker:     colpicker.New(nil),
		help:       help.New(),
		toaster:    toaster.New(),
		load:       load,
		exportDir:  opts.ExportDir,
		now:        now,
	}
	m.startWatcher()
	return m, nil
}

// startWatcher watches the source file when auto reload is on. Failures
// are logged; the app works without auto reload.
func (m *Model) startWatcher() {
	src := m.cfg.Source
	if !m.cfg.AutoReload || src.Path == "" || src.ResolveSourceKind() == config.SourceSample {
		return
	}
	w, err := watcher.New(watcher.DefaultConfig(src.Path))
	if err != nil {
		log.Warn(log.CatWatcher, "watcher unavailable", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "watcher failed to start", "error", err)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
	m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
}

// Engine returns the table engine.
func (m Model) Engine() *tableengine.Engine { return m.engine }

// Grid returns the grid session.
func (m Model) Grid() *grid.Model { return m.grid }

// Init implements tea.Model and starts the watcher listener if auto
// reload is enabled.
func (m Model) Init() tea.Cmd {
	if m.watcherListener != nil {
		return m.watcherListener.Listen()
	}
	return nil
}

// reloadedMsg carries the result of a dataset reload.
type reloadedMsg struct {
	dataset source.Dataset
	err     error
	auto    bool
}

// exportedMsg carries the result of a CSV export.
type exportedMsg struct {
	path string
	rows int
	err  error
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker = m.picker.SetSize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case colpicker.ToggleMsg:
		cmd := m.toggleColumn(msg.ColumnID)
		return m, cmd

	case colpicker.CloseMsg:
		m.pickerOpen = false
		return m, nil

	case editcell.CommittedMsg:
		log.Debug(log.CatEdit, "cell saved", "row", msg.Cell.Row, "col", msg.Cell.Col)
		return m, nil

	case editcell.CommitFailedMsg:
		log.Warn(log.CatEdit, "cell rejected", "row", msg.Cell.Row, "col", msg.Cell.Col, "error", msg.Err)
		cmd := m.showToast(fmt.Sprintf("Not saved: %v", msg.Err), toaster.StyleError)
		return m, cmd

	case reloadedMsg:
		cmd := m.applyReload(msg)
		return m, cmd

	case exportedMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			log.ErrorErr(log.CatSource, "export failed", msg.err, "path", msg.path)
			cmd = m.showToast("Export failed: "+msg.err.Error(), toaster.StyleError)
		} else {
			log.Info(log.CatSource, "exported", "path", msg.path, "rows", msg.rows)
			cmd = m.showToast(fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path), toaster.StyleSuccess)
		}
		return m, cmd

	case pubsub.Event[watcher.FileChange]:
		switch msg.Type {
		case pubsub.ChangedEvent:
			log.Debug(log.CatWatcher, "source changed, reloading", "path", msg.Payload.Path)
			return m, tea.Batch(m.reloadCmd(true), m.watcherListener.Listen())
		case pubsub.ErrorEvent:
			log.Warn(log.CatWatcher, "watcher error received", "error", msg.Payload.Err)
		}
		return m, m.watcherListener.Listen()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	// Cursor blinks and other component messages
	cmds := []tea.Cmd{m.grid.HandleEditorMsg(msg)}
	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// layout hands the space left over by the filter and status bars to the
// grid.
func (m *Model) layout() {
	h := m.height
	if m.filtering {
		h--
	}
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	m.filter.Width = max(m.width-4, 1)
	m.grid.SetSize(m.width, max(h, 1))
}

func (m *Model) showToast(message string, style toaster.Style) tea.Cmd {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style, toaster.DefaultDuration)
	return cmd
}

// reloadCmd loads the dataset off the update loop.
func (m Model) reloadCmd(auto bool) tea.Cmd {
	load := m.load
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		ds, err := load(ctx)
		return reloadedMsg{dataset: ds, err: err, auto: auto}
	}
}

// applyReload swaps in reloaded records. Column definitions and view state
// are kept; the engine's Reloaded change clears the selection.
func (m *Model) applyReload(msg reloadedMsg) tea.Cmd {
	if msg.err != nil {
		return m.showToast("Reload failed: "+msg.err.Error(), toaster.StyleError)
	}
	m.engine.ReplaceData(msg.dataset.Records)
	if msg.auto {
		return m.showToast(fmt.Sprintf("Source changed, %d rows loaded", m.engine.RecordCount()), toaster.StyleInfo)
	}
	return m.showToast(fmt.Sprintf("Reloaded %d rows", m.engine.RecordCount()), toaster.StyleSuccess)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.grid.Unmount()

	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}

	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
