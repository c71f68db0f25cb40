package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/config"
	"github.com/kobzarvs/qchart/internal/grid"
	"github.com/kobzarvs/qchart/internal/host"
	"github.com/kobzarvs/qchart/internal/locale"
	"github.com/kobzarvs/qchart/internal/logger"
	"github.com/kobzarvs/qchart/internal/session"
	"github.com/kobzarvs/qchart/internal/settings"
	"github.com/kobzarvs/qchart/internal/table"
)

// App is the top-level runtime for qchart.
type App struct {
	args []string
}

// New takes the command line arguments: an optional workbook path and an
// optional range to chart, such as "Sheet1!B2:E8".
func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(os.Getenv("QCHART_DEBUG") != ""); err != nil {
		fmt.Fprintln(os.Stderr, "qchart: logging disabled:", err)
	}
	defer logger.Close()

	interval := time.Duration(cfg.Editor.AutosaveInterval) * time.Second

	sm, err := session.NewManager(interval)
	if err != nil {
		logger.Warn("session disabled", "error", err)
	}

	var (
		wb      *host.Workbook
		absPath string
		ref     string
		mgr     *settings.Manager
	)
	if len(a.args) > 0 {
		if absPath, err = filepath.Abs(a.args[0]); err != nil {
			return err
		}
	} else if sm != nil {
		// Reopen the last workbook when it is still there.
		if last := sm.ActiveWorkbook(); last != "" {
			if _, err := os.Stat(last); err == nil {
				absPath = last
			}
		}
	}
	if absPath != "" {
		if wb, err = host.Open(absPath); err != nil {
			return err
		}
		defer func() { _ = wb.Close() }()
		if mgr, err = settings.NewManager(wb, interval); err != nil {
			return err
		}
		defer func() {
			if err := mgr.Stop(); err != nil {
				logger.Warn("flush chart settings", "error", err)
			}
		}()
	}
	if len(a.args) > 1 {
		ref = a.args[1]
	}

	var state session.WorkbookState
	if sm != nil && absPath != "" {
		state, _ = sm.Workbook(absPath)
	}
	if wb != nil {
		if ref != "" {
			if err := wb.Select(ref); err != nil {
				return err
			}
		} else if state.Range != "" {
			last := state.Range
			if state.Sheet != "" {
				last = host.QuoteSheet(state.Sheet) + "!" + last
			}
			if err := wb.Select(last); err != nil {
				logger.Warn("ignoring saved selection", "ref", last, "error", err)
			}
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	s.EnablePaste()
	defer s.Fini()

	opts := table.Options{
		Config:    cfg,
		Clipboard: table.SystemClipboard(),
		Settings:  mgr,
		Locale:    locale.New(cfg.Editor.Language),
		Post: func(fn func()) {
			_ = s.PostEvent(tcell.NewEventInterrupt(fn))
		},
	}
	if wb != nil {
		opts.Host = wb
		opts.ExportPath = exportPath(absPath, cfg.Chart.ExportFormat)
	}
	tb := table.New(opts)
	if wb != nil {
		wb.OnSelectionChanged(func(ev host.SelectionEvent) {
			logger.Debug("selection changed", "sheet", ev.Sheet, "ref", ev.Ref)
		})
		// Handlers run on host workers; the table is only touched on the UI loop.
		wb.OnBindingChanged(func(ev host.BindingEvent) {
			logger.Debug("binding written", "name", ev.Name, "ref", ev.Ref)
			opts.Post(func() { tb.BindingChanged(ev.Name) })
		})
	}

	if wb != nil {
		if state.CursorRow > 0 && state.CursorCol > 0 {
			tb.RestoreCursor(grid.RenderIndex{Row: state.CursorRow, Col: state.CursorCol})
		}
		if state.Page == table.PageChart.String() {
			tb.SetPage(table.PageChart)
		}
		tb.Load(context.Background(), len(a.args) > 1)
	}

	defer func() {
		if sm == nil {
			return
		}
		if wb != nil {
			st := session.WorkbookState{
				Sheet:   wb.Sheet(),
				Range:   wb.Selection(),
				Binding: table.BindingName,
				Page:    tb.Page().String(),
			}
			if rng := tb.Selection().Range(); !rng.Empty() {
				st.CursorRow, st.CursorCol = rng.Start.Row, rng.Start.Col
			}
			sm.SetWorkbook(absPath, st)
		}
		if err := sm.Stop(); err != nil {
			logger.Warn("save session", "error", err)
		}
	}()

	tb.Render(s)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
		}
		if tb.HandleEvent(ev) || tb.QuitRequested() {
			return nil
		}
		tb.Render(s)
		if tb.RunDeferred() {
			tb.Render(s)
		}
	}
}

// exportPath places exported charts next to the workbook.
func exportPath(workbook, format string) string {
	base := workbook[:len(workbook)-len(filepath.Ext(workbook))]
	return base + "-chart." + format
}
