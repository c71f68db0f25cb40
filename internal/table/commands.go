package table

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/grid"
	"github.com/kobzarvs/qchart/internal/host"
	"github.com/kobzarvs/qchart/internal/logger"
	"github.com/kobzarvs/qchart/internal/render"
)

func (t *Table) openCommand() {
	t.returnMode = t.mode
	t.mode = ModeCommand
	t.cmd = t.cmd[:0]
	t.cmdCursor = 0
}

func (t *Table) closeCommand() {
	t.mode = t.returnMode
	t.cmd = t.cmd[:0]
	t.cmdCursor = 0
}

// CommandLine returns the text being typed after ':'.
func (t *Table) CommandLine() (string, int, bool) {
	return string(t.cmd), t.cmdCursor, t.mode == ModeCommand
}

func (t *Table) handleCommandKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.closeCommand()
	case tcell.KeyEnter:
		cmd := strings.TrimSpace(string(t.cmd))
		t.closeCommand()
		return t.execCommand(cmd)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.cmdCursor > 0 {
			t.cmd = append(t.cmd[:t.cmdCursor-1], t.cmd[t.cmdCursor:]...)
			t.cmdCursor--
		} else if len(t.cmd) == 0 {
			t.closeCommand()
		}
	case tcell.KeyDelete:
		if t.cmdCursor < len(t.cmd) {
			t.cmd = append(t.cmd[:t.cmdCursor], t.cmd[t.cmdCursor+1:]...)
		}
	case tcell.KeyLeft:
		if t.cmdCursor > 0 {
			t.cmdCursor--
		}
	case tcell.KeyRight:
		if t.cmdCursor < len(t.cmd) {
			t.cmdCursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		t.cmdCursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		t.cmdCursor = len(t.cmd)
	case tcell.KeyCtrlU:
		t.cmd = t.cmd[:0]
		t.cmdCursor = 0
	case tcell.KeyRune:
		t.insertCommandRune(ev.Rune())
	}
	return false
}

func (t *Table) insertCommandRune(r rune) {
	t.cmd = append(t.cmd[:t.cmdCursor], append([]rune{r}, t.cmd[t.cmdCursor:]...)...)
	t.cmdCursor++
}

// execCommand runs a command line and reports whether to quit.
func (t *Table) execCommand(cmd string) bool {
	if cmd == "" {
		return false
	}
	name, rest, _ := strings.Cut(cmd, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch name {
	case "q":
		return t.quit(false)
	case "q!":
		return t.quit(true)
	case "w":
		t.Save(nil)
	case "wq", "x":
		t.Save(func() { t.post(func() { t.quitRequested = true }) })
	case "export":
		path := t.exportPath
		if rest != "" {
			path = rest
		}
		t.export(path)
	case "reload":
		t.Reload()
	case "select":
		if t.host == nil || rest == "" {
			t.setStatus(t.loc.Get("unknown_command") + " " + cmd)
			return false
		}
		if err := t.host.Select(rest); err != nil {
			t.setError("read_failed", err)
			return false
		}
		t.Load(context.Background(), true)
	case "type":
		kind, err := render.ParseType(rest)
		if err != nil {
			t.setError("unknown_command", err)
			return false
		}
		t.setChartType(kind)
	case "title":
		t.chart.SetTitle(rest)
		t.saveChartSettings()
	case "xlabel":
		_, y := t.chart.AxisLabels()
		t.chart.SetAxisLabels(rest, y)
		t.saveChartSettings()
	case "ylabel":
		x, _ := t.chart.AxisLabels()
		t.chart.SetAxisLabels(x, rest)
		t.saveChartSettings()
	case "grid":
		t.chart.SetGridVisible(parseSwitch(args, !t.chart.GridVisible()))
		t.saveChartSettings()
	case "values":
		t.chart.SetValueVisible(parseSwitch(args, !t.chart.ValueVisible()))
		t.saveChartSettings()
	case "stack":
		t.chart.SetStacked(parseSwitch(args, !t.chart.Stacked()))
		t.saveChartSettings()
	case "palette":
		if len(args) == 0 {
			t.setStatus(strings.Join(render.PaletteNames(), " "))
			return false
		}
		if err := t.chart.SetPalette(args[0], args[1:]); err != nil {
			t.setError("unknown_command", err)
			return false
		}
		t.saveChartSettings()
	case "shape":
		if len(args) == 0 {
			t.setStatus(strings.Join(render.ShapeNames(), " "))
			return false
		}
		t.chart.SetPeopleShape(args[0])
		t.saveChartSettings()
	case "header":
		return t.headerCommand(args)
	case "insert", "delete":
		return t.structureCommand(name, args)
	case "goto":
		at, err := grid.ParseCellRef(rest)
		if err != nil {
			t.setError("unknown_command", err)
			return false
		}
		rows, cols := t.grid.RenderSize()
		if at.Row >= rows || at.Col >= cols {
			t.setStatus(t.loc.Get("unknown_command") + " " + cmd)
			return false
		}
		_ = t.sel.SetStart(at)
	case "orient":
		switch rest {
		case "columns":
			t.data.SetColumnCategory(true)
		case "rows":
			t.data.SetColumnCategory(false)
		default:
			t.setStatus(t.loc.Get("unknown_command") + " " + cmd)
		}
	case "data":
		t.setPage(PageData)
	case "chart":
		t.setPage(PageChart)
	default:
		t.setStatus(t.loc.Get("unknown_command") + " " + name)
		t.statusErr = true
	}
	return false
}

// parseSwitch reads "on"/"off" from args, toggling when absent.
func parseSwitch(args []string, toggled bool) bool {
	if len(args) == 0 {
		return toggled
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1", "show":
		return true
	case "off", "false", "0", "hide":
		return false
	}
	return toggled
}

func (t *Table) headerCommand(args []string) bool {
	if len(args) == 0 {
		t.setStatus(t.loc.Get("unknown_command") + " header")
		return false
	}
	switch args[0] {
	case "row":
		t.toggleHeaderRow(parseSwitch(args[1:], !t.grid.ShowHeaderRow()))
	case "column", "col":
		t.toggleHeaderColumn(parseSwitch(args[1:], !t.grid.ShowHeaderColumn()))
	default:
		t.setStatus(t.loc.Get("unknown_command") + " header " + args[0])
	}
	return false
}

func (t *Table) structureCommand(name string, args []string) bool {
	if len(args) == 0 {
		t.setStatus(t.loc.Get("unknown_command") + " " + name)
		return false
	}
	switch name + " " + args[0] {
	case "insert row":
		t.insertRow()
	case "insert column", "insert col":
		t.insertColumn()
	case "delete row":
		t.deleteRow()
	case "delete column", "delete col":
		t.deleteColumn()
	default:
		t.setStatus(t.loc.Get("unknown_command") + " " + name + " " + args[0])
	}
	return false
}

func (t *Table) quit(force bool) bool {
	if t.mode == ModeEdit {
		t.commitEdit(CommitOverwrite)
	}
	if !force && t.dirty && t.host != nil {
		t.setStatus(t.loc.Get("unsaved"))
		return false
	}
	return true
}

// QuitRequested reports whether an asynchronous :wq finished.
func (t *Table) QuitRequested() bool { return t.quitRequested }

// export draws the chart into path. The format follows the extension.
func (t *Table) export(path string) {
	if t.page == PageData {
		t.snapshot()
	}
	format, err := render.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		t.setError("export_failed", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		t.setError("export_failed", err)
		return
	}
	t.chart.SetSize(t.cfg.Chart.ExportWidth, t.cfg.Chart.ExportHeight)
	err = t.chart.Draw(f, t.data, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		t.setError("export_failed", err)
		return
	}
	logger.Info("chart exported", "path", path, "type", string(t.chart.Type()))
	t.setStatus(t.loc.Get("exported") + " " + path)
}

// Load reads the bound range into the grid, asynchronously. Without a
// binding, or when rebind is set, the host selection is read and bound
// instead.
func (t *Table) Load(ctx context.Context, rebind bool) {
	if t.host == nil {
		return
	}
	h := t.host
	host.Go(ctx, func(ctx context.Context) ([][]string, error) {
		if !rebind {
			m, err := h.ReadBinding(ctx, BindingName)
			if err == nil {
				return m, nil
			}
			if !errors.Is(err, host.ErrBindingNotFound) {
				return nil, err
			}
		}
		m, err := h.ReadSelection(ctx)
		if err != nil {
			return nil, err
		}
		ref := h.Selection()
		if ref == "" {
			ref = extentRef(m)
		}
		if err := h.Bind(ctx, BindingName, ref); err != nil {
			return nil, err
		}
		return m, nil
	}, func(r host.Result[[][]string]) {
		t.post(func() { t.applyHostResult(r) })
	})
}

// Reload rereads the bound range, dropping unsaved edits.
func (t *Table) Reload() {
	if t.host == nil {
		return
	}
	h := t.host
	host.Go(context.Background(), func(ctx context.Context) ([][]string, error) {
		return h.ReadBinding(ctx, BindingName)
	}, func(r host.Result[[][]string]) {
		t.post(func() { t.applyHostResult(r) })
	})
}

// BindingChanged re-reads the bound range after a write by someone else.
// Writes that match the grid and tables with unsaved edits are left alone.
func (t *Table) BindingChanged(name string) {
	if t.host == nil || name != BindingName || t.dirty {
		return
	}
	h := t.host
	host.Go(context.Background(), func(ctx context.Context) ([][]string, error) {
		return h.ReadBinding(ctx, BindingName)
	}, func(r host.Result[[][]string]) {
		t.post(func() {
			if r.Status != host.Succeeded || t.dirty ||
				slices.EqualFunc(r.Value, t.grid.Matrix(), slices.Equal[[]string]) {
				return
			}
			if rng := t.sel.Range(); !rng.Empty() {
				p := *rng.Start
				t.restore = &p
			}
			t.applyHostResult(r)
			logger.Info("binding reloaded", "name", name)
		})
	})
}

func (t *Table) applyHostResult(r host.Result[[][]string]) {
	if r.Status != host.Succeeded {
		t.setError("read_failed", r.Err)
		return
	}
	t.SetMatrix(r.Value)
	t.dirty = false
	if p := t.restore; p != nil {
		t.restore = nil
		if t.grid.Editable(*p) {
			_ = t.sel.SetStart(*p)
		}
	}
}

var errWriteBinding = errors.New("write binding")

// Save writes settings and grid back to the host and saves the document.
// then, if set, runs on the worker after a successful save.
func (t *Table) Save(then func()) {
	if t.mode == ModeEdit {
		t.commitEdit(CommitOverwrite)
	}
	if t.host == nil {
		t.dirty = false
		if then != nil {
			then()
		}
		return
	}
	if t.settings != nil {
		if err := t.settings.Save(); err != nil {
			t.setError("save_failed", err)
			return
		}
	}
	h := t.host
	m := t.grid.Matrix()
	host.Go(context.Background(), func(ctx context.Context) (struct{}, error) {
		if err := h.WriteBinding(ctx, BindingName, m); err != nil {
			return struct{}{}, fmt.Errorf("%w %s: %w", errWriteBinding, BindingName, err)
		}
		return struct{}{}, h.Save()
	}, func(r host.Result[struct{}]) {
		t.post(func() {
			if r.Status != host.Succeeded {
				key := "save_failed"
				if errors.Is(r.Err, errWriteBinding) {
					key = "write_failed"
				}
				t.setError(key, r.Err)
				return
			}
			t.dirty = false
			t.setStatus(t.loc.Get("saved"))
		})
		if r.Status == host.Succeeded && then != nil {
			then()
		}
	})
}

// extentRef is the A1 reference of a matrix placed at A1.
func extentRef(m [][]string) string {
	rows, cols := max(len(m), 1), 1
	for _, row := range m {
		cols = max(cols, len(row))
	}
	return "A1:" + grid.ColumnLabel(cols) + fmt.Sprint(rows)
}
