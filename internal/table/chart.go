package table

import (
	"github.com/kobzarvs/qchart/internal/config"
	"github.com/kobzarvs/qchart/internal/logger"
	"github.com/kobzarvs/qchart/internal/render"
	"github.com/kobzarvs/qchart/internal/settings"
)

func (t *Table) applyChartOptions(opts config.ChartOptions) {
	if kind, err := render.ParseType(opts.Type); err == nil {
		t.chart.SetType(kind)
	} else if opts.Type != "" {
		logger.Warn("unknown chart type in config", "type", opts.Type)
	}
	t.chart.SetStacked(opts.Stacked)
	if opts.Palette != "" {
		if err := t.chart.SetPalette(opts.Palette, nil); err != nil {
			logger.Warn("unknown palette in config", "palette", opts.Palette, "error", err)
		}
	}
	t.chart.SetSize(opts.ExportWidth, opts.ExportHeight)
	t.chart.SetPeopleShape(opts.PeopleShape)
}

// applySettings restores the chart from settings saved in the document.
// They take precedence over the config file.
func (t *Table) applySettings(c settings.ChartSettings, p settings.PeopleSettings) {
	t.chart.SetTitle(c.Title)
	t.chart.SetAxisLabels(c.XAxisLabel, c.YAxisLabel)
	t.chart.SetGridVisible(c.GridVisibility)
	t.chart.SetValueVisible(c.ValueVisibility)
	if c.Colors.Name != "" || len(c.Colors.Values) > 0 {
		if err := t.chart.SetPalette(c.Colors.Name, c.Colors.Values); err != nil {
			logger.Warn("ignoring saved palette", "palette", c.Colors.Name, "error", err)
		}
	}
	if kind, err := render.ParseType(c.ChartType); err == nil {
		t.chart.SetType(kind)
	}
	if c.Stacked {
		t.chart.SetStacked(true)
	}
	t.chart.SetPeopleShape(p.Shape)
	if t.chart.Type() == render.People && p.Title != "" {
		t.chart.SetTitle(p.Title)
	}
}

// saveChartSettings copies the renderer state into the settings manager.
// The manager writes it to the document on its own schedule; the document
// itself is dirty until the next save.
func (t *Table) saveChartSettings() {
	if t.settings == nil {
		return
	}
	r := t.chart
	x, y := r.AxisLabels()
	t.settings.UpdateChart(func(c *settings.ChartSettings) {
		c.Title = r.Title()
		c.XAxisLabel, c.YAxisLabel = x, y
		c.GridVisibility = r.GridVisible()
		c.ValueVisibility = r.ValueVisible()
		c.Colors = settings.Colors{Name: r.PaletteName(), Values: r.PaletteHex()}
		c.ChartType = string(r.Type())
		c.Stacked = r.Stacked()
	})
	t.settings.UpdatePeople(func(p *settings.PeopleSettings) {
		p.Shape = r.PeopleShape()
		p.Theme = r.PaletteName()
		if r.Type() == render.People {
			p.Title = r.Title()
		}
	})
	t.dirty = true
}
