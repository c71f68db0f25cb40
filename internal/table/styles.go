package table

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/config"
)

type styles struct {
	main      tcell.Style
	band      tcell.Style
	header    tcell.Style
	selection tcell.Style
	edit      tcell.Style
	status    tcell.Style
	command   tcell.Style
	err       tcell.Style
	mainBg    tcell.Color
}

func newStyles(th config.Theme) styles {
	mainFg := parseColor(th.Foreground, tcell.ColorWhite)
	mainBg := parseColor(th.Background, tcell.ColorBlack)
	bandFg := parseColor(th.BandForeground, tcell.ColorGray)
	bandBg := parseColor(th.BandBackground, mainBg)
	headerFg := parseColor(th.HeaderForeground, mainFg)
	headerBg := parseColor(th.HeaderBackground, mainBg)
	selFg := parseColor(th.SelectionForeground, mainFg)
	selBg := parseColor(th.SelectionBackground, tcell.ColorNavy)
	editFg := parseColor(th.EditForeground, tcell.ColorBlack)
	editBg := parseColor(th.EditBackground, tcell.ColorYellow)
	statusFg := parseColor(th.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(th.StatuslineBackground, tcell.ColorGray)
	cmdFg := parseColor(th.CommandlineForeground, mainFg)
	cmdBg := parseColor(th.CommandlineBackground, mainBg)
	errFg := parseColor(th.ErrorForeground, tcell.ColorRed)
	return styles{
		main:      tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		band:      tcell.StyleDefault.Foreground(bandFg).Background(bandBg),
		header:    tcell.StyleDefault.Foreground(headerFg).Background(headerBg).Bold(true),
		selection: tcell.StyleDefault.Foreground(selFg).Background(selBg),
		edit:      tcell.StyleDefault.Foreground(editFg).Background(editBg),
		status:    tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		command:   tcell.StyleDefault.Foreground(cmdFg).Background(cmdBg),
		err:       tcell.StyleDefault.Foreground(errFg).Background(cmdBg),
		mainBg:    mainBg,
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 4 {
		name = "#" + strings.Repeat(name[1:2], 2) + strings.Repeat(name[2:3], 2) + strings.Repeat(name[3:4], 2)
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
