package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Grid  map[string]string `toml:"grid"`
	Edit  map[string]string `toml:"edit"`
	Chart map[string]string `toml:"chart"`
}

type EditorOptions struct {
	CellWidth        int    `toml:"cell-width"`
	MaxCellWidth     int    `toml:"max-cell-width"`
	Language         string `toml:"language"`
	AutosaveInterval int    `toml:"autosave-interval"`
}

type ChartOptions struct {
	Type         string `toml:"type"`
	Palette      string `toml:"palette"`
	Stacked      bool   `toml:"stacked"`
	ExportFormat string `toml:"export-format"`
	ExportWidth  int    `toml:"export-width"`
	ExportHeight int    `toml:"export-height"`
	PeopleShape  string `toml:"people-shape"`
}

type Theme struct {
	Theme                 string `toml:"theme"`
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	BandForeground        string `toml:"band-foreground"`
	BandBackground        string `toml:"band-background"`
	HeaderForeground      string `toml:"header-foreground"`
	HeaderBackground      string `toml:"header-background"`
	SelectionForeground   string `toml:"selection-foreground"`
	SelectionBackground   string `toml:"selection-background"`
	EditForeground        string `toml:"edit-foreground"`
	EditBackground        string `toml:"edit-background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	CommandlineForeground string `toml:"commandline-foreground"`
	CommandlineBackground string `toml:"commandline-background"`
	ErrorForeground       string `toml:"error-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Chart  ChartOptions  `toml:"chart"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			CellWidth:        10,
			MaxCellWidth:     24,
			Language:         "",
			AutosaveInterval: 15,
		},
		Chart: ChartOptions{
			Type:         "column",
			Palette:      "office",
			Stacked:      false,
			ExportFormat: "png",
			ExportWidth:  800,
			ExportHeight: 480,
			PeopleShape:  "person",
		},
		Theme: Theme{
			Foreground:            "#D4D4D4",
			Background:            "#1E1E1E",
			BandForeground:        "#858585",
			BandBackground:        "#252526",
			HeaderForeground:      "#DCDCAA",
			HeaderBackground:      "#1E1E1E",
			SelectionForeground:   "#FFFFFF",
			SelectionBackground:   "#264F78",
			EditForeground:        "#000000",
			EditBackground:        "#E6B450",
			StatuslineForeground:  "#FFFFFF",
			StatuslineBackground:  "#217346",
			CommandlineForeground: "#D4D4D4",
			CommandlineBackground: "#1E1E1E",
			ErrorForeground:       "#F44747",
		},
		Keymap: Keymap{
			Grid: map[string]string{
				"up":          "move_up",
				"down":        "move_down",
				"left":        "move_left",
				"right":       "move_right",
				"shift+up":    "extend_up",
				"shift+down":  "extend_down",
				"shift+left":  "extend_left",
				"shift+right": "extend_right",
				"tab":         "next_cell",
				"shift+tab":   "prev_cell",
				"enter":       "next_row",
				"shift+enter": "prev_row",
				"f2":          "edit_append",
				"del":         "delete",
				"backspace":   "delete",
				"ctrl+a":      "select_all",
				"ctrl+c":      "copy",
				"ctrl+x":      "cut",
				"ctrl+v":      "paste",
				"ctrl+r":      "insert_row",
				"ctrl+l":      "insert_column",
				"ctrl+d":      "delete_row",
				"ctrl+k":      "delete_column",
				"ctrl+t":      "toggle_header_row",
				"ctrl+g":      "toggle_header_column",
				"ctrl+n":      "chart_page",
				":":           "enter_command",
				"ctrl+q":      "quit",
			},
			Edit: map[string]string{
				"esc":         "cancel_edit",
				"enter":       "commit_next_row",
				"shift+enter": "commit_prev_row",
				"tab":         "commit_next_cell",
				"shift+tab":   "commit_prev_cell",
				"left":        "caret_left",
				"right":       "caret_right",
				"home":        "caret_start",
				"end":         "caret_end",
				"backspace":   "backspace",
				"del":         "delete_char",
			},
			Chart: map[string]string{
				"left":   "prev_type",
				"right":  "next_type",
				"up":     "prev_series",
				"down":   "next_series",
				"space":  "toggle_series",
				"s":      "toggle_stack",
				"g":      "toggle_grid",
				"v":      "toggle_values",
				"p":      "next_palette",
				"e":      "export",
				"o":      "swap_orientation",
				"esc":    "data_page",
				"ctrl+n": "data_page",
				":":      "enter_command",
				"ctrl+q": "quit",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.CellWidth > 0 {
		cfg.Editor.CellWidth = userCfg.Editor.CellWidth
	}
	if userCfg.Editor.MaxCellWidth > 0 {
		cfg.Editor.MaxCellWidth = userCfg.Editor.MaxCellWidth
	}
	if userCfg.Editor.Language != "" {
		cfg.Editor.Language = userCfg.Editor.Language
	}
	if userCfg.Editor.AutosaveInterval > 0 {
		cfg.Editor.AutosaveInterval = userCfg.Editor.AutosaveInterval
	}
	if userCfg.Chart.Type != "" {
		cfg.Chart.Type = userCfg.Chart.Type
	}
	if userCfg.Chart.Palette != "" {
		cfg.Chart.Palette = userCfg.Chart.Palette
	}
	if userCfg.Chart.Stacked {
		cfg.Chart.Stacked = userCfg.Chart.Stacked
	}
	if userCfg.Chart.ExportFormat != "" {
		cfg.Chart.ExportFormat = userCfg.Chart.ExportFormat
	}
	if userCfg.Chart.ExportWidth > 0 {
		cfg.Chart.ExportWidth = userCfg.Chart.ExportWidth
	}
	if userCfg.Chart.ExportHeight > 0 {
		cfg.Chart.ExportHeight = userCfg.Chart.ExportHeight
	}
	if userCfg.Chart.PeopleShape != "" {
		cfg.Chart.PeopleShape = userCfg.Chart.PeopleShape
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap.Grid {
		cfg.Keymap.Grid[k] = v
	}
	for k, v := range userCfg.Keymap.Edit {
		cfg.Keymap.Edit[k] = v
	}
	for k, v := range userCfg.Keymap.Chart {
		cfg.Keymap.Chart[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.BandForeground != "" {
		dst.BandForeground = src.BandForeground
	}
	if src.BandBackground != "" {
		dst.BandBackground = src.BandBackground
	}
	if src.HeaderForeground != "" {
		dst.HeaderForeground = src.HeaderForeground
	}
	if src.HeaderBackground != "" {
		dst.HeaderBackground = src.HeaderBackground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.EditForeground != "" {
		dst.EditForeground = src.EditForeground
	}
	if src.EditBackground != "" {
		dst.EditBackground = src.EditBackground
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.CommandlineForeground != "" {
		dst.CommandlineForeground = src.CommandlineForeground
	}
	if src.CommandlineBackground != "" {
		dst.CommandlineBackground = src.CommandlineBackground
	}
	if src.ErrorForeground != "" {
		dst.ErrorForeground = src.ErrorForeground
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QCHART_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qchart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qchart"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
