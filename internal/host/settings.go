package host

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GetSetting reads a document scoped setting. Settings live in a very hidden
// sheet, one key per row.
func (w *Workbook) GetSetting(key string) (string, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	row, value, err := w.findSetting(key)
	if err != nil || row == 0 {
		return "", false, err
	}
	return value, true, nil
}

// SetSetting stores a document scoped setting. It is persisted on Save.
func (w *Workbook) SetSetting(key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx, _ := w.f.GetSheetIndex(settingsSheet); idx < 0 {
		if _, err := w.f.NewSheet(settingsSheet); err != nil {
			return fmt.Errorf("create settings sheet: %w", err)
		}
		if err := w.f.SetSheetVisible(settingsSheet, false, true); err != nil {
			return fmt.Errorf("hide settings sheet: %w", err)
		}
	}
	row, _, err := w.findSetting(key)
	if err != nil {
		return err
	}
	if row == 0 {
		rows, err := w.f.GetRows(settingsSheet)
		if err != nil {
			return err
		}
		row = len(rows) + 1
	}
	if err := w.f.SetCellStr(settingsSheet, fmt.Sprintf("A%d", row), key); err != nil {
		return err
	}
	return w.f.SetCellStr(settingsSheet, fmt.Sprintf("B%d", row), value)
}

// findSetting returns the 1-based row holding key, 0 when absent.
func (w *Workbook) findSetting(key string) (int, string, error) {
	if idx, _ := w.f.GetSheetIndex(settingsSheet); idx < 0 {
		return 0, "", nil
	}
	rows, err := w.f.GetRows(settingsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, "", fmt.Errorf("read settings: %w", err)
	}
	for i, r := range rows {
		if len(r) > 0 && r[0] == key {
			v := ""
			if len(r) > 1 {
				v = r[1]
			}
			return i + 1, v, nil
		}
	}
	return 0, "", nil
}
