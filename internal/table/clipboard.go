package table

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard is the system clipboard as seen by the grid.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

var errNoClipboard = errors.New("no clipboard utility found")

type systemClipboard struct{}

// SystemClipboard uses the platform clipboard (pbcopy, xclip, xsel,
// wl-clipboard or the Windows API).
func SystemClipboard() Clipboard { return systemClipboard{} }

func (systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errNoClipboard
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}

// memoryClipboard keeps copied text in process. It backs copy and paste
// when no system clipboard is available.
type memoryClipboard struct {
	text string
}

func (m *memoryClipboard) ReadAll() (string, error) { return m.text, nil }

func (m *memoryClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}
