package table

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qchart/internal/grid"
)

// beginEdit opens the overlay on the selection anchor. The caret position is
// read once the overlay has been drawn.
func (t *Table) beginEdit(kind EditKind) {
	rng := t.sel.Range()
	if rng.Empty() {
		return
	}
	at := *rng.Start
	t.edit = editState{kind: kind, at: at}
	if kind == EditAppend {
		t.edit.text = []rune(t.grid.RenderCell(at))
		t.Defer(func() {
			if t.mode == ModeEdit && t.edit.at == at {
				t.edit.caret = len(t.edit.text)
			}
		})
	}
	t.mode = ModeEdit
}

// commitEdit leaves edit mode, writing the overlay text unless mode is
// CommitEscape.
func (t *Table) commitEdit(mode CommitMode) {
	if t.mode != ModeEdit {
		return
	}
	t.mode = ModeView
	if mode == CommitEscape {
		t.edit = editState{}
		return
	}
	value := string(t.edit.text)
	if value != t.grid.RenderCell(t.edit.at) {
		t.grid.SetRenderCell(t.edit.at, value)
		t.markChanged()
	}
	t.edit = editState{}
}

// EditText returns the overlay text and caret while editing.
func (t *Table) EditText() (string, int, bool) {
	if t.mode != ModeEdit {
		return "", 0, false
	}
	return string(t.edit.text), t.edit.caret, true
}

// EditCell returns the cell under the overlay.
func (t *Table) EditCell() (grid.RenderIndex, bool) {
	return t.edit.at, t.mode == ModeEdit
}

func (t *Table) handleEditKey(ev *tcell.EventKey) bool {
	if action, ok := t.keymap.edit[keyString(ev)]; ok {
		t.execEditAction(action)
		return false
	}
	if printable(ev) {
		t.insertRune(ev.Rune())
	}
	return false
}

func (t *Table) execEditAction(action string) {
	switch action {
	case actionCancelEdit:
		t.commitEdit(CommitEscape)
	case actionCommitNextRow:
		t.commitEdit(CommitOverwrite)
		t.sel.MoveByEnter(false)
	case actionCommitPrevRow:
		t.commitEdit(CommitOverwrite)
		t.sel.MoveByEnter(true)
	case actionCommitNextCell:
		t.commitEdit(CommitOverwrite)
		t.sel.MoveByTab(false)
	case actionCommitPrevCell:
		t.commitEdit(CommitOverwrite)
		t.sel.MoveByTab(true)
	case actionCaretLeft:
		if t.edit.caret > 0 {
			t.edit.caret--
		}
	case actionCaretRight:
		if t.edit.caret < len(t.edit.text) {
			t.edit.caret++
		}
	case actionCaretStart:
		t.edit.caret = 0
	case actionCaretEnd:
		t.edit.caret = len(t.edit.text)
	case actionBackspace:
		if t.edit.caret > 0 {
			t.edit.text = append(t.edit.text[:t.edit.caret-1], t.edit.text[t.edit.caret:]...)
			t.edit.caret--
		}
	case actionDeleteChar:
		if t.edit.caret < len(t.edit.text) {
			t.edit.text = append(t.edit.text[:t.edit.caret], t.edit.text[t.edit.caret+1:]...)
		}
	}
}

func (t *Table) insertRune(r rune) {
	if len(t.edit.text) >= grid.MaxCellLength {
		return
	}
	t.edit.text = append(t.edit.text[:t.edit.caret], append([]rune{r}, t.edit.text[t.edit.caret:]...)...)
	t.edit.caret++
}
