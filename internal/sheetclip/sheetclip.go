// Package sheetclip converts between spreadsheet clipboard text (tab separated
// columns, newline separated rows, quoted multi-line fields) and string grids.
package sheetclip

import (
	"fmt"
	"strings"
)

// Parse decodes clipboard text into rows of fields. Malformed input never
// fails: ragged rows are kept as they are and an unterminated quoted field is
// closed at the end of the input.
func Parse(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var rows [][]string
	var row []string
	multiline := false
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		for i, field := range fields {
			if multiline {
				// Continuation of a quoted field; a tab stays part of it.
				sep := "\t"
				if i == 0 {
					sep = "\n"
				}
				last := len(row) - 1
				if strings.Count(field, `"`)&1 == 1 {
					multiline = false
					row[last] = unescape(row[last] + sep + strings.TrimSuffix(field, `"`))
				} else {
					row[last] += sep + field
				}
				continue
			}
			// Only an odd quote count leaves the field open.
			if i == len(fields)-1 && strings.HasPrefix(field, `"`) && strings.Count(field, `"`)&1 == 1 {
				row = append(row, field[1:])
				multiline = true
				continue
			}
			row = append(row, unquote(field))
		}
		if !multiline {
			rows = append(rows, row)
			row = nil
		}
	}
	if multiline {
		row[len(row)-1] = unescape(row[len(row)-1])
		rows = append(rows, row)
	}
	return rows
}

// closesOnSameLine reports whether a field that opens with a quote is a
// complete quoted value, e.g. `"a""b"`.
func closesOnSameLine(field string) bool {
	if len(field) < 2 || !strings.HasSuffix(field, `"`) {
		return false
	}
	return strings.Count(field, `"`)&1 == 0
}

func unquote(field string) string {
	if closesOnSameLine(field) {
		field = field[1 : len(field)-1]
	}
	return unescape(field)
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// Stringify encodes rows as clipboard text. Values containing a newline are
// quoted with inner quotes doubled.
func Stringify(rows [][]string) string {
	var sb strings.Builder
	for r, row := range rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(encode(v))
		}
	}
	return sb.String()
}

// StringifyValues is Stringify for loosely typed cells. Nil becomes an empty
// field and other values use their default formatting.
func StringifyValues(rows [][]any) string {
	out := make([][]string, len(rows))
	for r, row := range rows {
		out[r] = make([]string, len(row))
		for c, v := range row {
			switch v := v.(type) {
			case nil:
			case string:
				out[r][c] = v
			default:
				out[r][c] = fmt.Sprint(v)
			}
		}
	}
	return Stringify(out)
}

func encode(v string) string {
	if strings.Contains(v, "\n") || strings.HasPrefix(v, `"`) {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
