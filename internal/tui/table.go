package tui

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

// DefaultTerminalWidth is used when terminal width cannot be determined.
const DefaultTerminalWidth = 80

// minColumnWidth is the floor a column can be shrunk to when fitting
// a table into the terminal.
const minColumnWidth = 5

// TableColumn defines a column in a table.
type TableColumn struct {
	Name  string
	Width int
	Align Alignment
}

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table provides styled table rendering.
type Table struct {
	w       io.Writer
	styles  *TableStyles
	columns []TableColumn
}

// NewTable creates a new table with the given columns.
func NewTable(w io.Writer, columns []TableColumn) *Table {
	return &Table{
		w:       w,
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// WriteHeader writes the table header row.
func (t *Table) WriteHeader() {
	header := ""
	for i, col := range t.columns {
		if i > 0 {
			header += " "
		}
		format := t.formatSpec(col)
		header += fmt.Sprintf(format, col.Name)
	}
	_, _ = fmt.Fprintln(t.w, t.styles.Header.Render(header))
}

// WriteRow writes a data row to the table.
func (t *Table) WriteRow(values ...string) {
	row := ""
	for i, col := range t.columns {
		if i > 0 {
			row += " "
		}
		format := t.formatSpec(col)
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row += fmt.Sprintf(format, truncate(value, col.Width))
	}
	_, _ = fmt.Fprintln(t.w, row)
}

// formatSpec returns the format specifier for a column.
func (t *Table) formatSpec(col TableColumn) string {
	if col.Align == AlignRight {
		return fmt.Sprintf("%%%ds", col.Width)
	}
	return fmt.Sprintf("%%-%ds", col.Width)
}

// truncate caps a value at width runes, ending with an ellipsis.
// Requires width > 1 to avoid slice bounds panic.
func truncate(value string, width int) string {
	if width <= 1 || utf8.RuneCountInString(value) <= width {
		return value
	}
	runes := []rune(value)
	return string(runes[:width-1]) + "…"
}

// FitColumns builds left-aligned columns sized to the widest cell of each,
// then shrinks the widest columns until the table fits termWidth.
// Columns never shrink below minColumnWidth, so very narrow terminals may
// still overflow rather than become unreadable.
func FitColumns(headers []string, rows [][]string, termWidth int) []TableColumn {
	columns := make([]TableColumn, len(headers))
	for i, h := range headers {
		columns[i] = TableColumn{Name: h, Width: utf8.RuneCountInString(h)}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(columns) {
				break
			}
			if w := utf8.RuneCountInString(cell); w > columns[i].Width {
				columns[i].Width = w
			}
		}
	}

	// One separator space between columns
	total := len(columns) - 1
	for _, col := range columns {
		total += col.Width
	}

	for total > termWidth {
		widest := 0
		for i, col := range columns {
			if col.Width > columns[widest].Width {
				widest = i
			}
		}
		if columns[widest].Width <= minColumnWidth {
			break
		}
		columns[widest].Width--
		total--
	}

	return columns
}

// detectTerminalWidth returns the current terminal width.
// Falls back to DefaultTerminalWidth when stdout is not a terminal.
func detectTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}
