package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ryanuber/columnize"
)

// Table is a titled grid of cells. Header is the first row.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

type Renderer interface {
	Render(w io.Writer, t Table) error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Italic(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// BoxRenderer draws tables with rounded borders for terminals.
type BoxRenderer struct{}

func (BoxRenderer) Render(w io.Writer, t Table) error {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// plainDelim never shows up in plan text, unlike columnize's default "|".
const plainDelim = "\x1f"

// PlainRenderer prints tables as aligned columns without borders or escapes.
type PlainRenderer struct{}

func (PlainRenderer) Render(w io.Writer, t Table) error {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, joinCells(t.Header))
	for _, row := range t.Rows {
		lines = append(lines, joinCells(row))
	}

	config := columnize.DefaultConfig()
	config.Delim = plainDelim
	config.Glue = "  "

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.Title)
		b.WriteString("\n")
	}
	b.WriteString(columnize.Format(lines, config))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func joinCells(cells []string) string {
	flat := make([]string, len(cells))
	for i, c := range cells {
		flat[i] = strings.Join(strings.Fields(c), " ")
	}
	return strings.Join(flat, plainDelim)
}

// RenderAll renders tables in order, separated by a blank line.
func RenderAll(w io.Writer, r Renderer, tables ...Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, t); err != nil {
			return err
		}
	}
	return nil
}
