package shortcut

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// HelpTitle is the title of the help dialog
const HelpTitle = "Keyboard Shortcuts"

// HelpRow is one line of the help table
type HelpRow struct {
	Combo       string `json:"combo"`
	Display     string `json:"display"`
	Description string `json:"description"`
}

// HelpPresenter displays the help table. It stands in for the host's dialog facility.
type HelpPresenter interface {
	Present(title string, rows []HelpRow)
}

// PresenterFunc adapts a function to HelpPresenter
type PresenterFunc func(title string, rows []HelpRow)

func (f PresenterFunc) Present(title string, rows []HelpRow) {
	f(title, rows)
}

// HelpRows converts shortcuts to help rows, keeping their order.
func HelpRows(shortcuts []Shortcut) []HelpRow {
	rows := make([]HelpRow, 0, len(shortcuts))
	for _, s := range shortcuts {
		rows = append(rows, HelpRow{
			Combo:       s.Combo,
			Display:     FormatCombo(s.Combo),
			Description: s.Description,
		})
	}
	return rows
}

var (
	helpHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	helpComboStyle  = helpCellStyle.Foreground(lipgloss.Color("39"))
)

// RenderTable renders rows as a bordered text table.
func RenderTable(rows []HelpRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Shortcut", "Action").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return helpHeaderStyle
			case col == 0:
				return helpComboStyle
			default:
				return helpCellStyle
			}
		})

	for _, r := range rows {
		t.Row(r.Display, r.Description)
	}

	return t.String()
}

// RenderHTML renders rows as the HTML table shown by the desk help dialog.
func RenderHTML(rows []HelpRow) string {
	var sb strings.Builder
	sb.WriteString(`<table class="table table-bordered"><thead><tr><th>Shortcut</th><th>Action</th></tr></thead><tbody>`)
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td><kbd>%s</kbd></td><td>%s</td></tr>",
			html.EscapeString(r.Display),
			html.EscapeString(r.Description),
		))
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

// WriterPresenter prints the help table to a writer.
type WriterPresenter struct {
	W io.Writer
}

func (p *WriterPresenter) Present(title string, rows []HelpRow) {
	fmt.Fprintln(p.W, title)
	fmt.Fprintln(p.W, RenderTable(rows))
}
