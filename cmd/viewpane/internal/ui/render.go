package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	thumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#334155"))

	zoomStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#1e293b")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	statusKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height < 2 {
		return "Loading..."
	}

	rows := m.renderContent()
	m.overlayIndicators(rows)

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderContent samples the document through the viewport transform. Cells
// stand in for pixels: with the content horizontally centered and vertically
// top-aligned, the content's top-left corner sits at
// ((vw - scaledW)/2 + panX, panY) in screen cells, and each screen cell maps
// back to a document cell by dividing out the scale.
func (m Model) renderContent() []string {
	s := m.engine.State()
	vw := m.width
	vh := m.height - 1
	scale := s.Scale()
	if scale <= 0 || !m.measured {
		return blankRows(vw, vh)
	}

	left := (float64(vw)-s.ScaledWidth())/2 + s.PanX
	top := s.PanY

	rows := make([]string, vh)
	for y := 0; y < vh; y++ {
		docRow := int((float64(y) - top) / scale)
		if docRow < 0 || docRow >= len(m.lines) {
			rows[y] = strings.Repeat(" ", vw)
			continue
		}
		line := []rune(m.lines[docRow])
		var sb strings.Builder
		for x := 0; x < vw; x++ {
			docCol := int((float64(x) - left) / scale)
			if float64(x) < left || docCol < 0 || docCol >= len(line) {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(line[docCol])
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func blankRows(w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(" ", w)
	}
	return rows
}

// overlayIndicators draws the thumbs and zoom label over the content when
// they are visible. Each row is recomposed from its plain text in a single
// pass; styled segments are only ever appended, never re-indexed, so the ANSI
// sequences lipgloss emits cannot corrupt later edits.
func (m Model) overlayIndicators(rows []string) {
	view := m.engine.Indicators().View()
	if !view.Visible {
		return
	}
	vh := len(rows)
	vw := m.width
	if vh == 0 || vw < 2 {
		return
	}

	verticalCell := func(y int) string {
		t := view.Vertical
		if float64(y) >= t.Position && float64(y) < t.Position+t.Extent {
			return thumbStyle.Render("█")
		}
		return trackStyle.Render("│")
	}

	label := zoomStyle.Render(view.ZoomLabel)
	labelW := lipgloss.Width(label)
	labelRow := vh - 2
	labelX := vw - 2 - labelW
	if labelX < 0 {
		labelRow = -1
	}

	for y := 0; y < vh; y++ {
		plain := []rune(rows[y])

		switch {
		case y == vh-1:
			// Horizontal track along the bottom viewport row.
			t := view.Horizontal
			var sb strings.Builder
			for x := 0; x < vw-1; x++ {
				if float64(x) >= t.Position && float64(x) < t.Position+t.Extent {
					sb.WriteString(thumbStyle.Render("▄"))
				} else {
					sb.WriteString(trackStyle.Render("▁"))
				}
			}
			sb.WriteString(verticalCell(y))
			rows[y] = sb.String()

		case y == labelRow:
			rows[y] = string(plain[:labelX]) + label + " " + verticalCell(y)

		default:
			rows[y] = string(plain[:vw-1]) + verticalCell(y)
		}
	}
}

func (m Model) renderStatus() string {
	s := m.engine.State()
	left := statusStyle.Render(fmt.Sprintf(" %s — %d×%d", m.path, int(m.contentW), int(m.contentH)))
	help := fmt.Sprintf("%s zoom  %s fit  %s reset  %s quit",
		statusKeyStyle.Render("+/-"),
		statusKeyStyle.Render("f"),
		statusKeyStyle.Render("0"),
		statusKeyStyle.Render("q"))
	zoom := statusStyle.Render(fmt.Sprintf("%d%% ", int(s.ZoomPercent+0.5)))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(help) - lipgloss.Width(zoom) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + help + "  " + zoom
}
