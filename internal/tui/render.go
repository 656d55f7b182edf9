package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rnwolfe/fuhl/internal/fuzzy"
	"github.com/rnwolfe/fuhl/internal/ui"
)

// Width taken by the left margin and the selection pointer.
const rowIndent = 4

func (p *Picker) View() string {
	var b strings.Builder

	// Query input
	b.WriteString("  " + ui.Prompt.Render(p.prompt) + p.state.Query + blinkCursor() + "\n\n")

	view := p.state.View
	if len(view) == 0 {
		b.WriteString("  " + ui.Muted.Render("No matches") + "\n")
	} else {
		end := min(p.offset+p.visibleHeight(), len(view))
		for i := p.offset; i < end; i++ {
			b.WriteString(p.renderRow(view[i], i == p.state.Selection) + "\n")
		}
	}

	// Status bar
	b.WriteString("\n")
	status := ui.Muted.Render(fmt.Sprintf("  %d/%d", len(view), p.store.Len()))
	b.WriteString(status + ui.Muted.Render(" · ") + p.help.View(p.keys) + "\n")

	return b.String()
}

func (p *Picker) renderRow(r fuzzy.Result, selected bool) string {
	pointer := "  "
	base := ui.Row
	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		base = ui.SelectedRow
	}

	text := p.store.Display(r.Index)
	return "  " + pointer + highlight(text, fuzzy.Positions(p.state.Query, text), p.width-rowIndent, base)
}

// highlight truncates text to width cells and emphasizes the runes at the
// given offsets. Consecutive runes sharing a style are rendered together.
func highlight(text string, positions []int, width int, base lipgloss.Style) string {
	const tail = "…"
	if width < 1 {
		width = 1
	}
	shown := runewidth.Truncate(text, width, tail)
	truncated := shown != text
	runes := []rune(shown)

	matched := make(map[int]bool, len(positions))
	for _, pos := range positions {
		matched[pos] = true
	}
	isMatch := func(i int) bool {
		if truncated && i == len(runes)-1 {
			return false
		}
		return matched[i]
	}
	emphasis := ui.Highlight.Inherit(base)

	var b strings.Builder
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && isMatch(end) == isMatch(start) {
			end++
		}
		style := base
		if isMatch(start) {
			style = emphasis
		}
		b.WriteString(style.Render(string(runes[start:end])))
		start = end
	}
	return b.String()
}

func blinkCursor() string {
	return ui.Prompt.UnsetBold().Render(ui.IconCursor)
}
