package views

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rstr/internal/domain"
)

// ViewState contains all the state needed for rendering one frame
type ViewState struct {
	Width           int
	Height          int
	Pattern         string
	Window          []domain.Match // the visible slice of the result set
	WindowStart     int            // index of Window[0] in the result set
	Total           int
	FileCount       int
	SelectedIndex   int
	ViewportHeight  int
	Scanning        bool
	CurrentPath     string
	FilesScanned    int
	StatusMessage   string
	ShowLineNumbers bool
	HelpView        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if state.Scanning {
		content.WriteString(r.renderScanLine(state))
		content.WriteString("\n")
	}

	content.WriteString(r.renderResults(state))

	content.WriteString(r.renderStatus(state))

	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(state.HelpView)
	}

	return r.styles.Main.Render(content.String())
}

// renderTitle builds the header line with the pattern and the quit hint
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("rstr")
	header := r.styles.Header.Render(fmt.Sprintf("Search term: '%s'", state.Pattern))
	hint := r.styles.Dim.Render("(Exit: q)")
	return fmt.Sprintf("%s  %s  %s", logo, header, hint)
}

// renderScanLine shows the spinner and the file currently being scanned
func (r *Renderer) renderScanLine(state ViewState) string {
	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := int(time.Now().UnixMilli()/80) % len(spinner)

	line := fmt.Sprintf("%s Scanning (%d files)", spinner[frame], state.FilesScanned)
	if state.CurrentPath != "" {
		line += " " + truncateText(state.CurrentPath, state.Width-lipgloss.Width(line)-4)
	}
	return r.styles.Scan.Render(line)
}

// renderResults paints the viewport window with scroll indicators
func (r *Renderer) renderResults(state ViewState) string {
	content := &strings.Builder{}

	if state.Total == 0 {
		if state.Scanning {
			content.WriteString(r.styles.Dim.Render("  Searching..."))
		} else {
			content.WriteString(r.styles.Dim.Render("  No matches found"))
		}
		content.WriteString("\n")
		return content.String()
	}

	if state.WindowStart > 0 {
		content.WriteString(r.styles.Scroll.Render("↑ (more above)"))
		content.WriteString("\n")
	}

	for i, m := range state.Window {
		selected := state.WindowStart+i == state.SelectedIndex
		content.WriteString(r.renderMatch(m, selected, state.ShowLineNumbers, state.Width))
		content.WriteString("\n")
	}

	if state.WindowStart+len(state.Window) < state.Total {
		content.WriteString(r.styles.Scroll.Render("↓ (more below)"))
		content.WriteString("\n")
	}

	return content.String()
}

// renderMatch paints one result row: location, then the line text with
// every match span highlighted. The selected row carries a background
// through all of its segments so the highlight survives mid-line resets.
func (r *Renderer) renderMatch(m domain.Match, selected bool, showLineNumbers bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}

	location := m.FilePath
	if showLineNumbers {
		location = fmt.Sprintf("%s:%d", m.FilePath, m.LineNumber)
	}

	textStyle := r.styles.Header
	locStyle := r.styles.Location
	highlightStyle := r.styles.Highlight
	if selected {
		bg := r.styles.SelectionBg.GetBackground()
		textStyle = textStyle.Background(bg)
		locStyle = locStyle.Background(bg)
		highlightStyle = highlightStyle.Background(bg)
	}

	// Budget the remaining columns for the line text
	available := width - len(prefix) - lipgloss.Width(location) - 2
	if available < 16 {
		available = 16
	}
	text, spans := truncateWithSpans(m.LineText, m.Spans, available)

	row := &strings.Builder{}
	row.WriteString(prefix)
	row.WriteString(locStyle.Render(location))
	row.WriteString("  ")

	last := 0
	for _, span := range spans {
		if span.Start > last {
			row.WriteString(textStyle.Render(text[last:span.Start]))
		}
		row.WriteString(highlightStyle.Render(text[span.Start:span.End]))
		last = span.End
	}
	if last < len(text) {
		row.WriteString(textStyle.Render(text[last:]))
	}

	return row.String()
}

// renderStatus builds the bottom status line
func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage != "" {
		return r.styles.StatusError.Render(state.StatusMessage)
	}

	if state.Scanning {
		return r.styles.Status.Render(fmt.Sprintf("%d matches so far", state.Total))
	}

	matchWord := "matches"
	if state.Total == 1 {
		matchWord = "match"
	}
	fileWord := "files"
	if state.FileCount == 1 {
		fileWord = "file"
	}
	return r.styles.Status.Render(
		fmt.Sprintf("%d %s in %d %s", state.Total, matchWord, state.FileCount, fileWord))
}

// truncateText shortens s to at most max display columns, appending an
// ellipsis
func truncateText(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	return s[:widthCut(s, max-3)] + "..."
}

// truncateWithSpans shortens text to at most max display columns and
// clips the spans to the shortened range, dropping spans that fall
// entirely past the cut. The cut never splits a rune.
func truncateWithSpans(text string, spans []domain.Span, max int) (string, []domain.Span) {
	if lipgloss.Width(text) <= max {
		return text, spans
	}
	cut := widthCut(text, max-3)
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(text)
		cut = size
	}
	clipped := make([]domain.Span, 0, len(spans))
	for _, span := range spans {
		if span.Start >= cut {
			break
		}
		if span.End > cut {
			span.End = cut
		}
		clipped = append(clipped, span)
	}
	return text[:cut] + "...", clipped
}

// widthCut returns the byte offset of the longest prefix of s that fits
// in cols display columns without splitting a rune.
func widthCut(s string, cols int) int {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > cols {
			return i
		}
		w += rw
	}
	return len(s)
}
