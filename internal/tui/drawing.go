package tui

import (
	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Row is one line of the property grid.
type Row struct {
	Name  string
	Value string
}

// View is everything the editor screen shows apart from the status bar.
type View struct {
	Components        []string
	SelectedComponent int
	Rows              []Row
	SelectedRow       int
	// Help is the rollover text, already wrapped.
	Help []string
	// Prompt, when non-empty, replaces the help with an input line.
	Prompt string
}

// HitKind says what lies under a screen cell.
type HitKind int

const (
	HitNone HitKind = iota
	HitComponent
	HitRow
)

// Hit is the result of HitTest.
type Hit struct {
	Kind  HitKind
	Index int
}

type layout struct {
	listWidth  int
	gridTop    int
	listRows   int
	gridRows   int
	components int
	rows       int
}

const (
	maxListWidth = 24
	maxHelpLines = 3
	headerRows   = 1
)

// HelpWidth is the width available to help text for a screen width.
func HelpWidth(screenWidth int) int {
	return screenWidth - 1
}

// DrawView renders v using theme. The last screen row is left for the
// status bar.
func (t *TUI) DrawView(v View, theme *appearance.Theme) {
	width, height := t.Size()
	base := theme.GetStyle("Default")
	for y := 0; y < height; y++ {
		fillRow(t.screen, 0, y, width, base)
	}

	helpLines := len(v.Help)
	if helpLines > maxHelpLines {
		helpLines = maxHelpLines
	}
	if v.Prompt != "" {
		helpLines = 1
	}
	bodyRows := height - 1 - headerRows - helpLines
	if bodyRows < 0 {
		bodyRows = 0
	}

	listWidth := width / 3
	if listWidth > maxListWidth {
		listWidth = maxListWidth
	}
	l := layout{
		listWidth:  listWidth,
		gridTop:    headerRows,
		listRows:   bodyRows,
		gridRows:   bodyRows,
		components: len(v.Components),
		rows:       len(v.Rows),
	}
	t.mu.Lock()
	t.layout = l
	t.mu.Unlock()

	heading := theme.GetStyle("Heading")
	drawText(t.screen, 0, 0, listWidth, "Components", heading)
	drawText(t.screen, listWidth+1, 0, width-listWidth-1, "Properties", heading)

	selection := theme.GetStyle("Selection")
	for i, name := range v.Components {
		if i >= bodyRows {
			break
		}
		style := base
		if i == v.SelectedComponent {
			style = selection
			fillRow(t.screen, 0, l.gridTop+i, listWidth, style)
		}
		drawText(t.screen, 1, l.gridTop+i, listWidth-1, name, style)
	}

	sep := theme.GetStyle("Scrollbar")
	for y := 0; y < headerRows+bodyRows; y++ {
		t.screen.SetContent(listWidth, y, tcell.RuneVLine, nil, sep)
	}

	nameWidth := 0
	for _, r := range v.Rows {
		if w := runewidth.StringWidth(r.Name); w > nameWidth {
			nameWidth = w
		}
	}
	gridLeft := listWidth + 2
	valueLeft := gridLeft + nameWidth + 2
	dim := theme.GetStyle("Dim")
	for i, r := range v.Rows {
		if i >= bodyRows {
			break
		}
		y := l.gridTop + i
		nameStyle, valueStyle := dim, base
		if i == v.SelectedRow {
			nameStyle, valueStyle = selection, selection
			fillRow(t.screen, gridLeft, y, width-gridLeft, selection)
		}
		drawText(t.screen, gridLeft, y, nameWidth, r.Name, nameStyle)
		drawText(t.screen, valueLeft, y, width-valueLeft, r.Value, valueStyle)
	}

	helpTop := height - 1 - helpLines
	if v.Prompt != "" {
		fillRow(t.screen, 0, helpTop, width, selection)
		end := drawText(t.screen, 0, helpTop, width, v.Prompt, selection)
		if end < width {
			t.screen.ShowCursor(end, helpTop)
		}
		return
	}
	t.screen.HideCursor()
	tip := theme.GetStyle("Tooltip")
	for i := 0; i < helpLines; i++ {
		fillRow(t.screen, 0, helpTop+i, width, tip)
		drawText(t.screen, 1, helpTop+i, HelpWidth(width), v.Help[i], tip)
	}
}

// HitTest reports what the last drawn view shows at (x, y).
func (t *TUI) HitTest(x, y int) Hit {
	t.mu.Lock()
	l := t.layout
	t.mu.Unlock()

	i := y - l.gridTop
	if i < 0 || i >= l.gridRows {
		return Hit{}
	}
	if x < l.listWidth {
		if i < l.components {
			return Hit{Kind: HitComponent, Index: i}
		}
		return Hit{}
	}
	if x > l.listWidth && i < l.rows {
		return Hit{Kind: HitRow, Index: i}
	}
	return Hit{}
}

func fillRow(s tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawText draws text at (x, y) clipped to width display cells and
// returns the column after the last cell drawn.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	end := x + width
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > end {
			break
		}
		runes := gr.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
