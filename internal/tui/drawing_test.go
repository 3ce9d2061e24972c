package tui

import (
	"strings"
	"testing"

	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	tm, err := NewWithScreen(screen)
	require.NoError(t, err)
	screen.SetSize(w, h)
	t.Cleanup(tm.Close)
	return tm, screen
}

func line(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			sb.WriteRune(r[0])
		} else {
			sb.WriteByte(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func testTheme(t *testing.T) *appearance.Theme {
	return appearance.New(appearance.Options{SchemesDir: t.TempDir()}).Theme()
}

func TestDrawViewAndHitTest(t *testing.T) {
	tm, screen := newTestTUI(t, 60, 12)
	v := View{
		Components:  []string{"ok button", "cancel"},
		Rows:        []Row{{"name", "ok button"}, {"opacity", "1"}},
		SelectedRow: 1,
		Help:        []string{"Opacity of the normal image,", "0 to 1."},
	}
	tm.DrawView(v, testTheme(t))
	tm.Show()

	// list is a third of the width, capped
	assert.Equal(t, "Components"+strings.Repeat(" ", 10)+"│Properties", line(screen, 0))
	assert.Contains(t, line(screen, 1), "ok button")
	assert.Contains(t, line(screen, 2), "opacity  1")
	assert.Equal(t, " Opacity of the normal image,", line(screen, 9))
	assert.Equal(t, " 0 to 1.", line(screen, 10))

	assert.Equal(t, Hit{Kind: HitComponent, Index: 1}, tm.HitTest(3, 2))
	assert.Equal(t, Hit{Kind: HitRow, Index: 0}, tm.HitTest(30, 1))
	assert.Equal(t, Hit{}, tm.HitTest(3, 3), "below the list")
	assert.Equal(t, Hit{}, tm.HitTest(30, 0), "header")
	assert.Equal(t, Hit{}, tm.HitTest(20, 1), "separator")
}

func TestDrawViewPromptReplacesHelp(t *testing.T) {
	tm, screen := newTestTUI(t, 40, 8)
	tm.DrawView(View{Help: []string{"hidden"}, Prompt: "name: ok"}, testTheme(t))
	tm.Show()
	assert.Equal(t, "name: ok", line(screen, 6))
	x, y, visible := screen.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 8, x)
	assert.Equal(t, 6, y)
}

func TestSetColourUpdatesBaseStyle(t *testing.T) {
	tm, _ := newTestTUI(t, 10, 4)
	tm.SetColour(appearance.MainBackground, colour.MustParse("ff102030"))
	c, ok := tm.Colour(appearance.MainBackground)
	require.True(t, ok)
	assert.Equal(t, colour.Colour(0xff102030), c)

	_, ok = tm.Colour("Nonexistent")
	assert.False(t, ok)
}
