package statusbar

import (
	"testing"
	"time"

	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestBar() (*StatusBar, *clock) {
	c := &clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(Config{MessageTimeout: 4 * time.Second, Now: c.Now}), c
}

func TestDefaultText(t *testing.T) {
	sb, _ := newTestBar()
	text, isMessage := sb.Text()
	assert.False(t, isMessage)
	assert.Equal(t, "[No Name]", text)

	sb.SetFileInfo("panel.xml", true)
	sb.SetComponent("ok button")
	sb.SetHistory("change imagebutton opacity", "")
	text, _ = sb.Text()
	assert.Equal(t, "panel.xml [Modified] -- ok button -- Undo: change imagebutton opacity", text)

	sb.SetHistory("", "Change image resource")
	text, _ = sb.Text()
	assert.Equal(t, "panel.xml [Modified] -- ok button -- Redo: Change image resource", text)
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb, c := newTestBar()
	sb.SetTemporaryMessage("Saved %s", "panel.xml")

	text, isMessage := sb.Text()
	assert.True(t, isMessage)
	assert.Equal(t, "Saved panel.xml", text)

	c.now = c.now.Add(4 * time.Second)
	_, isMessage = sb.Text()
	assert.True(t, isMessage, "still shown at the timeout")

	c.now = c.now.Add(time.Millisecond)
	text, isMessage = sb.Text()
	assert.False(t, isMessage)
	assert.Equal(t, "[No Name]", text)
}

func TestResetTemporaryMessage(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetTemporaryMessage("hello")
	sb.ResetTemporaryMessage()
	_, isMessage := sb.Text()
	assert.False(t, isMessage)
}

func TestDrawTruncatesToWidth(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 3)

	sb, _ := newTestBar()
	sb.SetFileInfo("a-rather-long-name.xml", false)
	theme := appearance.New(appearance.Options{SchemesDir: t.TempDir()}).Theme()
	sb.Draw(screen, 10, 3, theme)
	screen.Show()

	cells, w, _ := screen.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		line = append(line, cells[2*w+x].Runes...)
	}
	assert.Equal(t, "a-rather-l", string(line))
	assert.Equal(t, theme.GetStyle("StatusBar"), cells[2*w].Style)
}
