package rollover

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	parent  *node
	tip     string
	blocked bool
}

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) TopLevel() Node {
	top := n
	for top.parent != nil {
		top = top.parent
	}
	return top
}

func (n *node) BlockedByModal() bool { return n.blocked }
func (n *node) Tooltip() string      { return n.tip }

type pointer struct {
	mu sync.Mutex
	at Node
}

func (p *pointer) NodeUnderPointer() Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.at
}

func (p *pointer) move(n Node) {
	p.mu.Lock()
	p.at = n
	p.mu.Unlock()
}

func TestFindTipWalksParents(t *testing.T) {
	window := &node{tip: "window help"}
	panel := &node{parent: window}
	button := &node{parent: panel}
	assert.Equal(t, "window help", FindTip(button))

	panel.tip = "panel help"
	assert.Equal(t, "panel help", FindTip(button))
	assert.Equal(t, "", FindTip(nil))
}

func TestHelperRepaintsOnChange(t *testing.T) {
	window := &node{}
	a := &node{parent: window, tip: "first"}
	b := &node{parent: window, tip: "first"}
	c := &node{parent: window, tip: "second"}

	var tips []string
	p := &pointer{}
	h := NewHelper(window, p, func(tip string) { tips = append(tips, tip) })

	p.move(a)
	h.Poll()
	h.Poll()
	p.move(b) // same text, no repaint
	h.Poll()
	p.move(c)
	h.Poll()
	p.move(nil)
	h.Poll()

	assert.Equal(t, []string{"first", "second", ""}, tips)
	assert.Equal(t, "", h.Tip())
}

func TestHelperIgnoresOtherWindowsAndModals(t *testing.T) {
	window := &node{}
	other := &node{}
	foreign := &node{parent: other, tip: "elsewhere"}
	blocked := &node{parent: window, tip: "blocked", blocked: true}

	p := &pointer{}
	h := NewHelper(window, p, nil)

	p.move(foreign)
	h.Poll()
	assert.Equal(t, "", h.Tip())

	p.move(blocked)
	h.Poll()
	assert.Equal(t, "", h.Tip())
}

func TestHelperRunStopsWithContext(t *testing.T) {
	window := &node{}
	p := &pointer{}
	p.move(&node{parent: window, tip: "hello"})

	got := make(chan string, 1)
	h := NewHelper(window, p, func(tip string) {
		select {
		case got <- tip:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	select {
	case tip := <-got:
		assert.Equal(t, "hello", tip)
	case <-time.After(2 * time.Second):
		t.Fatal("no repaint")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestLayoutBalancesLines(t *testing.T) {
	lines := Layout("aaa bbb ccc ddd eee", 16)
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"aaa bbb ccc", "ddd eee"}, lines)

	// Greedy fill would leave "eee" alone on the second line.
	lines = Layout("aaa bbb ccc ddd eee", 15)
	assert.Equal(t, []string{"aaa bbb ccc", "ddd eee"}, lines)
}

func TestLayoutFallsBackToGreedy(t *testing.T) {
	tip := strings.Repeat("word ", 12)
	lines := Layout(tip, 10)
	require.Greater(t, len(lines), 3)
	for _, l := range lines[:len(lines)-1] {
		assert.Equal(t, "word word", l)
	}
}

func TestLayoutWideCharacters(t *testing.T) {
	lines := Layout("漢字 漢字 漢字", 10)
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 10)
	}
	assert.Equal(t, "漢字 漢字 漢字", strings.Join(lines, " "))
}

func TestLayoutEdgeCases(t *testing.T) {
	assert.Nil(t, Layout("   ", 10))
	assert.Equal(t, []string{"one two"}, Layout(" one  two ", 0))
	assert.Equal(t, []string{"unbreakable"}, Layout("unbreakable", 4))
}
