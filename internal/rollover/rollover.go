// Package rollover shows help text for whatever the pointer is over: it
// polls the component under the pointer and reports the nearest tooltip
// found up its parent chain.
package rollover

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/compedit/internal/logger"
	"github.com/mattn/go-runewidth"
)

// PollInterval is how often the pointer is sampled.
const PollInterval = 150 * time.Millisecond

// Node is an element of the UI tree.
type Node interface {
	Parent() Node
	TopLevel() Node
	// BlockedByModal reports whether a modal component other than this
	// node's own currently takes input.
	BlockedByModal() bool
}

// TooltipClient is a node that can describe itself.
type TooltipClient interface {
	Tooltip() string
}

// PointerSource reports the node under the pointer, or nil.
type PointerSource interface {
	NodeUnderPointer() Node
}

// FindTip returns the first non-empty tooltip on n or its ancestors.
func FindTip(n Node) string {
	for n != nil {
		if tc, ok := n.(TooltipClient); ok {
			if tip := tc.Tooltip(); tip != "" {
				return tip
			}
		}
		n = n.Parent()
	}
	return ""
}

// Helper tracks the tip for the node under the pointer. Nodes in another
// top-level window, or blocked by a modal, count as nothing.
type Helper struct {
	owner   Node
	source  PointerSource
	repaint func(tip string)

	mu       sync.Mutex
	lastNode Node
	lastTip  string
}

// NewHelper creates a helper for the window that owner belongs to.
// repaint is called with the new tip whenever it changes.
func NewHelper(owner Node, source PointerSource, repaint func(tip string)) *Helper {
	return &Helper{owner: owner, source: source, repaint: repaint}
}

// Tip is the tip currently shown.
func (h *Helper) Tip() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastTip
}

// Poll samples the pointer once.
func (h *Helper) Poll() {
	n := h.source.NodeUnderPointer()
	if n != nil && (n.TopLevel() != h.owner.TopLevel() || n.BlockedByModal()) {
		n = nil
	}

	h.mu.Lock()
	if n == h.lastNode {
		h.mu.Unlock()
		return
	}
	h.lastNode = n
	tip := FindTip(n)
	if tip == h.lastTip {
		h.mu.Unlock()
		return
	}
	h.lastTip = tip
	h.mu.Unlock()

	logger.DebugTagf("rollover", "Tip changed: %q", tip)
	if h.repaint != nil {
		h.repaint(tip)
	}
}

// Run polls every PollInterval until ctx is done.
func (h *Helper) Run(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Poll()
		}
	}
}

// maxBalancedLines is the most lines a balanced layout may use before
// falling back to greedy filling.
const maxBalancedLines = 3

// Layout wraps tip into lines no wider than width display cells. It
// first tries lines of roughly equal width; if that needs more than three
// lines it fills each line greedily instead.
func Layout(tip string, width int) []string {
	words := strings.Fields(tip)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}

	greedy := wrap(words, width)
	if len(greedy) > maxBalancedLines {
		return greedy
	}

	// Shrink the target width while the line count stays the same, so the
	// lines come out close to equal.
	best := greedy
	for w := width - 1; w > 0; w-- {
		lines := wrap(words, w)
		if len(lines) != len(greedy) || widest(lines) > w {
			break
		}
		best = lines
	}
	return best
}

func wrap(words []string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w)
		switch {
		case curWidth == 0:
			cur.WriteString(w)
			curWidth = ww
		case curWidth+1+ww <= width:
			cur.WriteByte(' ')
			cur.WriteString(w)
			curWidth += 1 + ww
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
			curWidth = ww
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func widest(lines []string) int {
	m := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > m {
			m = w
		}
	}
	return m
}
