package app

import (
	"sync"

	"github.com/bethropolis/compedit/internal/modal"
	"github.com/bethropolis/compedit/internal/rollover"
	"github.com/bethropolis/compedit/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// The rollover poller runs on its own goroutine, so the nodes it sees
// carry a copy of their tooltip taken on the UI goroutine.

type windowNode struct {
	modals *modal.Manager
}

func (w *windowNode) Parent() rollover.Node   { return nil }
func (w *windowNode) TopLevel() rollover.Node { return w }
func (w *windowNode) BlockedByModal() bool    { return false }

type cellNode struct {
	window *windowNode
	tip    string
}

func (c *cellNode) Parent() rollover.Node   { return c.window }
func (c *cellNode) TopLevel() rollover.Node { return c.window }
func (c *cellNode) BlockedByModal() bool    { return c.window.modals.Count() > 0 }
func (c *cellNode) Tooltip() string         { return c.tip }

type pointer struct {
	mu   sync.Mutex
	node rollover.Node
}

func (p *pointer) NodeUnderPointer() rollover.Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.node
}

func (p *pointer) set(n rollover.Node) {
	p.mu.Lock()
	p.node = n
	p.mu.Unlock()
}

type helpProvider interface {
	Help() string
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	hit := a.tuiManager.HitTest(x, y)

	var tip string
	switch hit.Kind {
	case tui.HitComponent:
		if comps := a.doc.Components(); hit.Index < len(comps) {
			tip = comps[hit.Index].Tooltip()
		}
	case tui.HitRow:
		if hit.Index < len(a.props) {
			if hp, ok := a.props[hit.Index].(helpProvider); ok {
				tip = hp.Help()
			}
		}
	}
	if hit.Kind == tui.HitNone {
		a.pointer.set(nil)
	} else {
		a.pointer.set(&cellNode{window: a.window, tip: tip})
	}

	if ev.Buttons()&tcell.Button1 == 0 || a.prompt != nil {
		return
	}
	switch hit.Kind {
	case tui.HitComponent:
		a.selectComponent(hit.Index)
	case tui.HitRow:
		if hit.Index < len(a.props) {
			a.row = hit.Index
		}
	}
}
