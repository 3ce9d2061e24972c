package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/logger"
)

// preview receives a component's resolved images and summarises them in
// the property grid.
type preview struct {
	keep   bool
	images [3]component.Image
	set    bool
}

func (p *preview) SetImages(keep bool, normal, over, down component.Image) {
	p.keep = keep
	p.images = [3]component.Image{normal, over, down}
	p.set = true
}

func (p *preview) String() string {
	if !p.set {
		return "-"
	}
	parts := make([]string, 0, len(p.images))
	for i, label := range []string{"normal", "over", "down"} {
		img := p.images[i]
		if img.Resource == "" {
			parts = append(parts, label+": none")
			continue
		}
		s := fmt.Sprintf("%s: %s %dB %.0f%%", label, img.Resource, img.Size, img.Opacity*100)
		if !img.Overlay.IsTransparent() {
			s += " +" + img.Overlay.String()
		}
		parts = append(parts, s)
	}
	if !p.keep {
		parts = append(parts, "stretched")
	}
	return strings.Join(parts, ", ")
}

// attachPreviews gives every component without an image sink a preview
// and refreshes it so the sink is filled straight away.
func (a *App) attachPreviews() {
	for _, c := range a.doc.Components() {
		if c.Images != nil {
			continue
		}
		h, ok := a.doc.Handler(c)
		if !ok {
			continue
		}
		r, ok := h.(component.Refresher)
		if !ok {
			continue
		}
		c.Images = &preview{}
		r.Refresh(a.doc, c)
		logger.DebugTagf("app", "Attached preview to %q", c.Name())
	}
}
