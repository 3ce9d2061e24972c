package imagebutton

import (
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/property"
)

// Resource names the image used for r ("" for none).
func Resource(store *property.Store, r Role) string {
	return store.GetString(ResourceKey(r), "")
}

// Opacity is the image opacity for r, 1.0 by default.
func Opacity(store *property.Store, r Role) float64 {
	return store.GetFloat(OpacityKey(r), 1)
}

// Colour is the overlay colour for r, transparent black by default.
func Colour(store *property.Store, r Role) colour.Colour {
	return store.GetColour(ColourKey(r), colour.TransparentBlack)
}

// KeepsProportions reports whether images are scaled proportionally.
func KeepsProportions(store *property.Store) bool {
	return store.GetBool(KeyKeepProportions, true)
}

// set either submits an undoable action or writes the store directly.
func set(doc *component.Document, id component.ID, key property.Key, v property.Value, undoable bool, description string) bool {
	c, ok := doc.Get(id)
	if !ok {
		return false
	}
	if undoable {
		return doc.Perform(component.NewPropertyAction(doc, id, key, v), description)
	}
	c.Properties.Set(key, v)
	return true
}

// SetResource changes the resource for r. Setting the current resource
// again does nothing.
func SetResource(doc *component.Document, id component.ID, r Role, name string, undoable bool) bool {
	c, ok := doc.Get(id)
	if !ok || Resource(c.Properties, r) == name {
		return false
	}
	return set(doc, id, ResourceKey(r), property.String(name), undoable, DescResource)
}

// SetOpacity changes the opacity for r.
func SetOpacity(doc *component.Document, id component.ID, r Role, opacity float64, undoable bool) bool {
	return set(doc, id, OpacityKey(r), property.Float(opacity), undoable, DescOpacity)
}

// SetColour changes the overlay colour for r.
func SetColour(doc *component.Document, id component.ID, r Role, c colour.Colour, undoable bool) bool {
	return set(doc, id, ColourKey(r), property.Colour(c), undoable, DescColour)
}

// SetKeepProportions changes the proportional scaling flag.
func SetKeepProportions(doc *component.Document, id component.ID, keep bool, undoable bool) bool {
	return set(doc, id, KeyKeepProportions, property.Bool(keep), undoable, DescProportions)
}

// UpdateImages resolves every role's resource against the document and
// hands the images to the component's sink. Unknown resources resolve to
// no image.
func UpdateImages(doc *component.Document, c *component.Component) {
	if c.Images == nil {
		return
	}
	var images [3]component.Image
	for i, r := range Roles {
		img := component.Image{
			Opacity: Opacity(c.Properties, r),
			Overlay: Colour(c.Properties, r),
		}
		if name := Resource(c.Properties, r); name != "" {
			if size, ok := doc.ResourceSize(name); ok {
				img.Resource, img.Size = name, size
			} else {
				logger.DebugTagf("imagebutton", "%q: resource %q not found", c.Name(), name)
			}
		}
		images[i] = img
	}
	c.Images.SetImages(KeepsProportions(c.Properties), images[0], images[1], images[2])
}
