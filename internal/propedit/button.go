package propedit

import (
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/property"
)

// ButtonProperties returns the rows every button type starts its panel with.
func ButtonProperties(doc *component.Document, id component.ID) []Property {
	text := func(key property.Key, name, description, help string) Property {
		return NewText(Target{
			Doc: doc, ID: id, Key: key, Name: name,
			Description: description,
			Help:        help,
			Default:     property.String(""),
		})
	}
	return []Property{
		text(component.KeyName, "name", "Change component name",
			"The name passed to the component's constructor."),
		text(component.KeyMemberName, "member name", "Change member name",
			"The name of the member variable that holds the component in the generated class."),
		text(component.KeyPosition, "position", "Change component position",
			"x y width height"),
		text(component.KeyButtonText, "text", "Change button text",
			"The text shown on the button. Only generated when it differs from the name."),
		text(component.KeyTooltip, "tooltip", "Change tooltip",
			"Help text shown when the pointer rests on the button."),
	}
}
