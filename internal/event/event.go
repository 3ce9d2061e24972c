// Package event is a small synchronous event bus shared by the document,
// the history log, the appearance settings and the terminal editor.
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypePropertyChanged  // A component property changed (direct set, undo or redo)
	TypeLayoutChanged    // Something visible changed, redraw needed
	TypeDocumentModified // The document's modified flag flipped
	TypeDocumentLoaded   // A layout was loaded from disk
	TypeDocumentSaved    // A layout was written to disk

	// History events
	TypeHistoryChanged // The undo log was performed, undone, redone or cleared

	// UI events
	TypeTabShown          // A page holding a component was brought to front
	TypeSchemeChanged     // Appearance settings changed
	TypeSchemeListChanged // The preset scheme folder changed
)

func (t Type) String() string {
	switch t {
	case TypePropertyChanged:
		return "PropertyChanged"
	case TypeLayoutChanged:
		return "LayoutChanged"
	case TypeDocumentModified:
		return "DocumentModified"
	case TypeDocumentLoaded:
		return "DocumentLoaded"
	case TypeDocumentSaved:
		return "DocumentSaved"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeTabShown:
		return "TabShown"
	case TypeSchemeChanged:
		return "SchemeChanged"
	case TypeSchemeListChanged:
		return "SchemeListChanged"
	default:
		return "Unknown"
	}
}

// Event is what handlers receive.
type Event struct {
	Type Type
	Data interface{}
}

// PropertyChangedData describes a single property mutation.
type PropertyChangedData struct {
	ComponentID uint64
	Key         string
	Old, New    interface{}
}

// LayoutChangedData names the component whose appearance changed (0 = whole layout).
type LayoutChangedData struct {
	ComponentID uint64
}

// DocumentModifiedData carries the new modified flag.
type DocumentModifiedData struct {
	Modified bool
}

// DocumentFileData names the file involved in a load or save.
type DocumentFileData struct {
	FilePath string
}

// HistoryChangedData summarises the undo log after a change.
type HistoryChangedData struct {
	CanUndo, CanRedo bool
	UndoDescription  string
	RedoDescription  string
}

// TabShownData names the component whose page was shown.
type TabShownData struct {
	ComponentID uint64
}

// SchemeChangedData names the colour scheme now in effect (may be empty).
type SchemeChangedData struct {
	Scheme string
}
