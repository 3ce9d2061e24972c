package component

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/history"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/bethropolis/compedit/internal/xmldoc"
)

// RootTag is the root element of a saved layout.
const RootTag = "JUCER_COMPONENT"

// TabShower brings the page holding a component to the front before one
// of its properties changes through the undo log.
type TabShower interface {
	ShowTabFor(id ID)
}

// Options configures a Document.
type Options struct {
	Events  *event.Manager // nil creates a private manager
	History history.Options
}

// Document is a layout being edited. It owns its components and their
// undo log, and must only be used from one goroutine.
type Document struct {
	registry   *Registry
	components map[ID]*Component
	order      []ID
	nextID     ID
	resources  map[string]int
	history    *history.Log
	events     *event.Manager
	tabShower  TabShower
	modified   bool
	filePath   string
}

// NewDocument creates an empty document whose component types come from reg.
func NewDocument(reg *Registry, opts Options) *Document {
	if opts.Events == nil {
		opts.Events = event.NewManager()
	}
	opts.History.Events = opts.Events
	return &Document{
		registry:   reg,
		components: make(map[ID]*Component),
		resources:  make(map[string]int),
		history:    history.NewLog(opts.History),
		events:     opts.Events,
	}
}

func (d *Document) Registry() *Registry      { return d.registry }
func (d *Document) Events() *event.Manager   { return d.events }
func (d *Document) History() *history.Log    { return d.history }
func (d *Document) IsModified() bool         { return d.modified }
func (d *Document) FilePath() string         { return d.filePath }
func (d *Document) SetTabShower(t TabShower) { d.tabShower = t }

// ShowTabFor asks the installed TabShower to reveal id.
func (d *Document) ShowTabFor(id ID) {
	if d.tabShower != nil {
		d.tabShower.ShowTabFor(id)
	}
	d.events.Dispatch(event.TypeTabShown, event.TabShownData{ComponentID: uint64(id)})
}

func (d *Document) setModified(m bool) {
	if d.modified == m {
		return
	}
	d.modified = m
	d.events.Dispatch(event.TypeDocumentModified, event.DocumentModifiedData{Modified: m})
}

// Add creates a component of the given type. The handler fills in the
// defaults; name, if non-empty, overrides the default name.
func (d *Document) Add(typeName, name string) (ID, error) {
	h, ok := d.registry.ForType(typeName)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	c := d.newComponent(typeName)
	h.CreateNew(d, c)
	if name != "" {
		c.Properties.Load(KeyName, property.String(name))
		c.Properties.Load(KeyMemberName, property.String(codegen.MakeValidIdentifier(name, false)))
	}
	d.attach(c)
	d.setModified(true)
	d.events.Dispatch(event.TypeLayoutChanged, event.LayoutChangedData{})
	logger.Debugf("Document: added %s %q as #%d", typeName, c.Name(), c.ID)
	return c.ID, nil
}

func (d *Document) newComponent(typeName string) *Component {
	d.nextID++
	return &Component{ID: d.nextID, Type: typeName, Properties: property.NewStore()}
}

// attach registers c in the arena and starts watching its store.
func (d *Document) attach(c *Component) {
	d.components[c.ID] = c
	d.order = append(d.order, c.ID)
	c.removeObserver = c.Properties.AddObserver(property.ObserverFunc(
		func(key property.Key, old, new property.Value) {
			d.propertyChanged(c, key, old, new)
		}))
}

func (d *Document) propertyChanged(c *Component, key property.Key, old, new property.Value) {
	d.setModified(true)
	d.events.Dispatch(event.TypePropertyChanged, event.PropertyChangedData{
		ComponentID: uint64(c.ID),
		Key:         string(key),
		Old:         old.Interface(),
		New:         new.Interface(),
	})
	if h, ok := d.registry.ForType(c.Type); ok {
		if r, ok := h.(Refresher); ok {
			r.Refresh(d, c)
		}
	}
	d.events.Dispatch(event.TypeLayoutChanged, event.LayoutChangedData{ComponentID: uint64(c.ID)})
}

// Remove deletes a component. Actions still in the log that target it
// fail from now on.
func (d *Document) Remove(id ID) error {
	c, ok := d.components[id]
	if !ok {
		return fmt.Errorf("%w: #%d", ErrNotFound, id)
	}
	if c.removeObserver != nil {
		c.removeObserver()
	}
	delete(d.components, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.setModified(true)
	d.events.Dispatch(event.TypeLayoutChanged, event.LayoutChangedData{})
	return nil
}

// Get returns the component with the given id.
func (d *Document) Get(id ID) (*Component, bool) {
	c, ok := d.components[id]
	return c, ok
}

// Components returns the components in the order they were added.
func (d *Document) Components() []*Component {
	out := make([]*Component, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.components[id])
	}
	return out
}

// Handler returns the handler for c's type.
func (d *Document) Handler(c *Component) (Handler, bool) {
	return d.registry.ForType(c.Type)
}

// AddResource registers a binary resource by name and size in bytes.
func (d *Document) AddResource(name string, size int) {
	d.resources[name] = size
}

// ResourceSize reports the size of a named resource.
func (d *Document) ResourceSize(name string) (int, bool) {
	size, ok := d.resources[name]
	return size, ok
}

// Resources lists resource names, sorted.
func (d *Document) Resources() []string {
	names := make([]string, 0, len(d.resources))
	for name := range d.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Perform runs action through the undo log.
func (d *Document) Perform(action history.Action, description string) bool {
	return d.history.Perform(action, description)
}

// Undo reverts the most recent step.
func (d *Document) Undo() bool { return d.history.Undo() }

// Redo re-applies the most recently undone step.
func (d *Document) Redo() bool { return d.history.Redo() }

// Close drops the history and all components.
func (d *Document) Close() {
	d.history.Clear()
	for _, c := range d.components {
		if c.removeObserver != nil {
			c.removeObserver()
		}
	}
	d.components = make(map[ID]*Component)
	d.order = nil
}

// Save writes the layout as XML.
func (d *Document) Save(w io.Writer) error {
	root := xmldoc.NewElement(RootTag)
	if len(d.resources) > 0 {
		res := root.NewChild("RESOURCES")
		for _, name := range d.Resources() {
			r := res.NewChild("RESOURCE")
			r.SetAttribute("name", name)
			r.SetIntAttribute("size", d.resources[name])
		}
	}
	for _, c := range d.Components() {
		h, ok := d.Handler(c)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
		}
		root.AddChild(h.ToXML(c))
	}
	if err := root.Write(w); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	d.setModified(false)
	return nil
}

// SaveFile saves to path and remembers it as the document's file.
func (d *Document) SaveFile(path string) error {
	if path == "" {
		path = d.filePath
	}
	if path == "" {
		return fmt.Errorf("no file path set")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	d.filePath = path
	logger.Infof("Document: saved %s", path)
	d.events.Dispatch(event.TypeDocumentSaved, event.DocumentFileData{FilePath: path})
	return nil
}

// Load replaces the document's contents with a saved layout. History is
// cleared and the document is left unmodified. Elements with an unknown
// tag are skipped with a warning.
func (d *Document) Load(r io.Reader) error {
	root, err := xmldoc.Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}
	if !root.HasTag(RootTag) {
		return fmt.Errorf("not a layout file: root element is <%s>", root.Tag)
	}

	d.Close()
	d.resources = make(map[string]int)

	for _, el := range root.Elements() {
		if el.HasTag("RESOURCES") {
			for _, res := range el.ChildrenNamed("RESOURCE") {
				d.resources[res.StringAttribute("name", "")] = res.IntAttribute("size", 0)
			}
			continue
		}
		h, ok := d.registry.ForTag(el.Tag)
		if !ok {
			logger.Warnf("Document: skipping unknown element <%s>", el.Tag)
			continue
		}
		c := d.newComponent(h.TypeName())
		if err := h.RestoreFromXML(el, c); err != nil {
			logger.Warnf("Document: could not restore <%s>: %v", el.Tag, err)
			continue
		}
		d.attach(c)
		if rf, ok := h.(Refresher); ok {
			rf.Refresh(d, c)
		}
	}

	d.modified = false
	d.events.Dispatch(event.TypeDocumentModified, event.DocumentModifiedData{Modified: false})
	d.events.Dispatch(event.TypeLayoutChanged, event.LayoutChangedData{})
	return nil
}

// SetFilePath names the file SaveFile("") writes to without touching
// the contents, for layouts that do not exist yet.
func (d *Document) SetFilePath(path string) { d.filePath = path }

// LoadFile loads path and remembers it as the document's file.
func (d *Document) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	if err := d.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	d.filePath = path
	logger.Infof("Document: loaded %s (%d components)", path, len(d.order))
	d.events.Dispatch(event.TypeDocumentLoaded, event.DocumentFileData{FilePath: path})
	return nil
}

// GenerateCode runs every component's handler in layout order.
func (d *Document) GenerateCode(className string) *codegen.GeneratedCode {
	code := codegen.NewGeneratedCode(className)
	for _, c := range d.Components() {
		h, ok := d.Handler(c)
		if !ok {
			continue
		}
		h.FillInCreationCode(code, c, c.MemberName())
	}
	return code
}
