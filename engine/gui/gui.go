// Package gui is a debug panel model: live object properties bound to named controllers,
// grouped into folders. It does not draw widgets; hosts drive the controllers (keyboard
// shortcuts, presets, tests) and the bindings write straight through to the bound objects.
//
// Like the scene graph, a panel is used from the frame goroutine only.
package gui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

type gui struct {
	logger zerolog.Logger
	name   string
	closed bool

	controllers []Controller
	folders     []*gui
}

// GUI is a panel or a folder inside one.
type GUI interface {
	// Name returns the panel or folder title.
	Name() string

	// Add binds a numeric property of target. The controller is labelled with prop until renamed.
	//
	// Parameters:
	//   - target: the object owning the property
	//   - prop: the property name
	//
	// Returns:
	//   - NumberController: the controller, for chaining bounds and callbacks
	Add(target common.Animatable, prop string) NumberController

	// AddBool binds a boolean through a getter and setter.
	//
	// Parameters:
	//   - name: the label
	//   - get: reads the current value
	//   - set: writes a new value
	//
	// Returns:
	//   - BoolController: the controller
	AddBool(name string, get func() bool, set func(bool)) BoolController

	// AddColor adds a color picker holding its own value.
	//
	// Parameters:
	//   - name: the label
	//   - initial: the starting color, see common.ParseColor
	//
	// Returns:
	//   - ColorController: the controller
	//   - error: error if initial is not a color
	AddColor(name string, initial string) (ColorController, error)

	// AddFunc adds a button.
	//
	// Parameters:
	//   - name: the label
	//   - fn: called on every press
	//
	// Returns:
	//   - FuncController: the controller
	AddFunc(name string, fn func()) FuncController

	// AddFolder adds a nested folder, or returns the existing folder with that name.
	//
	// Parameters:
	//   - name: the folder title
	//
	// Returns:
	//   - GUI: the folder
	AddFolder(name string) GUI

	// Folder looks up a direct child folder.
	//
	// Returns:
	//   - GUI: the folder, or nil
	Folder(name string) GUI

	// Folders returns the direct child folders in creation order.
	Folders() []GUI

	// Controllers returns this level's controllers in creation order.
	Controllers() []Controller

	// Find looks up a controller by "folder/sub/name" path relative to this level.
	//
	// Returns:
	//   - Controller: the controller, or nil
	Find(path string) Controller

	// Open expands the panel.
	Open()

	// Close collapses the panel.
	Close()

	// Closed reports whether the panel is collapsed.
	Closed() bool

	// SavePreset writes every number, bool and color value as TOML, with folders as tables.
	//
	// Parameters:
	//   - w: the destination
	//
	// Returns:
	//   - error: error if encoding fails
	SavePreset(w io.Writer) error

	// LoadPreset reads TOML written by SavePreset and applies each value through its
	// controller, firing change callbacks. Unknown keys are skipped.
	//
	// Parameters:
	//   - r: the source
	//
	// Returns:
	//   - error: error if decoding fails or a value has the wrong type
	LoadPreset(r io.Reader) error

	// Describe returns one line per controller, folders indented, for logging.
	Describe() []string
}

var _ GUI = &gui{}

// GUIBuilderOption is a functional option for configuring a GUI.
type GUIBuilderOption func(*gui)

// WithLogger sets the logger used for value changes and button presses.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) GUIBuilderOption {
	return func(g *gui) {
		g.logger = logger
	}
}

// WithClosed starts the panel collapsed.
//
// Returns:
//   - GUIBuilderOption: option function to apply
func WithClosed(closed bool) GUIBuilderOption {
	return func(g *gui) {
		g.closed = closed
	}
}

// New creates an empty panel.
//
// Parameters:
//   - name: the panel title
//   - options: functional options to configure the panel
//
// Returns:
//   - GUI: the panel
func New(name string, options ...GUIBuilderOption) GUI {
	g := &gui{
		logger: zerolog.Nop(),
		name:   name,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gui) Name() string {
	return g.name
}

func (g *gui) Add(target common.Animatable, prop string) NumberController {
	c := newNumberController(g.logger, target, prop)
	g.controllers = append(g.controllers, c)
	return c
}

func (g *gui) AddBool(name string, get func() bool, set func(bool)) BoolController {
	c := &boolController{logger: g.logger, name: name, get: get, set: set}
	g.controllers = append(g.controllers, c)
	return c
}

func (g *gui) AddColor(name string, initial string) (ColorController, error) {
	col, err := common.ParseColor(initial)
	if err != nil {
		return nil, fmt.Errorf("failed to add color controller %q: %w", name, err)
	}
	c := &colorController{logger: g.logger, name: name, color: col}
	g.controllers = append(g.controllers, c)
	return c, nil
}

func (g *gui) AddFunc(name string, fn func()) FuncController {
	c := &funcController{logger: g.logger, name: name, fn: fn}
	g.controllers = append(g.controllers, c)
	return c
}

func (g *gui) AddFolder(name string) GUI {
	if f := g.folder(name); f != nil {
		return f
	}
	f := &gui{logger: g.logger, name: name}
	g.folders = append(g.folders, f)
	return f
}

func (g *gui) folder(name string) *gui {
	for _, f := range g.folders {
		if f.name == name {
			return f
		}
	}
	return nil
}

func (g *gui) Folder(name string) GUI {
	if f := g.folder(name); f != nil {
		return f
	}
	return nil
}

func (g *gui) Folders() []GUI {
	out := make([]GUI, len(g.folders))
	for i, f := range g.folders {
		out[i] = f
	}
	return out
}

func (g *gui) Controllers() []Controller {
	out := make([]Controller, len(g.controllers))
	copy(out, g.controllers)
	return out
}

func (g *gui) Find(path string) Controller {
	head, rest, nested := strings.Cut(path, "/")
	if nested {
		f := g.folder(head)
		if f == nil {
			return nil
		}
		return f.Find(rest)
	}
	for _, c := range g.controllers {
		if c.Name() == head {
			return c
		}
	}
	return nil
}

func (g *gui) Open() {
	g.closed = false
}

func (g *gui) Close() {
	g.closed = true
}

func (g *gui) Closed() bool {
	return g.closed
}

// values collects the preset table for this level.
func (g *gui) values() map[string]any {
	out := make(map[string]any)
	for _, c := range g.controllers {
		if v := c.Value(); v != nil {
			out[c.Name()] = v
		}
	}
	for _, f := range g.folders {
		out[f.name] = f.values()
	}
	return out
}

func (g *gui) SavePreset(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(g.values()); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return nil
}

func (g *gui) LoadPreset(r io.Reader) error {
	var values map[string]any
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return fmt.Errorf("failed to decode preset: %w", err)
	}
	return g.apply(values)
}

func (g *gui) apply(values map[string]any) error {
	for _, c := range g.controllers {
		v, ok := values[c.Name()]
		if !ok {
			continue
		}
		if err := c.apply(v); err != nil {
			return err
		}
	}
	for _, f := range g.folders {
		sub, ok := values[f.name].(map[string]any)
		if !ok {
			continue
		}
		if err := f.apply(sub); err != nil {
			return fmt.Errorf("folder %q: %w", f.name, err)
		}
	}
	return nil
}

func (g *gui) Describe() []string {
	var lines []string
	var walk func(f *gui, indent string)
	walk = func(f *gui, indent string) {
		for _, c := range f.controllers {
			if v := c.Value(); v != nil {
				lines = append(lines, fmt.Sprintf("%s%s [%s] = %v", indent, c.Name(), c.Kind(), v))
			} else {
				lines = append(lines, fmt.Sprintf("%s%s [%s]", indent, c.Name(), c.Kind()))
			}
		}
		for _, sub := range f.folders {
			lines = append(lines, indent+sub.name+"/")
			walk(sub, indent+"  ")
		}
	}
	walk(g, "")
	return lines
}
