package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/texture"
)

// Background is what a frame is cleared to. A texture takes precedence over the color; with
// neither set the renderer's clear color is used.
type Background struct {
	Color    common.Color
	HasColor bool
	Texture  texture.Texture
}

// Drawable is a visible mesh node paired with its world matrix for one frame.
type Drawable struct {
	Object game_object.GameObject
	World  [16]float32
}

type scene struct {
	mu *sync.RWMutex

	name string
	root game_object.GameObject

	backgroundColor    common.Color
	hasBackgroundColor bool
	backgroundTexture  texture.Texture
	environment       texture.Texture

	registry map[uint64]game_object.GameObject
	nextID   uint64
}

// Scene is the root of the scene graph. Only nodes attached to the root, directly or through
// other nodes, are drawn and lit. Hidden nodes hide their whole subtree.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName sets the scene name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Root returns the root node. Its transform applies to everything in the scene.
	//
	// Returns:
	//   - game_object.GameObject: the root
	Root() game_object.GameObject

	// Add attaches objects to the root and registers them and their descendants.
	// Objects without IDs are assigned new IDs.
	//
	// Parameters:
	//   - objects: the objects to add
	Add(objects ...game_object.GameObject)

	// Remove detaches objects from wherever they sit in the graph and unregisters their subtrees.
	//
	// Parameters:
	//   - objects: the objects to remove
	Remove(objects ...game_object.GameObject)

	// Get looks up an attached object by ID. Descendants attached after Add, through a parent
	// already in the scene, are registered on lookup.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil
	Get(id uint64) game_object.GameObject

	// Count returns the number of objects attached below the root.
	//
	// Returns:
	//   - int: the count
	Count() int

	// Clear detaches every object from the root.
	Clear()

	// Background returns the background color and texture.
	//
	// Returns:
	//   - Background: the current background
	Background() Background

	// SetBackgroundColor sets a solid background and drops any background texture.
	//
	// Parameters:
	//   - c: the color
	SetBackgroundColor(c common.Color)

	// SetBackground uses a texture as the background. Cube and equirectangular textures are
	// looked up along the view ray; UV textures are stretched over the viewport.
	//
	// Parameters:
	//   - t: the texture, nil to go back to the color
	SetBackground(t texture.Texture)

	// Environment returns the default reflection map for standard materials without their own.
	//
	// Returns:
	//   - texture.Texture: the environment, or nil
	Environment() texture.Texture

	// SetEnvironment sets the default reflection map.
	//
	// Parameters:
	//   - t: the environment, nil to clear
	SetEnvironment(t texture.Texture)

	// Update advances every attached node's constant spin by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Update(dt float32)

	// Lights returns the enabled lights on visible attached nodes, with their positions synced
	// to the nodes' world positions.
	//
	// Returns:
	//   - []light.Light: the active lights
	Lights() []light.Light

	// Drawables returns every visible attached node with a mesh, in traversal order.
	//
	// Returns:
	//   - []Drawable: the meshes to draw this frame
	Drawables() []Drawable
}

var _ Scene = &scene{}

// NewScene creates an empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		root:     game_object.NewGameObject(game_object.WithName(name)),
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) register(obj game_object.GameObject) {
	obj.Traverse(func(o game_object.GameObject) bool {
		if o.ID() == 0 {
			o.SetID(s.nextID)
			s.nextID++
		}
		s.registry[o.ID()] = o
		return true
	})
}

// sync rebuilds the registry from the graph, so nodes attached or detached through their
// parents are picked up. It must be called with the write lock held.
func (s *scene) sync() {
	clear(s.registry)
	for _, c := range s.root.Children() {
		s.register(c)
	}
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		s.root.Add(obj)
		s.register(obj)
	}
}

func (s *scene) Remove(objects ...game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		if p := obj.Parent(); p != nil {
			p.Remove(obj)
		}
		obj.Traverse(func(o game_object.GameObject) bool {
			delete(s.registry, o.ID())
			return true
		})
	}
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	return s.registry[id]
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	return len(s.registry)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Remove(s.root.Children()...)
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Background() Background {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Background{Color: s.backgroundColor, HasColor: s.hasBackgroundColor, Texture: s.backgroundTexture}
}

func (s *scene) SetBackgroundColor(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backgroundColor = c
	s.hasBackgroundColor = true
	s.backgroundTexture = nil
}

func (s *scene) SetBackground(t texture.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backgroundTexture = t
}

func (s *scene) Environment() texture.Texture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.environment
}

func (s *scene) SetEnvironment(t texture.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.environment = t
}

func (s *scene) Update(dt float32) {
	s.root.Traverse(func(o game_object.GameObject) bool {
		o.Advance(dt)
		return true
	})
}

// traverseVisible walks visible nodes, passing each one's world matrix.
func (s *scene) traverseVisible(fn func(o game_object.GameObject, world [16]float32)) {
	var walk func(o game_object.GameObject, parent [16]float32)
	walk = func(o game_object.GameObject, parent [16]float32) {
		if !o.Visible() {
			return
		}
		local := o.LocalMatrix()
		var world [16]float32
		common.Mul4(world[:], parent[:], local[:])
		fn(o, world)
		for _, c := range o.Children() {
			walk(c, world)
		}
	}

	var id [16]float32
	common.Identity(id[:])
	walk(s.root, id)
}

func (s *scene) Lights() []light.Light {
	var lights []light.Light
	s.traverseVisible(func(o game_object.GameObject, world [16]float32) {
		l := o.Light()
		if l == nil || !l.Enabled() {
			return
		}
		l.SetPosition(world[12], world[13], world[14])
		lights = append(lights, l)
	})
	return lights
}

func (s *scene) Drawables() []Drawable {
	var out []Drawable
	s.traverseVisible(func(o game_object.GameObject, world [16]float32) {
		if o.Geometry() == nil || o.Material() == nil {
			return
		}
		out = append(out, Drawable{Object: o, World: world})
	})
	return out
}
