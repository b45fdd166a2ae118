package game_object

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/Carmen-Shannon/oxy-viewport/engine/geometry"
	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer/material"
)

type gameObject struct {
	id       uint64
	name     string
	visible  bool
	geometry geometry.Geometry
	material material.Material
	light    light.Light

	position      [3]float32
	rotation      [3]float32
	scale         [3]float32
	rotationSpeed [3]float32

	parent   *gameObject
	children []*gameObject

	// bindings are created once so tweens can match them by identity
	positionRef *common.Vec3Ref
	rotationRef *common.Vec3Ref
	scaleRef    *common.Vec3Ref
}

// GameObject defines a node in the scene graph. A node may carry a mesh (geometry plus
// material), a light, both or neither (a plain group). Transforms are relative to the parent.
//
// Nodes are not safe for concurrent mutation. They are changed on the frame goroutine and
// only read by the renderer while a frame is drawn.
type GameObject interface {
	// ID returns the object's identifier, assigned by the scene when 0.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Visible reports whether the object and its subtree are drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the object and its subtree.
	//
	// Parameters:
	//   - visible: false to hide
	SetVisible(visible bool)

	// Geometry returns the mesh geometry, or nil for nodes without a mesh.
	//
	// Returns:
	//   - geometry.Geometry: the geometry
	Geometry() geometry.Geometry

	// Material returns the mesh material, or nil for nodes without a mesh.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// SetMesh assigns geometry and material together.
	//
	// Parameters:
	//   - g: the geometry
	//   - m: the material
	SetMesh(g geometry.Geometry, m material.Material)

	// Light returns the attached light, or nil.
	//
	// Returns:
	//   - light.Light: the light
	Light() light.Light

	// SetLight attaches a light. The scene keeps the light's position at the node's world position.
	//
	// Parameters:
	//   - l: the light, nil to detach
	SetLight(l light.Light)

	Position() [3]float32
	SetPosition(x, y, z float32)

	// Rotation returns Euler angles in radians.
	Rotation() [3]float32
	SetRotation(rx, ry, rz float32)

	Scale() [3]float32
	SetScale(sx, sy, sz float32)

	// RotationSpeed returns radians per second added to the rotation by Advance.
	RotationSpeed() [3]float32
	SetRotationSpeed(rx, ry, rz float32)

	// PositionRef exposes the position as an Animatable with properties "x", "y" and "z".
	// Every call returns the same binding.
	//
	// Returns:
	//   - common.Animatable: the position binding
	PositionRef() common.Animatable

	// RotationRef exposes the rotation as an Animatable with properties "x", "y" and "z".
	//
	// Returns:
	//   - common.Animatable: the rotation binding
	RotationRef() common.Animatable

	// ScaleRef exposes the scale as an Animatable with properties "x", "y" and "z".
	//
	// Returns:
	//   - common.Animatable: the scale binding
	ScaleRef() common.Animatable

	// Advance applies the rotation speed over dt seconds.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// Parent returns the node this one is attached to, or nil.
	//
	// Returns:
	//   - GameObject: the parent
	Parent() GameObject

	// Children returns a copy of the attached children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// Add attaches children, detaching each from its previous parent first.
	// Adding a node to itself or to one of its descendants is ignored.
	//
	// Parameters:
	//   - children: nodes to attach
	Add(children ...GameObject)

	// Remove detaches children. Nodes that are not children are ignored.
	//
	// Parameters:
	//   - children: nodes to detach
	Remove(children ...GameObject)

	// LocalMatrix returns the transform relative to the parent.
	//
	// Returns:
	//   - [16]float32: column-major matrix
	LocalMatrix() [16]float32

	// WorldMatrix returns the transform from object space to world space.
	//
	// Returns:
	//   - [16]float32: column-major matrix
	WorldMatrix() [16]float32

	// WorldPosition returns the node's origin in world space.
	//
	// Returns:
	//   - [3]float32: world position
	WorldPosition() [3]float32

	// Traverse visits this node and its descendants depth-first. Returning false from fn
	// skips the visited node's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(GameObject) bool)

	impl() *gameObject
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the provided options.
// Defaults: visible, unit scale, placed at the origin.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: the new node
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		visible: true,
		scale:   [3]float32{1, 1, 1},
	}
	obj.positionRef = &common.Vec3Ref{
		Load:  func() [3]float32 { return obj.position },
		Store: func(v [3]float32) { obj.position = v },
	}
	obj.rotationRef = &common.Vec3Ref{
		Load:  func() [3]float32 { return obj.rotation },
		Store: func(v [3]float32) { obj.rotation = v },
	}
	obj.scaleRef = &common.Vec3Ref{
		Load:  func() [3]float32 { return obj.scale },
		Store: func(v [3]float32) { obj.scale = v },
	}
	for _, opt := range options {
		opt(obj)
	}
	return obj
}

// NewMesh creates a drawable node.
//
// Parameters:
//   - g: the geometry
//   - m: the material
//   - options: additional options
//
// Returns:
//   - GameObject: the mesh node
func NewMesh(g geometry.Geometry, m material.Material, options ...GameObjectBuilderOption) GameObject {
	return NewGameObject(append([]GameObjectBuilderOption{WithMesh(g, m)}, options...)...)
}

func (o *gameObject) impl() *gameObject {
	return o
}

func (o *gameObject) ID() uint64 {
	return o.id
}

func (o *gameObject) SetID(id uint64) {
	o.id = id
}

func (o *gameObject) Name() string {
	return o.name
}

func (o *gameObject) Visible() bool {
	return o.visible
}

func (o *gameObject) SetVisible(visible bool) {
	o.visible = visible
}

func (o *gameObject) Geometry() geometry.Geometry {
	return o.geometry
}

func (o *gameObject) Material() material.Material {
	return o.material
}

func (o *gameObject) SetMesh(g geometry.Geometry, m material.Material) {
	o.geometry = g
	o.material = m
}

func (o *gameObject) Light() light.Light {
	return o.light
}

func (o *gameObject) SetLight(l light.Light) {
	o.light = l
}

func (o *gameObject) Position() [3]float32 {
	return o.position
}

func (o *gameObject) SetPosition(x, y, z float32) {
	o.position = [3]float32{x, y, z}
}

func (o *gameObject) Rotation() [3]float32 {
	return o.rotation
}

func (o *gameObject) SetRotation(rx, ry, rz float32) {
	o.rotation = [3]float32{rx, ry, rz}
}

func (o *gameObject) Scale() [3]float32 {
	return o.scale
}

func (o *gameObject) SetScale(sx, sy, sz float32) {
	o.scale = [3]float32{sx, sy, sz}
}

func (o *gameObject) RotationSpeed() [3]float32 {
	return o.rotationSpeed
}

func (o *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	o.rotationSpeed = [3]float32{rx, ry, rz}
}

func (o *gameObject) PositionRef() common.Animatable {
	return o.positionRef
}

func (o *gameObject) RotationRef() common.Animatable {
	return o.rotationRef
}

func (o *gameObject) ScaleRef() common.Animatable {
	return o.scaleRef
}

func (o *gameObject) Advance(dt float32) {
	for i := range o.rotation {
		o.rotation[i] += o.rotationSpeed[i] * dt
	}
}

func (o *gameObject) Parent() GameObject {
	if o.parent == nil {
		return nil
	}
	return o.parent
}

func (o *gameObject) Children() []GameObject {
	out := make([]GameObject, len(o.children))
	for i, c := range o.children {
		out[i] = c
	}
	return out
}

func (o *gameObject) isAncestorOrSelf(n *gameObject) bool {
	for p := o; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (o *gameObject) Add(children ...GameObject) {
	for _, c := range children {
		if c == nil {
			continue
		}
		child := c.impl()
		if o.isAncestorOrSelf(child) {
			continue
		}
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = o
		o.children = append(o.children, child)
	}
}

func (o *gameObject) Remove(children ...GameObject) {
	for _, c := range children {
		if c == nil {
			continue
		}
		child := c.impl()
		idx := slices.Index(o.children, child)
		if idx < 0 {
			continue
		}
		o.children = slices.Delete(o.children, idx, idx+1)
		child.parent = nil
	}
}

func (o *gameObject) LocalMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], o.position, o.rotation, o.scale)
	return m
}

func (o *gameObject) WorldMatrix() [16]float32 {
	local := o.LocalMatrix()
	if o.parent == nil {
		return local
	}
	parent := o.parent.WorldMatrix()
	var out [16]float32
	common.Mul4(out[:], parent[:], local[:])
	return out
}

func (o *gameObject) WorldPosition() [3]float32 {
	m := o.WorldMatrix()
	return [3]float32{m[12], m[13], m[14]}
}

func (o *gameObject) Traverse(fn func(GameObject) bool) {
	if !fn(o) {
		return
	}
	for _, c := range slices.Clone(o.children) {
		c.Traverse(fn)
	}
}
