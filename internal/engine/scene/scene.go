// Package scene is an in-process scene graph and physics world. Objects are
// addressed by opaque handles, carry a transform relative to their parent,
// and may own a collider and a rigid body. Step advances the simulation and
// queues collision events for objects that asked for them.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/pkg/math"
)

var (
	// ErrUnknownHandle is returned for handles that were never created or
	// have been destroyed.
	ErrUnknownHandle = errors.New("unknown scene handle")
	// ErrInvalidParent is returned when an object names a missing parent.
	ErrInvalidParent = errors.New("invalid parent handle")
	// ErrDegenerateMesh is returned when a collider cannot be derived from
	// an object's mesh.
	ErrDegenerateMesh = errors.New("degenerate mesh")
	// ErrUnsupportedShape is returned for primitive colliders without a shape.
	ErrUnsupportedShape = errors.New("unsupported collider shape")
)

// Handle identifies an object in a World. The zero handle is never issued.
type Handle uint32

// ObjectSpec describes an object to create.
type ObjectSpec struct {
	Name      string
	Shape     geom.Shape
	Material  geom.Material
	Transform math.Transform
	// Parent is zero for root objects.
	Parent Handle
	// Tag groups objects for bulk lookup and removal.
	Tag string
}

// Snapshot is a read-only view of an object used by renderers.
type Snapshot struct {
	Handle   Handle
	Name     string
	Shape    geom.Shape
	Material geom.Material
	World    math.Transform
}

type object struct {
	name     string
	shape    geom.Shape
	material geom.Material
	local    math.Transform
	parent   Handle
	children []Handle
	tag      string

	collider    *geom.Shape
	body        geom.BodyKind
	sensor      bool
	events      bool
	restitution float32
	velocity    math.Vec3
}

// Config holds simulation parameters.
type Config struct {
	Gravity math.Vec3
	// TimeStep is the fixed physics sub-step in seconds.
	TimeStep float32
	// MaxSteps bounds the sub-steps run by a single Step call.
	MaxSteps int
	// Damping removes this fraction of tangential velocity per second of
	// surface contact.
	Damping float32
}

// DefaultConfig returns earth gravity at 240 Hz.
func DefaultConfig() Config {
	return Config{
		Gravity:  math.Vec3{Y: -9.81},
		TimeStep: 1.0 / 240,
		MaxSteps: 16,
		Damping:  0.3,
	}
}

// World owns every scene object.
type World struct {
	config  Config
	objects map[Handle]*object
	order   []Handle
	next    Handle

	accumulator float32
	contacts    map[pair]contact
	events      []CollisionEvent
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = DefaultConfig().TimeStep
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultConfig().MaxSteps
	}
	return &World{
		config:   cfg,
		objects:  make(map[Handle]*object),
		contacts: make(map[pair]contact),
	}
}

// Config returns the simulation parameters.
func (w *World) Config() Config {
	return w.config
}

// Len returns the number of live objects.
func (w *World) Len() int {
	return len(w.objects)
}

// CreateObject adds an object and returns its handle.
func (w *World) CreateObject(spec ObjectSpec) (Handle, error) {
	var parent *object
	if spec.Parent != 0 {
		var ok bool
		if parent, ok = w.objects[spec.Parent]; !ok {
			return 0, fmt.Errorf("%w: %d", ErrInvalidParent, spec.Parent)
		}
	}
	w.next++
	h := w.next
	w.objects[h] = &object{
		name:     spec.Name,
		shape:    spec.Shape,
		material: spec.Material,
		local:    spec.Transform,
		parent:   spec.Parent,
		tag:      spec.Tag,
	}
	w.order = append(w.order, h)
	if parent != nil {
		parent.children = append(parent.children, h)
	}
	return h, nil
}

func (w *World) get(h Handle) (*object, error) {
	o, ok := w.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return o, nil
}

// AttachCollider gives the object a collision shape derived from src.
func (w *World) AttachCollider(h Handle, src geom.ColliderSource) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	shape := o.shape
	switch src {
	case geom.ColliderFromMesh:
		switch shape.Kind {
		case geom.ShapePlane, geom.ShapeBox, geom.ShapeSphere:
		default:
			return fmt.Errorf("%w: %s %q has no mesh", ErrDegenerateMesh, shape.Kind, o.name)
		}
		if !(shape.Area() > 0) {
			return fmt.Errorf("%w: %s %q has zero area", ErrDegenerateMesh, shape, o.name)
		}
	case geom.ColliderPrimitive:
		if shape.Kind == geom.ShapeNone {
			return fmt.Errorf("%w: %q", ErrUnsupportedShape, o.name)
		}
	default:
		return fmt.Errorf("%w: collider source %s", ErrUnsupportedShape, src)
	}
	o.collider = &shape
	return nil
}

// AttachRigidBody sets how the physics step moves the object. Dynamic
// bodies are simulated in world space and must be roots.
func (w *World) AttachRigidBody(h Handle, kind geom.BodyKind) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	if kind == geom.BodyDynamic && o.parent != 0 {
		return fmt.Errorf("%w: dynamic body %q has a parent", ErrInvalidParent, o.name)
	}
	o.body = kind
	o.velocity = math.Vec3{}
	return nil
}

// SetRestitution sets the bounciness of the object's collider.
func (w *World) SetRestitution(h Handle, r float32) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	o.restitution = r
	return nil
}

// Restitution returns the bounciness of the object's collider.
func (w *World) Restitution(h Handle) (float32, error) {
	o, err := w.get(h)
	if err != nil {
		return 0, err
	}
	return o.restitution, nil
}

// MarkSensor turns the object's collider into a trigger with no physical
// response.
func (w *World) MarkSensor(h Handle) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	o.sensor = true
	return nil
}

// EnableEvents makes contacts involving the object produce events.
func (w *World) EnableEvents(h Handle) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	o.events = true
	return nil
}

// Transform returns the object's transform relative to its parent.
func (w *World) Transform(h Handle) (math.Transform, error) {
	o, err := w.get(h)
	if err != nil {
		return math.Transform{}, err
	}
	return o.local, nil
}

// SetTransform replaces the object's transform relative to its parent.
func (w *World) SetTransform(h Handle, t math.Transform) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	o.local = t
	return nil
}

// Velocity returns the linear velocity of a dynamic body.
func (w *World) Velocity(h Handle) (math.Vec3, error) {
	o, err := w.get(h)
	if err != nil {
		return math.Vec3{}, err
	}
	return o.velocity, nil
}

// WorldTransform composes the parent chain of h into an absolute transform.
func (w *World) WorldTransform(h Handle) (math.Transform, error) {
	o, err := w.get(h)
	if err != nil {
		return math.Transform{}, err
	}
	return w.world(o), nil
}

func (w *World) world(o *object) math.Transform {
	t := o.local
	for p := o.parent; p != 0; {
		parent, ok := w.objects[p]
		if !ok {
			break
		}
		t = parent.local.Mul(t)
		p = parent.parent
	}
	return t
}

// Parent returns the parent handle of h, zero for roots.
func (w *World) Parent(h Handle) (Handle, error) {
	o, err := w.get(h)
	if err != nil {
		return 0, err
	}
	return o.parent, nil
}

// Children returns the direct children of h.
func (w *World) Children(h Handle) ([]Handle, error) {
	o, err := w.get(h)
	if err != nil {
		return nil, err
	}
	return append([]Handle(nil), o.children...), nil
}

// Tagged returns the live handles carrying tag in creation order.
func (w *World) Tagged(tag string) []Handle {
	var out []Handle
	for _, h := range w.order {
		if w.objects[h].tag == tag {
			out = append(out, h)
		}
	}
	return out
}

// DestroySubtree removes h and all of its descendants. Contacts involving
// removed objects are closed with a Stopped event flagged FlagRemoved.
func (w *World) DestroySubtree(h Handle) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	if p, ok := w.objects[o.parent]; ok {
		p.children = removeHandle(p.children, h)
	}

	removed := make(map[Handle]bool)
	stack := []Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		removed[cur] = true
		stack = append(stack, w.objects[cur].children...)
	}

	w.closeContacts(func(p pair) bool { return removed[p.a] || removed[p.b] }, FlagRemoved)
	for cur := range removed {
		delete(w.objects, cur)
	}
	kept := w.order[:0]
	for _, cur := range w.order {
		if !removed[cur] {
			kept = append(kept, cur)
		}
	}
	w.order = kept
	return nil
}

// Each calls fn for every live object in creation order.
func (w *World) Each(fn func(Snapshot)) {
	for _, h := range w.order {
		o := w.objects[h]
		fn(Snapshot{
			Handle:   h,
			Name:     o.name,
			Shape:    o.shape,
			Material: o.material,
			World:    w.world(o),
		})
	}
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, cur := range list {
		if cur == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
