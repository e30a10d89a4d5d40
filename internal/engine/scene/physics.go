package scene

import (
	"cmp"
	"slices"

	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/pkg/math"
)

const (
	// contactSlop keeps resting contacts alive between sub-steps.
	contactSlop float32 = 1e-3
	// restingSpeed is the approach speed below which bounces are dropped.
	restingSpeed float32 = 0.1
)

// EventType distinguishes the start and end of a contact.
type EventType uint8

const (
	Started EventType = iota
	Stopped
)

func (t EventType) String() string {
	if t == Started {
		return "started"
	}
	return "stopped"
}

// EventFlags qualify a collision event.
type EventFlags uint8

const (
	// FlagSensor marks contacts where one side is a sensor.
	FlagSensor EventFlags = 1 << iota
	// FlagRemoved marks contacts closed because an object was destroyed.
	FlagRemoved
)

// Has reports whether every bit of f2 is set in f.
func (f EventFlags) Has(f2 EventFlags) bool {
	return f&f2 == f2
}

// CollisionEvent reports a contact change between A and B (A < B).
type CollisionEvent struct {
	Type  EventType
	A, B  Handle
	Flags EventFlags
}

type pair struct {
	a, b Handle
}

func makePair(x, y Handle) pair {
	if x > y {
		x, y = y, x
	}
	return pair{x, y}
}

type contact struct {
	flags  EventFlags
	report bool
}

type worldCollider struct {
	handle Handle
	obj    *object
	t      math.Transform
}

// closest returns the point of the collider nearest to p, and a normal to
// use when p lies inside the collider.
func (c worldCollider) closest(p math.Vec3) (math.Vec3, math.Vec3) {
	shape := c.obj.collider
	switch shape.Kind {
	case geom.ShapePlane, geom.ShapeBox:
		local := c.t.Inverse().Apply(p)
		half := shape.HalfExtents()
		return c.t.Apply(local.Clamp(half)), c.t.Rotation.Rotate(insideNormal(local, half))
	case geom.ShapeSphere:
		dir := p.Sub(c.t.Translation).Normalize()
		if dir == (math.Vec3{}) {
			dir = math.AxisY
		}
		return c.t.Translation.Add(dir.Scale(shape.Radius)), dir
	case geom.ShapeSegment:
		a, b := c.t.Apply(shape.A), c.t.Apply(shape.B)
		ab := b.Sub(a)
		var s float32
		if l := ab.Dot(ab); l > 0 {
			s = min(max(p.Sub(a).Dot(ab)/l, 0), 1)
		}
		return a.Add(ab.Scale(s)), math.AxisY
	}
	return c.t.Translation, math.AxisY
}

// insideNormal picks the face of the box nearest to local.
func insideNormal(local, half math.Vec3) math.Vec3 {
	sign := func(v float32) float32 {
		if v < 0 {
			return -1
		}
		return 1
	}
	dx := half.X - abs(local.X)
	dy := half.Y - abs(local.Y)
	dz := half.Z - abs(local.Z)
	switch {
	case dy <= dx && dy <= dz:
		return math.Vec3{Y: sign(local.Y)}
	case dx <= dz:
		return math.Vec3{X: sign(local.X)}
	default:
		return math.Vec3{Z: sign(local.Z)}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Step advances the simulation by dt seconds in fixed sub-steps and returns
// the number of sub-steps run. Time beyond MaxSteps sub-steps is dropped.
func (w *World) Step(dt float32) int {
	if dt <= 0 {
		return 0
	}
	w.accumulator += dt
	steps := 0
	for w.accumulator >= w.config.TimeStep {
		if steps == w.config.MaxSteps {
			w.accumulator = 0
			break
		}
		w.substep(w.config.TimeStep)
		w.accumulator -= w.config.TimeStep
		steps++
	}
	return steps
}

func (w *World) colliders() []worldCollider {
	var out []worldCollider
	for _, h := range w.order {
		o := w.objects[h]
		if o.collider == nil || o.body == geom.BodyDynamic {
			continue
		}
		out = append(out, worldCollider{handle: h, obj: o, t: w.world(o)})
	}
	return out
}

func (w *World) substep(dt float32) {
	statics := w.colliders()
	touching := make(map[pair]contact)

	for _, h := range w.order {
		o := w.objects[h]
		if o.body != geom.BodyDynamic {
			continue
		}
		o.velocity = o.velocity.Add(w.config.Gravity.Scale(dt))
		o.local.Translation = o.local.Translation.Add(o.velocity.Scale(dt))
		if o.collider == nil || o.collider.Kind != geom.ShapeSphere {
			continue
		}

		r := o.collider.Radius
		grounded := false
		for _, c := range statics {
			p := o.local.Translation
			point, fallback := c.closest(p)
			d := p.Sub(point)
			dist := d.Length()
			if dist >= r+contactSlop {
				continue
			}

			key := makePair(h, c.handle)
			if o.sensor || c.obj.sensor {
				touching[key] = contact{flags: FlagSensor, report: o.events || c.obj.events}
				continue
			}
			touching[key] = contact{report: o.events || c.obj.events}
			if dist >= r {
				continue
			}

			n := fallback
			if dist > 1e-6 {
				n = d.Scale(1 / dist)
			}
			o.local.Translation = p.Add(n.Scale(r - dist))
			if vn := o.velocity.Dot(n); vn < 0 {
				e := (o.restitution + c.obj.restitution) / 2
				if -vn < restingSpeed {
					e = 0
				}
				o.velocity = o.velocity.Sub(n.Scale((1 + e) * vn))
				grounded = true
			}
		}
		if grounded && w.config.Damping > 0 {
			o.velocity = o.velocity.Scale(max(0, 1-w.config.Damping*dt))
		}
	}

	w.diffContacts(touching)
}

func (w *World) diffContacts(touching map[pair]contact) {
	for _, p := range sortedPairs(touching) {
		if _, ok := w.contacts[p]; !ok && touching[p].report {
			w.events = append(w.events, CollisionEvent{Type: Started, A: p.a, B: p.b, Flags: touching[p].flags})
		}
	}
	w.closeContacts(func(p pair) bool {
		_, ok := touching[p]
		return !ok
	}, 0)
	w.contacts = touching
}

// closeContacts ends every tracked contact matching match.
func (w *World) closeContacts(match func(pair) bool, extra EventFlags) {
	for _, p := range sortedPairs(w.contacts) {
		if !match(p) {
			continue
		}
		c := w.contacts[p]
		if c.report {
			w.events = append(w.events, CollisionEvent{Type: Stopped, A: p.a, B: p.b, Flags: c.flags | extra})
		}
		delete(w.contacts, p)
	}
}

func sortedPairs(m map[pair]contact) []pair {
	keys := make([]pair, 0, len(m))
	for p := range m {
		keys = append(keys, p)
	}
	slices.SortFunc(keys, func(x, y pair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})
	return keys
}

// DrainCollisionEvents returns the queued events and clears the queue.
func (w *World) DrainCollisionEvents() []CollisionEvent {
	events := w.events
	w.events = nil
	return events
}
