// Package board turns a compiled level into live scene objects and runs the
// per-frame game rules on top of them: tilting the floor and detecting when
// the marble reaches the goal.
package board

import (
	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// Engine is the scene/physics collaborator the builder drives.
// *scene.World implements it.
type Engine interface {
	CreateObject(spec scene.ObjectSpec) (scene.Handle, error)
	AttachCollider(h scene.Handle, src geom.ColliderSource) error
	AttachRigidBody(h scene.Handle, kind geom.BodyKind) error
	SetRestitution(h scene.Handle, r float32) error
	MarkSensor(h scene.Handle) error
	EnableEvents(h scene.Handle) error
	Destroyer
}

// Destroyer removes an object and everything parented to it.
type Destroyer interface {
	DestroySubtree(h scene.Handle) error
}

// Orienter reads and writes an object's local transform.
type Orienter interface {
	Transform(h scene.Handle) (math.Transform, error)
	SetTransform(h scene.Handle, t math.Transform) error
}

var _ Engine = (*scene.World)(nil)
var _ Orienter = (*scene.World)(nil)
