package board

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/internal/level"
	"github.com/Faultbox/labyrinth/internal/logger"
)

// ErrSceneCreation wraps any collaborator failure while building a level.
var ErrSceneCreation = errors.New("scene creation failed")

// Handles are the scene objects of a built level.
type Handles struct {
	Session     *Session
	Floor       scene.Handle
	Walls       []scene.Handle
	StartMarker scene.Handle
	GoalMarker  scene.Handle
	GoalSensor  scene.Handle
	Ceiling     scene.Handle
}

// Builder creates scene objects from a compiled layout.
type Builder struct {
	engine Engine
}

// NewBuilder returns a builder driving engine.
func NewBuilder(engine Engine) *Builder {
	return &Builder{engine: engine}
}

// Build creates one object per placement. On failure everything created so
// far is torn down and the error wraps ErrSceneCreation.
func (b *Builder) Build(layout *level.Layout) (*Handles, error) {
	if layout == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrSceneCreation)
	}

	session := NewSession(b.engine)
	log := logger.Session("builder", session.ID.String())
	h := &Handles{Session: session}

	for i, p := range layout.Placements() {
		handle, err := b.place(session, h.Floor, p, i)
		if err != nil {
			if terr := session.Teardown(); terr != nil {
				log.Warn("teardown after failed build", zap.Error(terr))
			}
			log.Error("level build failed", zap.Stringer("placement", p.Kind), zap.Error(err))
			return nil, fmt.Errorf("%w: %s: %w", ErrSceneCreation, p.Kind, err)
		}

		switch p.Kind {
		case level.KindFloor:
			h.Floor = handle
		case level.KindBorderWall, level.KindInteriorWall:
			h.Walls = append(h.Walls, handle)
		case level.KindStartMarker:
			h.StartMarker = handle
		case level.KindGoalMarker:
			h.GoalMarker = handle
		case level.KindGoalSensor:
			h.GoalSensor = handle
		case level.KindCeiling:
			h.Ceiling = handle
		}
	}

	log.Debug("level built",
		zap.Int("objects", session.Len()),
		zap.Int("walls", len(h.Walls)),
	)
	return h, nil
}

func (b *Builder) place(session *Session, floor scene.Handle, p level.Placement, index int) (scene.Handle, error) {
	spec := scene.ObjectSpec{
		Name:      fmt.Sprintf("%s-%d", p.Kind, index),
		Shape:     p.Shape,
		Material:  p.Material,
		Transform: p.Transform,
		Tag:       session.Tag(),
	}
	if p.Parented {
		spec.Parent = floor
	}

	handle, err := b.engine.CreateObject(spec)
	if err != nil {
		return 0, err
	}
	session.Register(handle)

	if p.Collider != geom.ColliderNone {
		if err := b.engine.AttachCollider(handle, p.Collider); err != nil {
			return 0, err
		}
	}
	if p.Body != geom.BodyNone {
		if err := b.engine.AttachRigidBody(handle, p.Body); err != nil {
			return 0, err
		}
	}
	if p.Restitution != 0 {
		if err := b.engine.SetRestitution(handle, p.Restitution); err != nil {
			return 0, err
		}
	}
	if p.Sensor {
		if err := b.engine.MarkSensor(handle); err != nil {
			return 0, err
		}
	}
	if p.Events {
		if err := b.engine.EnableEvents(handle); err != nil {
			return 0, err
		}
	}
	return handle, nil
}
