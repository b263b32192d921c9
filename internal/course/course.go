// Package course assembles the obstacle course: the marble, the shaped
// objects it collides with, and the trigger zones that mark progress.
package course

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
	"github.com/spruceb/marblez/internal/physics"
)

// TagMarble marks the single player-controlled object.
const TagMarble = "marble"

// NewMarble builds the controllable marble at the spawn point with the
// world's physical constants.
func NewMarble(cfg physics.Config) (*engine.GameObject, error) {
	shape, err := components.NewSphereShape(cfg.MarbleRadius)
	if err != nil {
		return nil, err
	}

	marble := engine.NewGameObject("marble")
	marble.Tags = []string{TagMarble}
	marble.Transform.Position = mgl64.Vec3{0, cfg.MarbleRadius, 0}
	marble.Transform.PreviousPosition = marble.Transform.Position

	rb := components.NewRigidBody()
	rb.GravityAccel = cfg.GravityAccel
	rb.GroundFriction = cfg.GroundFriction
	rb.AirFriction = cfg.AirFriction
	rb.BounceCoefficient = cfg.BounceCoefficient

	jump := components.NewJumpState(cfg.JumpPower)
	jump.JumpCooldownTime = cfg.JumpCooldownTime

	marble.AddComponent(shape)
	marble.AddComponent(rb)
	marble.AddComponent(jump)
	marble.AddComponent(components.NewPlayerInput(cfg.MoveAccel, cfg.AirControl))
	return marble, nil
}

// NewBox builds a static box obstacle.
func NewBox(name string, pos, size mgl64.Vec3) (*engine.GameObject, error) {
	shape, err := components.NewBoxShape(size.X(), size.Y(), size.Z())
	if err != nil {
		return nil, err
	}
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(shape)
	obj.AddComponent(components.NewStaticBody())
	obj.AddComponent(components.NewSurface())
	return obj, nil
}

// NewRamp builds a static box whose surface adds the slope-slide force
// during floor contact.
func NewRamp(name string, pos, size mgl64.Vec3, angle, slideFactor float64) (*engine.GameObject, error) {
	obj, err := NewBox(name, pos, size)
	if err != nil {
		return nil, err
	}
	obj.Transform.Rotation = mgl64.Vec3{angle, 0, 0}
	for _, c := range obj.Components() {
		if s, ok := c.(*components.Surface); ok {
			s.IsRamp = true
			s.RampAngle = angle
			s.SlideFactor = slideFactor
		}
	}
	return obj, nil
}

// NewSphereObstacle builds a static sphere obstacle.
func NewSphereObstacle(name string, pos mgl64.Vec3, radius float64) (*engine.GameObject, error) {
	shape, err := components.NewSphereShape(radius)
	if err != nil {
		return nil, err
	}
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(shape)
	obj.AddComponent(components.NewStaticBody())
	obj.AddComponent(components.NewSurface())
	return obj, nil
}

// NewRing builds a torus the marble can jump through. With no rotation the
// hole axis runs along world Z, a standing hoop.
func NewRing(name string, pos mgl64.Vec3, radius, tube float64) (*engine.GameObject, error) {
	shape, err := components.NewTorusShape(radius, tube)
	if err != nil {
		return nil, err
	}
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(shape)
	obj.AddComponent(components.NewStaticBody())
	obj.AddComponent(components.NewSurface())
	return obj, nil
}

// NewCheckpoint builds an invisible trigger zone that fires once when the
// marble first touches it.
func NewCheckpoint(name string, pos, size mgl64.Vec3) (*engine.GameObject, error) {
	shape, err := components.NewBoxShape(size.X(), size.Y(), size.Z())
	if err != nil {
		return nil, err
	}
	shape.IsTrigger = true
	obj := engine.NewGameObject(name)
	obj.Transform.Position = pos
	obj.AddComponent(shape)
	obj.AddComponent(&Checkpoint{TargetTag: TagMarble})
	return obj, nil
}

// Checkpoint reacts to the marble entering its trigger zone. Add it to any
// object with a trigger shape.
type Checkpoint struct {
	engine.BaseComponent
	TargetTag string
	OnReached func(marble *engine.GameObject)
	reached   bool
}

func (c *Checkpoint) Start() {
	if c.TargetTag == "" {
		c.TargetTag = TagMarble
	}
}

func (c *Checkpoint) Reached() bool {
	return c.reached
}

func (c *Checkpoint) OnContactEnter(other *engine.GameObject) {
	if c.reached || other == nil || !other.HasTag(c.TargetTag) {
		return
	}
	c.reached = true
	g := c.GetGameObject()
	if g != nil {
		log.Printf("checkpoint %q reached", g.Name)
	}
	if c.OnReached != nil {
		c.OnReached(other)
	}
}

func (c *Checkpoint) OnContactExit(other *engine.GameObject) {}

// BuildDefault assembles the built-in course: scattered crates, a ramp, a
// bumper sphere, a standing ring with a checkpoint behind it.
func BuildDefault(cfg physics.Config) (*physics.World, error) {
	w, err := physics.NewWorld(cfg)
	if err != nil {
		return nil, err
	}

	marble, err := NewMarble(cfg)
	if err != nil {
		return nil, err
	}
	if err := w.AddObject(marble); err != nil {
		return nil, err
	}
	if err := w.SetMarble(marble); err != nil {
		return nil, err
	}

	type builder func() (*engine.GameObject, error)
	builders := []builder{
		func() (*engine.GameObject, error) {
			return NewBox("crate-a", mgl64.Vec3{4, 0.5, 2}, mgl64.Vec3{1, 1, 1})
		},
		func() (*engine.GameObject, error) {
			return NewBox("crate-b", mgl64.Vec3{-3, 0.75, -4}, mgl64.Vec3{1.5, 1.5, 1.5})
		},
		func() (*engine.GameObject, error) {
			return NewRamp("ramp", mgl64.Vec3{0, 0.4, 7}, mgl64.Vec3{3, 0.4, 4}, math.Pi/12, 1.0)
		},
		func() (*engine.GameObject, error) {
			return NewSphereObstacle("bumper", mgl64.Vec3{6, 0.8, -5}, 0.8)
		},
		func() (*engine.GameObject, error) {
			return NewRing("ring", mgl64.Vec3{-6, 2, 3}, 1.8, 0.3)
		},
		func() (*engine.GameObject, error) {
			return NewCheckpoint("ring-checkpoint", mgl64.Vec3{-6, 2, 5}, mgl64.Vec3{2, 3, 1})
		},
	}
	for _, build := range builders {
		obj, err := build()
		if err != nil {
			return nil, err
		}
		if err := w.AddObject(obj); err != nil {
			return nil, err
		}
	}
	return w, nil
}
