package physics

import (
	"fmt"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
)

// World owns the simulated object table and steps it. A tick is the fixed
// pass sequence jump-transition -> integrate -> resolve; later passes read
// state the earlier passes just wrote, so the order is load-bearing. The
// world never clamps dt; the external driver is responsible for that.
type World struct {
	cfg    Config
	scene  *engine.Scene
	marble *engine.GameObject
	tick   uint64

	// Marble contact tracking for enter/exit callbacks.
	activeContacts  map[*engine.GameObject]bool
	currentContacts map[*engine.GameObject]bool

	// ContactEnter fires once per new marble contact, triggers included.
	ContactEnter engine.EventWithArg[*engine.GameObject]
	ContactExit  engine.EventWithArg[*engine.GameObject]
}

func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{
		cfg:             cfg,
		scene:           engine.NewScene("world"),
		activeContacts:  make(map[*engine.GameObject]bool),
		currentContacts: make(map[*engine.GameObject]bool),
	}, nil
}

func (w *World) Config() Config {
	return w.cfg
}

// AddObject registers an object with the world, rejecting invalid physical
// parameters up front rather than letting them reach the tick loop.
func (w *World) AddObject(g *engine.GameObject) error {
	if rb := engine.GetComponent[*components.RigidBody](g); rb != nil {
		if err := rb.Validate(); err != nil {
			return fmt.Errorf("object %q: %w", g.Name, err)
		}
	}
	if s := engine.GetComponent[*components.Surface](g); s != nil {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("object %q: %w", g.Name, err)
		}
	}
	w.scene.AddGameObject(g)
	return nil
}

func (w *World) RemoveObject(g *engine.GameObject) {
	w.scene.RemoveGameObject(g)
	if w.marble == g {
		w.marble = nil
	}
	delete(w.activeContacts, g)
	delete(w.currentContacts, g)
}

// SetMarble marks the collision source. Exactly one object carries the
// marble role; it must own a sphere shape and a rigid body.
func (w *World) SetMarble(g *engine.GameObject) error {
	shape := engine.GetComponent[*components.Shape](g)
	if shape == nil || shape.Kind != components.ShapeSphere {
		return fmt.Errorf("marble %q must have a sphere shape", g.Name)
	}
	if engine.GetComponent[*components.RigidBody](g) == nil {
		return fmt.Errorf("marble %q must have a rigid body", g.Name)
	}
	w.marble = g
	return nil
}

func (w *World) Marble() *engine.GameObject {
	return w.marble
}

func (w *World) Objects() []*engine.GameObject {
	return w.scene.GameObjects
}

// Scene exposes the underlying object table for name and tag lookups.
func (w *World) Scene() *engine.Scene {
	return w.scene
}

func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances the simulation by one tick. Always runs to completion; the
// three passes never reorder.
func (w *World) Step(dt float64) {
	w.tick++
	w.currentContacts = make(map[*engine.GameObject]bool)

	// Component lifecycle runs before physics. Start is latched per object,
	// so objects added mid-run start on their first tick.
	w.scene.Start()
	w.scene.Update(dt)

	w.jumpTransitions()
	w.integrate(dt)
	w.resolve(dt)
	w.rollMarble()

	w.dispatchContactCallbacks()
}

// jumpTransitions closes the gaps the integrator and resolver leave open:
// landing while airborne, a missed apex flip, and leaving a surface without
// a jump (walking off an edge).
func (w *World) jumpTransitions() {
	for _, obj := range w.scene.GameObjects {
		jump := engine.GetComponent[*components.JumpState](obj)
		if jump == nil {
			continue
		}
		rb := engine.GetComponent[*components.RigidBody](obj)

		if jump.Airborne() && jump.IsOnSurface {
			jump.IsJumping = false
			jump.IsFalling = false
			if rb != nil {
				rb.Velocity[1] = 0
			}
		}
		if jump.IsJumping && rb != nil && rb.Velocity.Y() < 0 {
			jump.IsJumping = false
			jump.IsFalling = true
		}
		if !jump.IsOnSurface && !jump.IsJumping && !jump.IsFalling {
			jump.IsFalling = true
		}
	}
}

// rollMarble derives the marble's cosmetic roll from its horizontal
// velocity. Rotation is presentation-only; nothing reads it back.
func (w *World) rollMarble() {
	if w.marble == nil {
		return
	}
	rb := engine.GetComponent[*components.RigidBody](w.marble)
	if rb == nil {
		return
	}
	radius := w.cfg.MarbleRadius
	if shape := engine.GetComponent[*components.Shape](w.marble); shape != nil && shape.Radius > 0 {
		radius = shape.Radius
	}
	rot := &w.marble.Transform.Rotation
	rot[0] += rb.Velocity.Z() / radius
	rot[2] -= rb.Velocity.X() / radius
}

// dispatchContactCallbacks compares this tick's marble contacts against the
// previous tick's and fires enter/exit notifications.
func (w *World) dispatchContactCallbacks() {
	for other := range w.currentContacts {
		if !w.activeContacts[other] {
			w.notifyContactEnter(other)
		}
	}
	for other := range w.activeContacts {
		if !w.currentContacts[other] {
			w.notifyContactExit(other)
		}
	}
	w.activeContacts = w.currentContacts
}

func (w *World) notifyContactEnter(other *engine.GameObject) {
	w.ContactEnter.Invoke(other)
	for _, comp := range other.Components() {
		if handler, ok := comp.(engine.ContactHandler); ok {
			handler.OnContactEnter(w.marble)
		}
	}
	if w.marble == nil {
		return
	}
	for _, comp := range w.marble.Components() {
		if handler, ok := comp.(engine.ContactHandler); ok {
			handler.OnContactEnter(other)
		}
	}
}

func (w *World) notifyContactExit(other *engine.GameObject) {
	w.ContactExit.Invoke(other)
	for _, comp := range other.Components() {
		if handler, ok := comp.(engine.ContactHandler); ok {
			handler.OnContactExit(w.marble)
		}
	}
	if w.marble == nil {
		return
	}
	for _, comp := range w.marble.Components() {
		if handler, ok := comp.(engine.ContactHandler); ok {
			handler.OnContactExit(other)
		}
	}
}
