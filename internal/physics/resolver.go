package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
)

// floorNormalY is the minimum upward normal component for a contact to
// count as floor-like.
const floorNormalY = 0.1

// resolve scans every shaped object against the marble, resolves
// penetrations and impulses, and re-latches the ground flags. The flags are
// cleared once here and re-asserted by any matching contact, so a tick with
// no contact leaves the marble airborne.
func (w *World) resolve(dt float64) {
	marble := w.marble
	if marble == nil {
		return
	}
	rb := engine.GetComponent[*components.RigidBody](marble)
	if rb == nil || rb.IsStatic {
		return
	}
	jump := engine.GetComponent[*components.JumpState](marble)

	radius := w.cfg.MarbleRadius
	if shape := engine.GetComponent[*components.Shape](marble); shape != nil && shape.Kind == components.ShapeSphere {
		radius = shape.Radius
	}

	rb.IsOnGround = false
	if jump != nil {
		jump.IsOnSurface = false
	}

	w.resolveWorldBounds(marble, rb, jump, radius)

	for _, other := range w.scene.GameObjects {
		if other == marble {
			continue
		}
		shape := engine.GetComponent[*components.Shape](other)
		if shape == nil {
			continue
		}

		contact := Detect(marble.Transform.Position, radius, shape, &other.Transform)
		if !contact.Collided {
			continue
		}
		w.currentContacts[other] = true

		if shape.IsTrigger {
			continue
		}
		w.resolveContact(marble, rb, jump, other, contact)
	}
}

// resolveWorldBounds handles the ground platform under the course and the
// respawn path for objects that fell off it.
func (w *World) resolveWorldBounds(marble *engine.GameObject, rb *components.RigidBody, jump *components.JumpState, radius float64) {
	pos := &marble.Transform.Position
	onPlatform := math.Abs(pos.X()) <= w.cfg.PlatformHalfExtent &&
		math.Abs(pos.Z()) <= w.cfg.PlatformHalfExtent

	if onPlatform {
		// vy == 0 counts as downward so a resting marble re-latches its
		// ground flags every tick instead of alternating with free fall.
		if pos.Y() <= radius+w.cfg.GroundSnapEpsilon && rb.Velocity.Y() <= 0 {
			pos[1] = radius
			rb.IsOnGround = true
			if jump != nil {
				jump.IsOnSurface = true
			}
			if -rb.Velocity.Y() > w.cfg.BounceVelocityThreshold {
				rb.Velocity[1] = -rb.Velocity.Y() * rb.BounceCoefficient
			} else {
				rb.Velocity[1] = 0
			}
		}
		return
	}

	if pos.Y() < w.cfg.RespawnYThreshold {
		w.respawn(marble, rb, jump, radius)
	}
}

// respawn resets a fallen marble to the spawn point. Idempotent: respawning
// an already-respawned marble changes nothing.
func (w *World) respawn(marble *engine.GameObject, rb *components.RigidBody, jump *components.JumpState, radius float64) {
	spawn := mgl64.Vec3{0, radius, 0}
	marble.Transform.Position = spawn
	marble.Transform.PreviousPosition = spawn
	rb.Velocity = mgl64.Vec3{}
	rb.IsOnGround = true
	if jump != nil {
		jump.ResetToGrounded()
	}
}

// resolveContact applies the restitution impulse and positional correction
// for a single non-trigger contact, then runs the floor-contact side
// effects (ground flags, surface friction, ramp slide).
func (w *World) resolveContact(marble *engine.GameObject, rb *components.RigidBody, jump *components.JumpState, other *engine.GameObject, contact Contact) {
	relVel := rb.Velocity
	if otherRB := engine.GetComponent[*components.RigidBody](other); otherRB != nil {
		relVel = relVel.Sub(otherRB.Velocity)
	}
	velAlongNormal := relVel.Dot(contact.Normal)
	if velAlongNormal >= 0 {
		return // separating, nothing to resolve
	}

	surface := engine.GetComponent[*components.Surface](other)

	bounce := rb.BounceCoefficient
	if surface != nil && surface.Bounciness < bounce {
		bounce = surface.Bounciness
	}

	impulse := -(1 + bounce) * velAlongNormal
	rb.Velocity = rb.Velocity.Add(contact.Normal.Mul(impulse))
	marble.Transform.Position = marble.Transform.Position.Add(contact.Normal.Mul(contact.Penetration))

	if contact.Normal.Y() <= floorNormalY {
		return
	}

	rb.IsOnGround = true
	if jump != nil {
		if surface == nil || surface.IsJumpable {
			jump.IsOnSurface = true
		}
		if jump.IsJumping && rb.Velocity.Y() <= 0 {
			jump.IsJumping = false
		}
	}

	friction := rb.GroundFriction
	if surface != nil {
		friction = surface.Friction
	}
	rb.Velocity[0] *= friction
	rb.Velocity[2] *= friction

	// Single-axis slope-slide approximation, not a slope-projected gravity
	// vector.
	if surface != nil && surface.IsRamp {
		rb.Velocity[2] += math.Sin(surface.RampAngle) * rb.GravityAccel * surface.SlideFactor
	}
}
