package physics

import (
	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
)

// integrate advances every non-static object that carries a rigid body:
// explicit Euler, one step per tick, no substepping. dt only drives the
// jump cooldown; gravity, movement acceleration and friction are per-tick
// quantities.
func (w *World) integrate(dt float64) {
	for _, obj := range w.scene.GameObjects {
		rb := engine.GetComponent[*components.RigidBody](obj)
		if rb == nil || rb.IsStatic {
			continue
		}

		t := &obj.Transform
		t.PreviousPosition = t.Position

		jump := engine.GetComponent[*components.JumpState](obj)
		if jump != nil {
			w.integrateJumper(obj, rb, jump, dt)
		} else if !rb.IsOnGround {
			rb.Velocity[1] -= rb.GravityAccel
		}

		t.Position = t.Position.Add(rb.Velocity)

		friction := rb.AirFriction
		if rb.IsOnGround {
			friction = rb.GroundFriction
		}
		rb.Velocity[0] *= friction
		rb.Velocity[2] *= friction
	}
}

// integrateJumper handles movement intent, the jump launch and gravity for
// objects with a jump state.
func (w *World) integrateJumper(obj *engine.GameObject, rb *components.RigidBody, jump *components.JumpState, dt float64) {
	// Gravity is gated on the surface flag as it stood at the start of the
	// pass, so the launch tick leaves velocity.y at exactly JumpPower.
	wasOnSurface := jump.IsOnSurface

	if input := engine.GetComponent[*components.PlayerInput](obj); input != nil {
		accel := input.Speed
		if !jump.IsOnSurface {
			accel *= input.AirControl
		}
		rb.Velocity[0] += input.Direction.X() * accel
		rb.Velocity[2] += input.Direction.Y() * accel
	}

	jump.JumpCooldown -= dt
	if jump.JumpCooldown < 0 {
		jump.JumpCooldown = 0
	}

	if jump.JumpRequested && jump.CanJump && jump.IsOnSurface && !jump.IsJumping && jump.JumpCooldown <= 0 {
		jump.IsJumping = true
		jump.IsOnSurface = false
		rb.Velocity[1] = jump.JumpPower
		// Lift the object slightly so the resolver doesn't re-ground it on
		// the launch tick.
		obj.Transform.Position[1] += w.cfg.JumpLaunchNudge
		jump.JumpRequested = false
		jump.JumpCooldown = jump.JumpCooldownTime
	}

	if !wasOnSurface {
		rb.Velocity[1] -= rb.GravityAccel
	}

	// Apex: upward motion spent, the jump becomes a fall.
	if jump.IsJumping && rb.Velocity.Y() < 0 {
		jump.IsJumping = false
		jump.IsFalling = true
	}
}
