package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
)

const testDt = 0.016

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

// newTestMarble builds a controllable marble at the spawn point and
// registers it with the world.
func newTestMarble(t *testing.T, w *World) *engine.GameObject {
	t.Helper()
	cfg := w.Config()

	marble := engine.NewGameObject("marble")
	marble.Tags = []string{"marble"}
	marble.Transform.Position = mgl64.Vec3{0, cfg.MarbleRadius, 0}

	shape, err := components.NewSphereShape(cfg.MarbleRadius)
	if err != nil {
		t.Fatalf("NewSphereShape: %v", err)
	}
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

	if err := w.AddObject(marble); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := w.SetMarble(marble); err != nil {
		t.Fatalf("SetMarble: %v", err)
	}
	return marble
}

// newFreeBody builds a plain falling body with no jump state.
func newFreeBody(t *testing.T, w *World, pos mgl64.Vec3) (*engine.GameObject, *components.RigidBody) {
	t.Helper()
	obj := engine.NewGameObject("ball")
	obj.Transform.Position = pos
	rb := components.NewRigidBody()
	obj.AddComponent(rb)
	if err := w.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	return obj, rb
}

func marbleParts(t *testing.T, marble *engine.GameObject) (*components.RigidBody, *components.JumpState, *components.PlayerInput) {
	t.Helper()
	rb := engine.GetComponent[*components.RigidBody](marble)
	jump := engine.GetComponent[*components.JumpState](marble)
	input := engine.GetComponent[*components.PlayerInput](marble)
	if rb == nil || jump == nil || input == nil {
		t.Fatal("marble missing components")
	}
	return rb, jump, input
}

func TestGravityMonotonicity(t *testing.T) {
	w := newTestWorld(t)
	g := w.Config().GravityAccel
	_, rb := newFreeBody(t, w, mgl64.Vec3{0, 100, 0})

	prev := rb.Velocity.Y()
	for i := 1; i <= 20; i++ {
		w.Step(testDt)
		vy := rb.Velocity.Y()
		if math.Abs((prev-vy)-g) > 1e-12 {
			t.Fatalf("tick %d: expected velocity.y to drop by exactly %g, dropped %g", i, g, prev-vy)
		}
		if vy >= prev {
			t.Fatalf("tick %d: velocity.y must strictly decrease while falling", i)
		}
		prev = vy
	}
}

func TestPreviousPositionWrittenByIntegrator(t *testing.T) {
	w := newTestWorld(t)
	obj, rb := newFreeBody(t, w, mgl64.Vec3{1, 50, 2})
	rb.Velocity = mgl64.Vec3{0.5, 0, 0}

	before := obj.Transform.Position
	w.Step(testDt)

	if obj.Transform.PreviousPosition != before {
		t.Errorf("previousPosition = %v, want the position at tick start %v",
			obj.Transform.PreviousPosition, before)
	}
	if obj.Transform.Position == before {
		t.Error("position should have advanced")
	}
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := newTestWorld(t)
	obj := engine.NewGameObject("wall")
	obj.Transform.Position = mgl64.Vec3{3, 1, 0}
	rb := components.NewStaticBody()
	rb.Velocity = mgl64.Vec3{1, 1, 1} // must be ignored
	obj.AddComponent(rb)
	if err := w.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	for i := 0; i < 10; i++ {
		w.Step(testDt)
	}
	if obj.Transform.Position != (mgl64.Vec3{3, 1, 0}) {
		t.Errorf("static body moved to %v", obj.Transform.Position)
	}
	if rb.Velocity != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("static body velocity mutated to %v", rb.Velocity)
	}
}

func TestFrictionBound(t *testing.T) {
	w := newTestWorld(t)
	marble := newTestMarble(t, w)
	rb, _, _ := marbleParts(t, marble)
	rb.Velocity = mgl64.Vec3{1, 0, -0.5}
	rb.IsOnGround = true

	beforeX, beforeZ := math.Abs(rb.Velocity.X()), math.Abs(rb.Velocity.Z())
	w.Step(testDt)

	if math.Abs(rb.Velocity.X()) > beforeX {
		t.Errorf("|velocity.x| grew under ground friction: %g -> %g", beforeX, math.Abs(rb.Velocity.X()))
	}
	if math.Abs(rb.Velocity.Z()) > beforeZ {
		t.Errorf("|velocity.z| grew under ground friction: %g -> %g", beforeZ, math.Abs(rb.Velocity.Z()))
	}
}

func TestMovementIntentAcceleration(t *testing.T) {
	w := newTestWorld(t)
	marble := newTestMarble(t, w)
	rb, _, input := marbleParts(t, marble)
	input.Set(mgl64.Vec2{1, 0})

	w.Step(testDt)
	if rb.Velocity.X() <= 0 {
		t.Errorf("expected positive x velocity from movement intent, got %g", rb.Velocity.X())
	}
}

func TestAirControlReducesAcceleration(t *testing.T) {
	w := newTestWorld(t)
	cfg := w.Config()
	marble := newTestMarble(t, w)
	rb, jump, input := marbleParts(t, marble)

	// Airborne, well above the platform.
	marble.Transform.Position = mgl64.Vec3{0, 10, 0}
	jump.IsOnSurface = false
	jump.IsFalling = true
	input.Set(mgl64.Vec2{1, 0})

	w.Step(testDt)
	got := rb.Velocity.X()
	want := cfg.MoveAccel * cfg.AirControl * cfg.AirFriction
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("airborne x velocity = %g, want %g", got, want)
	}
}

func TestJumpLaunch(t *testing.T) {
	w := newTestWorld(t)
	marble := newTestMarble(t, w)
	rb, jump, _ := marbleParts(t, marble)
	jump.JumpRequested = true

	w.Step(testDt)

	if !jump.IsJumping {
		t.Error("expected isJumping after launch")
	}
	if jump.IsOnSurface {
		t.Error("expected isOnSurface cleared after launch")
	}
	if rb.Velocity.Y() != jump.JumpPower {
		t.Errorf("velocity.y = %g, want jumpPower %g", rb.Velocity.Y(), jump.JumpPower)
	}
	if jump.JumpRequested {
		t.Error("jump request should be cleared on launch")
	}
	if jump.JumpCooldown != jump.JumpCooldownTime {
		t.Errorf("cooldown = %g, want %g", jump.JumpCooldown, jump.JumpCooldownTime)
	}
}

func TestJumpCooldownBlocksRelaunch(t *testing.T) {
	w := newTestWorld(t)
	marble := newTestMarble(t, w)
	rb, jump, _ := marbleParts(t, marble)
	jump.JumpCooldown = jump.JumpCooldownTime
	jump.JumpRequested = true

	w.Step(testDt)

	if jump.IsJumping {
		t.Error("launch must not fire while the cooldown is running")
	}
	if rb.Velocity.Y() > 0 {
		t.Errorf("velocity.y = %g, want no upward launch", rb.Velocity.Y())
	}
	want := jump.JumpCooldownTime - testDt
	if math.Abs(jump.JumpCooldown-want) > 1e-12 {
		t.Errorf("cooldown = %g, want %g", jump.JumpCooldown, want)
	}
}

func TestCanJumpGate(t *testing.T) {
	w := newTestWorld(t)
	marble := newTestMarble(t, w)
	_, jump, _ := marbleParts(t, marble)
	jump.CanJump = false
	jump.JumpRequested = true

	w.Step(testDt)
	if jump.IsJumping {
		t.Error("launch must not fire with canJump false")
	}
}

func TestApexFlipsJumpingToFalling(t *testing.T) {
	w := newTestWorld(t)
	marble := newTestMarble(t, w)
	rb, jump, _ := marbleParts(t, marble)

	marble.Transform.Position = mgl64.Vec3{0, 10, 0}
	jump.IsOnSurface = false
	jump.IsJumping = true
	rb.Velocity = mgl64.Vec3{0, 0.01, 0} // about to run out of lift

	w.Step(testDt) // gravity flips vy negative inside the pass
	if jump.IsJumping {
		t.Error("expected isJumping cleared at apex")
	}
	if !jump.IsFalling {
		t.Error("expected isFalling set at apex")
	}
}
