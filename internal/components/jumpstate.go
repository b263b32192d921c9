package components

import (
	"github.com/spruceb/marblez/internal/engine"
)

// DefaultJumpCooldownTime is the minimum interval between jump launches.
const DefaultJumpCooldownTime = 0.2

// JumpState tracks the jump lifecycle of a controllable object. The
// legal states form a cycle:
//
//	Grounded (IsOnSurface) -> Jumping -> Falling -> Grounded
//
// IsJumping and IsFalling are never both true; the transition pass, the
// integrator and the resolver jointly enforce that.
type JumpState struct {
	engine.BaseComponent
	JumpPower        float64
	IsOnSurface      bool
	IsJumping        bool
	IsFalling        bool
	JumpRequested    bool
	CanJump          bool
	JumpCooldown     float64
	JumpCooldownTime float64
}

// NewJumpState creates a jump state in the Grounded state.
func NewJumpState(jumpPower float64) *JumpState {
	return &JumpState{
		JumpPower:        jumpPower,
		IsOnSurface:      true,
		CanJump:          true,
		JumpCooldownTime: DefaultJumpCooldownTime,
	}
}

// Airborne reports whether the object is mid-jump or falling.
func (j *JumpState) Airborne() bool {
	return j.IsJumping || j.IsFalling
}

// ResetToGrounded forces the Grounded state, e.g. after a respawn.
func (j *JumpState) ResetToGrounded() {
	j.IsOnSurface = true
	j.IsJumping = false
	j.IsFalling = false
	j.JumpRequested = false
	j.JumpCooldown = 0
}
