package components

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/engine"
)

// PlayerInput is the per-tick movement-intent contract: the external driver
// writes it before a tick begins, the integrator consumes it. Direction is
// already camera-rotated and unit length when nonzero.
type PlayerInput struct {
	engine.BaseComponent
	Direction  mgl64.Vec2 // X and Z movement intent
	Speed      float64    // acceleration per tick at full intent
	AirControl float64    // fraction of Speed available while airborne
}

func NewPlayerInput(speed, airControl float64) *PlayerInput {
	return &PlayerInput{
		Speed:      speed,
		AirControl: airControl,
	}
}

// Set replaces the current movement intent, normalizing oversized input.
func (p *PlayerInput) Set(dir mgl64.Vec2) {
	if l := dir.Len(); l > 1 {
		dir = dir.Mul(1 / l)
	}
	p.Direction = dir
}

// Clear zeroes the movement intent.
func (p *PlayerInput) Clear() {
	p.Direction = mgl64.Vec2{}
}
