package components

import (
	"fmt"

	"github.com/spruceb/marblez/internal/engine"
)

// Surface carries per-object contact metadata consumed only during
// collision resolution. Friction and bounciness default to the same values
// as RigidBody so objects without an explicit Surface behave consistently.
type Surface struct {
	engine.BaseComponent
	Friction    float64
	Bounciness  float64
	IsJumpable  bool
	IsRamp      bool
	RampAngle   float64 // radians
	SlideFactor float64
}

func NewSurface() *Surface {
	return &Surface{
		Friction:   DefaultGroundFriction,
		Bounciness: DefaultBounceCoefficient,
		IsJumpable: true,
	}
}

// NewRampSurface returns a surface that adds a slope-slide force along Z
// during floor contact.
func NewRampSurface(angle, slideFactor float64) *Surface {
	s := NewSurface()
	s.IsRamp = true
	s.RampAngle = angle
	s.SlideFactor = slideFactor
	return s
}

func (s *Surface) Validate() error {
	if s.Friction <= 0 || s.Friction > 1 {
		return fmt.Errorf("surface: friction must be in (0,1], got %g", s.Friction)
	}
	if s.Bounciness < 0 || s.Bounciness > 1 {
		return fmt.Errorf("surface: bounciness must be in [0,1], got %g", s.Bounciness)
	}
	if s.IsRamp && s.SlideFactor < 0 {
		return fmt.Errorf("surface: slide factor must be >= 0, got %g", s.SlideFactor)
	}
	return nil
}
