package physics

import "fmt"

// Config holds the world constants the simulation consumes. Friction values
// are per-tick multiplicative decay factors; GravityAccel and JumpPower are
// velocity deltas per tick.
type Config struct {
	GravityAccel      float64
	GroundFriction    float64
	AirFriction       float64
	BounceCoefficient float64

	JumpPower        float64
	JumpCooldownTime float64

	MarbleRadius       float64
	PlatformHalfExtent float64

	RespawnYThreshold       float64
	GroundSnapEpsilon       float64
	BounceVelocityThreshold float64
	JumpLaunchNudge         float64

	MoveAccel  float64
	AirControl float64
}

// DefaultConfig returns the reference world constants.
func DefaultConfig() Config {
	return Config{
		GravityAccel:      0.02,
		GroundFriction:    0.95,
		AirFriction:       0.99,
		BounceCoefficient: 0.5,

		JumpPower:        0.35,
		JumpCooldownTime: 0.2,

		MarbleRadius:       0.5,
		PlatformHalfExtent: 15,

		RespawnYThreshold:       -20,
		GroundSnapEpsilon:       0.1,
		BounceVelocityThreshold: 0.05,
		JumpLaunchNudge:         0.05,

		MoveAccel:  0.005,
		AirControl: 0.3,
	}
}

// Validate rejects constants that would destabilize the tick loop.
func (c Config) Validate() error {
	if c.GravityAccel < 0 {
		return fmt.Errorf("config: gravity acceleration must be >= 0, got %g", c.GravityAccel)
	}
	if c.GroundFriction <= 0 || c.GroundFriction > 1 {
		return fmt.Errorf("config: ground friction must be in (0,1], got %g", c.GroundFriction)
	}
	if c.AirFriction <= 0 || c.AirFriction > 1 {
		return fmt.Errorf("config: air friction must be in (0,1], got %g", c.AirFriction)
	}
	if c.BounceCoefficient < 0 || c.BounceCoefficient > 1 {
		return fmt.Errorf("config: bounce coefficient must be in [0,1], got %g", c.BounceCoefficient)
	}
	if c.JumpPower < 0 {
		return fmt.Errorf("config: jump power must be >= 0, got %g", c.JumpPower)
	}
	if c.JumpCooldownTime < 0 {
		return fmt.Errorf("config: jump cooldown time must be >= 0, got %g", c.JumpCooldownTime)
	}
	if c.MarbleRadius <= 0 {
		return fmt.Errorf("config: marble radius must be positive, got %g", c.MarbleRadius)
	}
	if c.PlatformHalfExtent <= 0 {
		return fmt.Errorf("config: platform half extent must be positive, got %g", c.PlatformHalfExtent)
	}
	if c.GroundSnapEpsilon < 0 {
		return fmt.Errorf("config: ground snap epsilon must be >= 0, got %g", c.GroundSnapEpsilon)
	}
	if c.BounceVelocityThreshold < 0 {
		return fmt.Errorf("config: bounce velocity threshold must be >= 0, got %g", c.BounceVelocityThreshold)
	}
	if c.MoveAccel < 0 {
		return fmt.Errorf("config: move acceleration must be >= 0, got %g", c.MoveAccel)
	}
	if c.AirControl < 0 || c.AirControl > 1 {
		return fmt.Errorf("config: air control must be in [0,1], got %g", c.AirControl)
	}
	return nil
}
