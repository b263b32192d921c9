package components

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/engine"
)

// Default physical parameters. Surface mirrors these so an object without
// an explicit Surface behaves the same during contact resolution.
const (
	DefaultGravityAccel      = 0.02
	DefaultGroundFriction    = 0.95
	DefaultAirFriction       = 0.99
	DefaultBounceCoefficient = 0.5
)

// RigidBody holds per-object motion state. Friction values are
// multiplicative per-tick decay factors in (0,1]; BounceCoefficient is
// restitution in [0,1]. A static body is never moved by the integrator or
// the resolver, but still acts as a collision target.
type RigidBody struct {
	engine.BaseComponent
	Velocity          mgl64.Vec3
	Mass              float64
	GravityAccel      float64
	GroundFriction    float64
	AirFriction       float64
	BounceCoefficient float64
	IsOnGround        bool
	IsStatic          bool
}

func NewRigidBody() *RigidBody {
	return &RigidBody{
		Mass:              1.0,
		GravityAccel:      DefaultGravityAccel,
		GroundFriction:    DefaultGroundFriction,
		AirFriction:       DefaultAirFriction,
		BounceCoefficient: DefaultBounceCoefficient,
	}
}

// NewStaticBody returns a body that participates in collisions but is never
// integrated.
func NewStaticBody() *RigidBody {
	rb := NewRigidBody()
	rb.IsStatic = true
	return rb
}

// Validate rejects parameter combinations that would poison the tick loop
// with NaN/Inf instead of letting them propagate.
func (r *RigidBody) Validate() error {
	if r.Mass <= 0 {
		return fmt.Errorf("rigidbody: mass must be positive, got %g", r.Mass)
	}
	if r.GravityAccel < 0 {
		return fmt.Errorf("rigidbody: gravity acceleration must be >= 0, got %g", r.GravityAccel)
	}
	if r.GroundFriction <= 0 || r.GroundFriction > 1 {
		return fmt.Errorf("rigidbody: ground friction must be in (0,1], got %g", r.GroundFriction)
	}
	if r.AirFriction <= 0 || r.AirFriction > 1 {
		return fmt.Errorf("rigidbody: air friction must be in (0,1], got %g", r.AirFriction)
	}
	if r.BounceCoefficient < 0 || r.BounceCoefficient > 1 {
		return fmt.Errorf("rigidbody: bounce coefficient must be in [0,1], got %g", r.BounceCoefficient)
	}
	return nil
}
