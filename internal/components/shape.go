package components

import (
	"fmt"

	"github.com/spruceb/marblez/internal/engine"
)

// ShapeKind enumerates the closed set of collision primitives. The set is
// fixed; collision dispatch does an exhaustive match on kind pairs.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
	ShapeTorus
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeTorus:
		return "torus"
	}
	return "unknown"
}

// Shape is a collision primitive attached to a game object. A trigger shape
// is detected but never physically resolved.
type Shape struct {
	engine.BaseComponent
	Kind      ShapeKind
	IsTrigger bool

	// Sphere and torus
	Radius float64

	// Box extents
	Width  float64
	Height float64
	Depth  float64

	// Torus tube radius plus the derived hole/outer radii
	Tube        float64
	InnerRadius float64
	OuterRadius float64
}

func NewSphereShape(radius float64) (*Shape, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("shape: sphere radius must be positive, got %g", radius)
	}
	return &Shape{Kind: ShapeSphere, Radius: radius}, nil
}

func NewBoxShape(width, height, depth float64) (*Shape, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("shape: box extents must be positive, got %gx%gx%g", width, height, depth)
	}
	return &Shape{Kind: ShapeBox, Width: width, Height: height, Depth: depth}, nil
}

// NewTorusShape builds a torus from ring (major) radius and tube radius.
// The tube must fit inside the ring or the hole disappears.
func NewTorusShape(radius, tube float64) (*Shape, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("shape: torus radius must be positive, got %g", radius)
	}
	if tube <= 0 || tube >= radius {
		return nil, fmt.Errorf("shape: torus tube must be in (0, radius), got %g", tube)
	}
	return &Shape{
		Kind:        ShapeTorus,
		Radius:      radius,
		Tube:        tube,
		InnerRadius: radius - tube,
		OuterRadius: radius + tube,
	}, nil
}
