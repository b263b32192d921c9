package ws

import (
	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
	"github.com/spruceb/marblez/internal/physics"
)

// WelcomeMessage is sent once per connection.
type WelcomeMessage struct {
	Type   string `json:"type"`
	TickHz int    `json:"tickHz"`
}

// InputMessage carries the client's movement intent and jump request for
// the next tick. Direction components are expected in [-1, 1].
type InputMessage struct {
	Type string  `json:"type"`
	DirX float64 `json:"dirX"`
	DirZ float64 `json:"dirZ"`
	Jump bool    `json:"jump"`
}

// ObjectSnapshot is the per-object slice of a state message: everything the
// presentation side needs for mesh placement.
type ObjectSnapshot struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	RotX     float64 `json:"rotX"`
	RotY     float64 `json:"rotY"`
	RotZ     float64 `json:"rotZ"`
	Grounded bool    `json:"grounded,omitempty"`
}

// StateMessage is broadcast after every tick.
type StateMessage struct {
	Type    string           `json:"type"`
	Tick    uint64           `json:"tick"`
	Objects []ObjectSnapshot `json:"objects"`
}

// Snapshot serializes the world's shaped objects for broadcast.
func Snapshot(w *physics.World) StateMessage {
	msg := StateMessage{Type: "state", Tick: w.Tick()}
	for _, obj := range w.Objects() {
		shape := engine.GetComponent[*components.Shape](obj)
		if shape == nil {
			continue
		}
		snap := ObjectSnapshot{
			Name: obj.Name,
			Kind: shape.Kind.String(),
			X:    obj.Transform.Position.X(),
			Y:    obj.Transform.Position.Y(),
			Z:    obj.Transform.Position.Z(),
			RotX: obj.Transform.Rotation.X(),
			RotY: obj.Transform.Rotation.Y(),
			RotZ: obj.Transform.Rotation.Z(),
		}
		if rb := engine.GetComponent[*components.RigidBody](obj); rb != nil {
			snap.Grounded = rb.IsOnGround
		}
		msg.Objects = append(msg.Objects, snap)
	}
	return msg
}
