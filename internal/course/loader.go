package course

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
	"github.com/spruceb/marblez/internal/physics"
)

// fileCourse is the TOML shape of a course file. Config fields are pointers
// so absent keys fall back to the defaults instead of zeroing them.
type fileCourse struct {
	Config  fileConfig   `toml:"config"`
	Marble  fileMarble   `toml:"marble"`
	Objects []fileObject `toml:"objects"`
}

type fileConfig struct {
	GravityAccel            *float64 `toml:"gravity_accel"`
	GroundFriction          *float64 `toml:"ground_friction"`
	AirFriction             *float64 `toml:"air_friction"`
	BounceCoefficient       *float64 `toml:"bounce_coefficient"`
	JumpPower               *float64 `toml:"jump_power"`
	JumpCooldownTime        *float64 `toml:"jump_cooldown_time"`
	MarbleRadius            *float64 `toml:"marble_radius"`
	PlatformHalfExtent      *float64 `toml:"platform_half_extent"`
	RespawnYThreshold       *float64 `toml:"respawn_y_threshold"`
	GroundSnapEpsilon       *float64 `toml:"ground_snap_epsilon"`
	BounceVelocityThreshold *float64 `toml:"bounce_velocity_threshold"`
	JumpLaunchNudge         *float64 `toml:"jump_launch_nudge"`
	MoveAccel               *float64 `toml:"move_accel"`
	AirControl              *float64 `toml:"air_control"`
}

type fileMarble struct {
	Position []float64 `toml:"position"`
}

type fileObject struct {
	Name     string       `toml:"name"`
	Kind     string       `toml:"kind"`
	Position []float64    `toml:"position"`
	Rotation []float64    `toml:"rotation"`
	Size     []float64    `toml:"size"`
	Radius   float64      `toml:"radius"`
	Tube     float64      `toml:"tube"`
	Trigger  bool         `toml:"trigger"`
	Surface  *fileSurface `toml:"surface"`
}

type fileSurface struct {
	Friction    *float64 `toml:"friction"`
	Bounciness  *float64 `toml:"bounciness"`
	Jumpable    *bool    `toml:"jumpable"`
	Ramp        bool     `toml:"ramp"`
	RampAngle   float64  `toml:"ramp_angle"`
	SlideFactor float64  `toml:"slide_factor"`
}

// LoadFile reads a TOML course file and builds the world it describes.
func LoadFile(path string) (*physics.World, error) {
	var fc fileCourse
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}
	return buildCourse(fc)
}

// Parse builds a world from TOML course data.
func Parse(data string) (*physics.World, error) {
	var fc fileCourse
	if _, err := toml.Decode(data, &fc); err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}
	return buildCourse(fc)
}

func buildCourse(fc fileCourse) (*physics.World, error) {
	cfg := fc.Config.apply(physics.DefaultConfig())

	w, err := physics.NewWorld(cfg)
	if err != nil {
		return nil, err
	}

	marble, err := NewMarble(cfg)
	if err != nil {
		return nil, err
	}
	if pos, err := vec3(fc.Marble.Position); err == nil && len(fc.Marble.Position) > 0 {
		marble.Transform.Position = pos
		marble.Transform.PreviousPosition = pos
	} else if err != nil {
		return nil, fmt.Errorf("course: marble position: %w", err)
	}
	if err := w.AddObject(marble); err != nil {
		return nil, err
	}
	if err := w.SetMarble(marble); err != nil {
		return nil, err
	}

	for i, fo := range fc.Objects {
		obj, err := buildObject(fo)
		if err != nil {
			return nil, fmt.Errorf("course: object %d (%q): %w", i, fo.Name, err)
		}
		if err := w.AddObject(obj); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func buildObject(fo fileObject) (*engine.GameObject, error) {
	var shape *components.Shape
	var err error
	switch fo.Kind {
	case "box":
		size, verr := vec3(fo.Size)
		if verr != nil {
			return nil, verr
		}
		shape, err = components.NewBoxShape(size.X(), size.Y(), size.Z())
	case "sphere":
		shape, err = components.NewSphereShape(fo.Radius)
	case "torus":
		shape, err = components.NewTorusShape(fo.Radius, fo.Tube)
	default:
		return nil, fmt.Errorf("unknown shape kind %q", fo.Kind)
	}
	if err != nil {
		return nil, err
	}
	shape.IsTrigger = fo.Trigger

	obj := engine.NewGameObject(fo.Name)
	if len(fo.Position) > 0 {
		if obj.Transform.Position, err = vec3(fo.Position); err != nil {
			return nil, err
		}
	}
	if len(fo.Rotation) > 0 {
		if obj.Transform.Rotation, err = vec3(fo.Rotation); err != nil {
			return nil, err
		}
	}
	obj.AddComponent(shape)

	if fo.Trigger {
		obj.AddComponent(&Checkpoint{TargetTag: TagMarble})
		return obj, nil
	}

	obj.AddComponent(components.NewStaticBody())

	surface := components.NewSurface()
	if fs := fo.Surface; fs != nil {
		if fs.Friction != nil {
			surface.Friction = *fs.Friction
		}
		if fs.Bounciness != nil {
			surface.Bounciness = *fs.Bounciness
		}
		if fs.Jumpable != nil {
			surface.IsJumpable = *fs.Jumpable
		}
		surface.IsRamp = fs.Ramp
		surface.RampAngle = fs.RampAngle
		surface.SlideFactor = fs.SlideFactor
	}
	obj.AddComponent(surface)
	return obj, nil
}

func (fc fileConfig) apply(cfg physics.Config) physics.Config {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.GravityAccel, fc.GravityAccel)
	set(&cfg.GroundFriction, fc.GroundFriction)
	set(&cfg.AirFriction, fc.AirFriction)
	set(&cfg.BounceCoefficient, fc.BounceCoefficient)
	set(&cfg.JumpPower, fc.JumpPower)
	set(&cfg.JumpCooldownTime, fc.JumpCooldownTime)
	set(&cfg.MarbleRadius, fc.MarbleRadius)
	set(&cfg.PlatformHalfExtent, fc.PlatformHalfExtent)
	set(&cfg.RespawnYThreshold, fc.RespawnYThreshold)
	set(&cfg.GroundSnapEpsilon, fc.GroundSnapEpsilon)
	set(&cfg.BounceVelocityThreshold, fc.BounceVelocityThreshold)
	set(&cfg.JumpLaunchNudge, fc.JumpLaunchNudge)
	set(&cfg.MoveAccel, fc.MoveAccel)
	set(&cfg.AirControl, fc.AirControl)
	return cfg
}

func vec3(v []float64) (mgl64.Vec3, error) {
	if len(v) == 0 {
		return mgl64.Vec3{}, nil
	}
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
