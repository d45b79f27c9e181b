package dance

import (
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/math/f64"
)

// ObjectState is a copy of one cube as it should be drawn.
type ObjectState struct {
	Index     int
	Position  f64.Vec3
	RotationY float64
	Scale     float64
	Colour    colorful.Color
}

// Frame is a snapshot of the scene for the renderer.
type Frame struct {
	RuntimeMs  int64
	Generation uint64
	Objects    []ObjectState
	Camera     Camera
	Background colorful.Color
	Floor      colorful.Color
	FloorSize  float64
}

// NewFrame copies the current state of a scene.
func NewFrame(s *Scene, runtimeMs int64, generation uint64) *Frame {
	f := new(Frame)
	f.RuntimeMs = runtimeMs
	f.Generation = generation
	f.Camera = *s.Camera
	f.Background = s.Background
	f.Floor = s.Floor
	f.FloorSize = s.FloorSize

	f.Objects = make([]ObjectState, len(s.Objects))
	for i, o := range s.Objects {
		f.Objects[i] = ObjectState{
			Index:     o.Index,
			Position:  o.Position,
			RotationY: o.RotationY,
			Scale:     o.Scale,
			Colour:    o.Colour,
		}
	}
	return f
}
