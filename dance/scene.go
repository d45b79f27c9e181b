package dance

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cubedance/util"
	"golang.org/x/image/math/f64"
)

// Object is the visual state of one cube.
type Object struct {
	Index     int
	Position  f64.Vec3
	RotationY float64
	Scale     float64
	Colour    colorful.Color
}

// Camera is a perspective camera aimed at a target point.
type Camera struct {
	Position f64.Vec3
	Target   f64.Vec3
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

// LookAt aims the camera at target.
func (c *Camera) LookAt(target f64.Vec3) {
	c.Target = target
}

// Distance is how far the camera sits from its target.
func (c *Camera) Distance() float64 {
	return util.Length(util.Sub(c.Position, c.Target))
}

// Scene holds the cubes and camera the choreography animates. It is owned by
// the composition root and shared by reference.
type Scene struct {
	Objects    []*Object
	Camera     *Camera
	Background colorful.Color
	Floor      colorful.Color
	FloorSize  float64

	config SceneConfig
}

// NewScene builds the objects described by config in their ground pose.
// Colours are expected to have passed Config.Validate.
func NewScene(config SceneConfig) *Scene {
	s := new(Scene)
	s.config = config
	s.Background, _ = colorful.Hex(config.Background)
	s.Floor, _ = colorful.Hex(config.Floor)
	s.FloorSize = config.FloorSize

	s.Objects = make([]*Object, config.Cubes)
	for i := range s.Objects {
		colour, _ := colorful.Hex(config.Palette[i%len(config.Palette)])
		s.Objects[i] = &Object{Index: i, Colour: colour}
	}

	s.Camera = &Camera{
		FOV:    config.FOV,
		Aspect: 1,
		Near:   config.Near,
		Far:    config.Far,
	}

	s.ResetObjects()
	s.ResetCamera()
	return s
}

// GroundPose is where cube i rests: spread evenly along x, centred on the
// origin.
func (s *Scene) GroundPose(i int) f64.Vec3 {
	n := float64(len(s.Objects))
	x := -(n-1)*s.config.Spacing/2 + float64(i)*s.config.Spacing
	return f64.Vec3{x, s.config.Ground, 0}
}

// ResetObjects puts every cube back at its ground pose with no rotation and
// unit scale.
func (s *Scene) ResetObjects() {
	for i, o := range s.Objects {
		o.Position = s.GroundPose(i)
		o.RotationY = 0
		o.Scale = 1
	}
}

// ResetCamera restores the initial camera placement.
func (s *Scene) ResetCamera() {
	s.Camera.Position = f64.Vec3(s.config.Camera)
	s.Camera.LookAt(f64.Vec3(s.config.LookAt))
}
