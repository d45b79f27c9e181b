package dance

import (
	"math"

	"github.com/matt-g-everett/cubedance/util"
)

// CameraControls applies user driven camera adjustments once per tick, after
// the choreography has moved the camera.
type CameraControls interface {
	Update(cam *Camera)
}

const (
	minZoom = 0.3
	maxZoom = 3.0
)

// DampedZoom eases the camera towards or away from its target. Each request
// moves the wanted zoom by a step; the applied zoom closes a fraction of the
// remaining gap every tick.
type DampedZoom struct {
	damping float64
	step    float64
	zoom    float64
	wanted  float64
}

// NewDampedZoom creates a DampedZoom at unit zoom.
func NewDampedZoom(damping, step float64) *DampedZoom {
	z := new(DampedZoom)
	z.damping = damping
	z.step = step
	z.zoom = 1
	z.wanted = 1
	return z
}

// In moves the camera closer.
func (z *DampedZoom) In() {
	z.wanted = math.Max(minZoom, z.wanted-z.step)
}

// Out moves the camera away.
func (z *DampedZoom) Out() {
	z.wanted = math.Min(maxZoom, z.wanted+z.step)
}

// Zoom is the factor currently applied.
func (z *DampedZoom) Zoom() float64 {
	return z.zoom
}

// Update implements CameraControls.
func (z *DampedZoom) Update(cam *Camera) {
	z.zoom += (z.wanted - z.zoom) * z.damping
	if z.zoom == 1 {
		return
	}
	offset := util.Sub(cam.Position, cam.Target)
	cam.Position = util.Add(cam.Target, util.Scale(offset, z.zoom))
}
