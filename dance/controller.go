package dance

import (
	"log"

	"github.com/matt-g-everett/cubedance/tween"
)

var _ Animation = (*Controller)(nil)

// Controller drives the choreography one frame at a time. All calls are
// expected from a single goroutine.
type Controller struct {
	scene        *Scene
	timeline     *tween.Timeline
	choreography *Choreography
	controls     []CameraControls
	runtimeMs    int64
	generation   uint64
}

// NewController creates a Controller for scene and starts the first
// choreography at runtimeMs.
func NewController(scene *Scene, config Config, runtimeMs int64, controls ...CameraControls) (*Controller, error) {
	c := new(Controller)
	c.scene = scene
	c.timeline = tween.NewTimeline()
	c.controls = controls
	c.runtimeMs = runtimeMs

	var err error
	c.choreography, err = NewChoreography(scene, c.timeline, config)
	if err != nil {
		return nil, err
	}

	if err := c.restart(); err != nil {
		return nil, err
	}
	return c, nil
}

// CalculateFrame advances every phase to runtimeMs, lets the camera controls
// adjust the view and returns what should be drawn.
func (c *Controller) CalculateFrame(runtimeMs int64) *Frame {
	c.runtimeMs = runtimeMs
	c.timeline.Update(runtimeMs)
	for _, ctl := range c.controls {
		ctl.Update(c.scene.Camera)
	}
	return NewFrame(c.scene, runtimeMs, c.generation)
}

// RestartChoreography resets the scene and starts a new run at the last
// frame time. The previous run stops affecting the scene immediately.
func (c *Controller) RestartChoreography() {
	if err := c.restart(); err != nil {
		// Unreachable with a validated config.
		log.Printf("Restart failed: %v", err)
	}
}

func (c *Controller) restart() error {
	gen, err := c.choreography.Restart(c.runtimeMs)
	if err != nil {
		return err
	}
	c.generation = gen
	return nil
}

// Generation returns the id of the running choreography.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Timeline exposes the phases of the running choreography.
func (c *Controller) Timeline() *tween.Timeline {
	return c.timeline
}

// Scene returns the animated scene.
func (c *Controller) Scene() *Scene {
	return c.scene
}
