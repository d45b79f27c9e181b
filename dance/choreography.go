package dance

import (
	"fmt"
	"log"
	"math"

	"github.com/matt-g-everett/cubedance/tween"
	"golang.org/x/image/math/f64"
)

// CameraOwner tags the orbit phase in the timeline.
const CameraOwner = -1

// Choreography sequences the cube phases and the camera orbit. Every
// Restart builds a fresh generation of phases on the shared Timeline.
type Choreography struct {
	scene    *Scene
	timeline *tween.Timeline
	config   Config

	rise  tween.Easing
	fall  tween.Easing
	orbit tween.Easing
}

// NewChoreography binds a choreography to a scene. The config must have
// passed Validate.
func NewChoreography(scene *Scene, timeline *tween.Timeline, config Config) (*Choreography, error) {
	c := new(Choreography)
	c.scene = scene
	c.timeline = timeline
	c.config = config

	var err error
	if c.rise, err = tween.EasingByName(config.Choreography.RiseEasing); err != nil {
		return nil, fmt.Errorf("rise: %w", err)
	}
	if c.fall, err = tween.EasingByName(config.Choreography.FallEasing); err != nil {
		return nil, fmt.Errorf("fall: %w", err)
	}
	if c.orbit, err = tween.EasingByName(config.Orbit.Easing); err != nil {
		return nil, fmt.Errorf("orbit: %w", err)
	}
	return c, nil
}

// Restart resets the scene and replaces whatever was running with a new
// generation started at nowMs. It returns the new generation.
func (c *Choreography) Restart(nowMs int64) (uint64, error) {
	c.scene.ResetObjects()
	c.scene.ResetCamera()

	gen := c.timeline.Reset()
	for _, o := range c.scene.Objects {
		if err := c.addCube(o, nowMs); err != nil {
			return gen, err
		}
	}
	if err := c.addOrbit(nowMs); err != nil {
		return gen, err
	}

	log.Printf("Choreography generation %d started at %dms with %d phases", gen, nowMs, c.timeline.Len())
	return gen, nil
}

func (c *Choreography) addCube(o *Object, nowMs int64) error {
	ch := c.config.Choreography
	ground := c.scene.GroundPose(o.Index)[1]

	update := func(v tween.Values) {
		o.Position[1] = v[0]
		o.RotationY = v[1]
		o.Scale = v[2]
	}

	rise, err := c.timeline.Add(tween.Phase{
		Label:    "rise",
		Owner:    o.Index,
		From:     tween.Values{ground, 0, 1},
		To:       tween.Values{ch.Peak, math.Pi, ch.PeakScale},
		Duration: ch.BaseDurationMs,
		Delay:    int64(o.Index) * ch.StaggerMs,
		Easing:   c.rise,
		OnUpdate: update,
	})
	if err != nil {
		return err
	}

	fall, err := c.timeline.Add(tween.Phase{
		Label:    "fall",
		Owner:    o.Index,
		From:     tween.Values{ch.Peak, math.Pi, ch.PeakScale},
		To:       tween.Values{ground, 2 * math.Pi, 1},
		Duration: ch.BaseDurationMs,
		Easing:   c.fall,
		OnUpdate: update,
	})
	if err != nil {
		return err
	}

	if err := c.timeline.Chain(rise, fall); err != nil {
		return err
	}
	if err := c.timeline.Chain(fall, rise); err != nil {
		return err
	}
	return c.timeline.Start(rise, nowMs)
}

func (c *Choreography) addOrbit(nowMs int64) error {
	o := c.config.Orbit
	cam := c.scene.Camera
	target := f64.Vec3(o.Target)

	idx, err := c.timeline.Add(tween.Phase{
		Label:         "orbit",
		Owner:         CameraOwner,
		From:          tween.Values{0},
		To:            tween.Values{2 * math.Pi},
		Duration:      o.DurationMs,
		Easing:        c.orbit,
		RepeatForever: true,
		OnUpdate: func(v tween.Values) {
			angle := v[0]
			cam.Position = f64.Vec3{
				math.Cos(angle) * o.Radius,
				o.Height + math.Sin(angle*2)*o.Bob,
				math.Sin(angle) * o.Radius,
			}
			cam.LookAt(target)
		},
	})
	if err != nil {
		return err
	}
	return c.timeline.Start(idx, nowMs)
}
