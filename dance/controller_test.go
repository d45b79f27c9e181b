package dance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func newTestController(t *testing.T, startMs int64, controls ...CameraControls) *Controller {
	t.Helper()
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	c, err := NewController(NewScene(config.Scene), config, startMs, controls...)
	require.NoError(t, err)
	return c
}

func assertCanonicalPose(t *testing.T, c *Controller) {
	t.Helper()
	s := c.Scene()
	for i, o := range s.Objects {
		assert.Equal(t, f64.Vec3{-4 + float64(i)*2, 0.5, 0}, o.Position, "cube %d", i)
		assert.Equal(t, 0.0, o.RotationY, "cube %d", i)
		assert.Equal(t, 1.0, o.Scale, "cube %d", i)
	}
	assert.Equal(t, f64.Vec3{0, 5, 10}, s.Camera.Position)
	assert.Equal(t, f64.Vec3{0, 1, 0}, s.Camera.Target)
}

func TestRestartResetsCanonicalPose(t *testing.T) {
	c := newTestController(t, 0)
	assertCanonicalPose(t, c)

	for now := int64(0); now <= 1234; now += 16 {
		c.CalculateFrame(now)
	}
	require.NotEqual(t, 0.5, c.Scene().Objects[0].Position[1])

	c.RestartChoreography()
	assertCanonicalPose(t, c)
}

func TestRestartIsIdempotent(t *testing.T) {
	once := newTestController(t, 0)
	twice := newTestController(t, 0)
	for now := int64(0); now <= 700; now += 10 {
		once.CalculateFrame(now)
		twice.CalculateFrame(now)
	}

	once.RestartChoreography()
	twice.RestartChoreography()
	twice.RestartChoreography()
	assertCanonicalPose(t, twice)
	assert.Equal(t, once.Generation()+1, twice.Generation())

	for _, now := range []int64{701, 950, 2000, 9000} {
		a := once.CalculateFrame(now)
		b := twice.CalculateFrame(now)
		assert.Equal(t, a.Objects, b.Objects, "at %d", now)
		assert.Equal(t, a.Camera, b.Camera, "at %d", now)
	}
}

func TestExactlyOnePhasePerCube(t *testing.T) {
	c := newTestController(t, 0)
	tl := c.Timeline()
	n := len(c.Scene().Objects)

	check := func(now int64) {
		for i := 0; i < n; i++ {
			require.Equal(t, 1, tl.Active(i), "cube %d at %d", i, now)
		}
		require.Equal(t, 1, tl.Active(CameraOwner), "camera at %d", now)
		require.Equal(t, 2*n+1, tl.Len())
	}

	for now := int64(1); now < 20000; now += 13 {
		c.CalculateFrame(now)
		check(now)
		if now%1000 < 13 {
			c.RestartChoreography()
			check(now)
		}
	}
}

func TestStaggeredRiseTiming(t *testing.T) {
	c := newTestController(t, 0)
	tl := c.Timeline()
	const base, stagger = 900, 150

	c.CalculateFrame(0)
	for i := range c.Scene().Objects {
		idx := tl.ActivePhase(i)
		st, err := tl.Status(idx)
		require.NoError(t, err)
		assert.Equal(t, "rise", st.Label)
		assert.Equal(t, int64(i*stagger), st.StartMs)
	}

	for i := range c.Scene().Objects {
		c.CalculateFrame(int64(i*stagger + base))
		st, err := tl.Status(tl.ActivePhase(i))
		require.NoError(t, err)
		assert.Equal(t, "fall", st.Label, "cube %d", i)
		assert.Equal(t, int64(i*stagger+base), st.StartMs, "cube %d", i)
	}
}

func TestWaveScenario(t *testing.T) {
	c := newTestController(t, 0)
	for now := int64(0); now <= 600; now += 20 {
		c.CalculateFrame(now)
	}

	objects := c.Scene().Objects
	for i := 0; i < 4; i++ {
		assert.Greater(t, objects[i].Position[1], 0.5, "cube %d should be mid-rise", i)
		assert.Greater(t, objects[i].RotationY, 0.0, "cube %d", i)
	}
	assert.InDelta(t, 0.5, objects[4].Position[1], 1e-9)
	assert.InDelta(t, 0.0, objects[4].RotationY, 1e-9)

	st, err := c.Timeline().Status(c.Timeline().ActivePhase(4))
	require.NoError(t, err)
	assert.Equal(t, int64(600), st.StartMs)
}

func TestCyclesKeepBaseDuration(t *testing.T) {
	c := newTestController(t, 0)
	tl := c.Timeline()
	for now := int64(0); now < 120000; now += 17 {
		c.CalculateFrame(now)
		for i := range c.Scene().Objects {
			st, err := tl.Status(tl.ActivePhase(i))
			require.NoError(t, err)
			require.Zero(t, (st.StartMs-int64(i*150))%900, "cube %d at %d", i, now)
		}
	}
}

func TestCameraStaysOnOrbit(t *testing.T) {
	c := newTestController(t, 0)
	for now := int64(0); now < 30000; now += 33 {
		f := c.CalculateFrame(now)
		p := f.Camera.Position
		require.InDelta(t, 100.0, p[0]*p[0]+p[2]*p[2], 1e-9, "at %d", now)
		require.Equal(t, f64.Vec3{0, 1, 0}, f.Camera.Target)
		require.LessOrEqual(t, math.Abs(p[1]-5), 1.5+1e-9)
	}
}

func TestCameraOrbitIsPeriodic(t *testing.T) {
	c := newTestController(t, 0)
	var first []f64.Vec3
	for now := int64(0); now < 8000; now += 250 {
		first = append(first, c.CalculateFrame(now).Camera.Position)
	}
	for lap := int64(1); lap <= 3; lap++ {
		for i, now := 0, lap*8000; now < (lap+1)*8000; i, now = i+1, now+250 {
			p := c.CalculateFrame(now).Camera.Position
			for k := 0; k < 3; k++ {
				assert.InDelta(t, first[i][k], p[k], 1e-9)
			}
		}
	}
}

func TestRestartSupersedesOldRun(t *testing.T) {
	restarted := newTestController(t, 0)
	for now := int64(0); now <= 450; now += 15 {
		restarted.CalculateFrame(now)
	}
	restarted.RestartChoreography()

	fresh := newTestController(t, 450)
	for _, now := range []int64{450, 451, 800, 1700, 5000} {
		a := restarted.CalculateFrame(now)
		b := fresh.CalculateFrame(now)
		assert.Equal(t, b.Objects, a.Objects, "at %d", now)
		assert.Equal(t, b.Camera, a.Camera, "at %d", now)
	}
}

func TestFrameIsASnapshot(t *testing.T) {
	c := newTestController(t, 0)
	f := c.CalculateFrame(300)
	y := f.Objects[0].Position[1]

	c.CalculateFrame(500)
	assert.Equal(t, y, f.Objects[0].Position[1])
	assert.Equal(t, int64(300), f.RuntimeMs)
	assert.Equal(t, c.Generation(), f.Generation)
}

func TestDampedZoomEasesTowardsRequest(t *testing.T) {
	zoom := NewDampedZoom(0.05, 0.1)
	c := newTestController(t, 0, zoom)

	f := c.CalculateFrame(0)
	assert.InDelta(t, 10.0, math.Hypot(f.Camera.Position[0], f.Camera.Position[2]), 1e-9)

	zoom.In()
	prev := zoom.Zoom()
	for now := int64(16); now < 3000; now += 16 {
		c.CalculateFrame(now)
		require.LessOrEqual(t, zoom.Zoom(), prev)
		prev = zoom.Zoom()
	}
	assert.InDelta(t, 0.9, zoom.Zoom(), 1e-3)

	f = c.CalculateFrame(3000)
	assert.InDelta(t, 10*zoom.Zoom(), math.Hypot(f.Camera.Position[0], f.Camera.Position[2]), 1e-9)
}

func TestDampedZoomIsClamped(t *testing.T) {
	zoom := NewDampedZoom(1, 1)
	for i := 0; i < 10; i++ {
		zoom.In()
	}
	zoom.Update(&Camera{})
	assert.InDelta(t, minZoom, zoom.Zoom(), 1e-9)

	for i := 0; i < 10; i++ {
		zoom.Out()
	}
	zoom.Update(&Camera{})
	assert.InDelta(t, maxZoom, zoom.Zoom(), 1e-9)
}
