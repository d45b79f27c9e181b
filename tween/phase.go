package tween

import (
	"errors"
	"fmt"
	"math"

	"github.com/matt-g-everett/cubedance/util"
)

// NoSuccessor marks a phase that goes inert when it completes.
const NoSuccessor = -1

// Values holds the interpolated fields of a phase, e.g. {y, rotationY, scale}.
type Values []float64

// Phase is one timed interpolation from From to To.
//
// Durations and delays are milliseconds on the clock passed to
// Timeline.Update. OnUpdate receives a buffer owned by the phase and must not
// retain it.
type Phase struct {
	Label         string
	Owner         int
	From          Values
	To            Values
	Duration      int64
	Delay         int64
	Easing        Easing
	OnUpdate      func(v Values)
	RepeatForever bool

	next       int
	generation uint64
	active     bool
	startMs    int64
	current    Values
}

// Validate checks the construction preconditions of a phase.
func (p *Phase) Validate() error {
	if p.Duration < 0 {
		return fmt.Errorf("phase %q: negative duration %d", p.Label, p.Duration)
	}
	if p.Delay < 0 {
		return fmt.Errorf("phase %q: negative delay %d", p.Label, p.Delay)
	}
	if len(p.From) != len(p.To) {
		return fmt.Errorf("phase %q: %d start values but %d end values", p.Label, len(p.From), len(p.To))
	}
	for i := range p.From {
		if !finite(p.From[i]) || !finite(p.To[i]) {
			return fmt.Errorf("phase %q: %w", p.Label, errNonFinite)
		}
	}
	return nil
}

var errNonFinite = errors.New("non-finite value")

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// apply writes the eased value at progress into the current buffer and
// reports it.
func (p *Phase) apply(progress float64) {
	e := p.Easing(progress)
	for i := range p.From {
		p.current[i] = util.Lerp(p.From[i], p.To[i], e)
	}
	if p.OnUpdate != nil {
		p.OnUpdate(p.current)
	}
}

// progress maps a clock value onto [0,1] for this phase.
func (p *Phase) progress(nowMs int64) float64 {
	if p.Duration == 0 {
		return 1
	}
	t := float64(nowMs-p.startMs) / float64(p.Duration)
	if t > 1 {
		return 1
	}
	return t
}
