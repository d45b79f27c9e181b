package tween

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Timeline is the arena of phases belonging to one choreography run.
// Successors are arena indices, so phases may chain into cycles.
//
// Reset starts a new generation. Phases added before a Reset never run
// again, even if something still holds their index.
type Timeline struct {
	phases     []*Phase
	generation uint64
	nowMs      int64
}

// Status describes a phase at the last update.
type Status struct {
	Label   string
	Owner   int
	Active  bool
	StartMs int64
	Next    int
}

// NewTimeline creates an empty Timeline.
func NewTimeline() *Timeline {
	t := new(Timeline)
	t.phases = make([]*Phase, 0, 16)
	return t
}

// Generation returns the id of the current run.
func (t *Timeline) Generation() uint64 {
	return t.generation
}

// Now returns the clock value of the last Update.
func (t *Timeline) Now() int64 {
	return t.nowMs
}

// Len returns the number of phases in the current run.
func (t *Timeline) Len() int {
	return len(t.phases)
}

// Reset drops every phase and bumps the generation.
func (t *Timeline) Reset() uint64 {
	t.generation++
	t.phases = t.phases[:0]
	return t.generation
}

// Add copies p into the arena and returns its index. The phase is unchained
// and inactive until Start.
func (t *Timeline) Add(p Phase) (int, error) {
	if err := p.Validate(); err != nil {
		return NoSuccessor, err
	}
	if p.Easing == nil {
		p.Easing = ease.Linear
	}
	p.From = append(Values(nil), p.From...)
	p.To = append(Values(nil), p.To...)
	p.current = make(Values, len(p.From))
	p.next = NoSuccessor
	p.generation = t.generation
	p.active = false

	t.phases = append(t.phases, &p)
	return len(t.phases) - 1, nil
}

// Chain makes to start automatically when from completes.
func (t *Timeline) Chain(from, to int) error {
	if err := t.check(from); err != nil {
		return err
	}
	if err := t.check(to); err != nil {
		return err
	}
	t.phases[from].next = to
	return nil
}

// Start schedules the phase to begin interpolating Delay ms after nowMs.
func (t *Timeline) Start(idx int, nowMs int64) error {
	if err := t.check(idx); err != nil {
		return err
	}
	p := t.phases[idx]
	t.activate(p, nowMs+p.Delay)
	return nil
}

func (t *Timeline) check(idx int) error {
	if idx < 0 || idx >= len(t.phases) {
		return fmt.Errorf("phase index %d out of range [0,%d)", idx, len(t.phases))
	}
	return nil
}

func (t *Timeline) activate(p *Phase, startMs int64) {
	p.active = true
	p.startMs = startMs
}

// Update advances every active phase to nowMs. It must be called once per
// frame with a non-decreasing clock.
func (t *Timeline) Update(nowMs int64) {
	t.nowMs = nowMs

	// Successors started during this pass are advanced by their predecessor,
	// not again by the outer loop.
	running := make([]int, 0, len(t.phases))
	for i, p := range t.phases {
		if p.active {
			running = append(running, i)
		}
	}

	for _, idx := range running {
		t.advance(idx, nowMs)
	}
}

// advance runs one phase and whatever it chains into until something is
// still in flight at nowMs.
func (t *Timeline) advance(idx int, nowMs int64) {
	// Counts back-to-back zero-length phases so an instant cycle cannot spin.
	instant := 0
	for instant <= len(t.phases) {
		p := t.phases[idx]
		if !p.active || p.generation != t.generation {
			return
		}
		if nowMs < p.startMs {
			return
		}

		if p.RepeatForever && p.Duration > 0 {
			if laps := (nowMs - p.startMs) / p.Duration; laps > 0 {
				p.startMs += laps * p.Duration
			}
			p.apply(p.progress(nowMs))
			return
		}

		progress := p.progress(nowMs)
		p.apply(progress)
		if progress < 1 || p.RepeatForever {
			return
		}

		if p.Duration == 0 {
			instant++
		} else {
			instant = 0
		}

		end := p.startMs + p.Duration
		p.active = false
		if p.next == NoSuccessor {
			return
		}

		// Chained starts happen at the nominal end so cycles never drift.
		// The successor's own delay only applies to an explicit Start.
		t.activate(t.phases[p.next], end)
		idx = p.next
	}
}

// Active counts the running phases of one owner.
func (t *Timeline) Active(owner int) int {
	n := 0
	for _, p := range t.phases {
		if p.active && p.Owner == owner && p.generation == t.generation {
			n++
		}
	}
	return n
}

// Status reports the state of a phase.
func (t *Timeline) Status(idx int) (Status, error) {
	if err := t.check(idx); err != nil {
		return Status{}, err
	}
	p := t.phases[idx]
	return Status{
		Label:   p.Label,
		Owner:   p.Owner,
		Active:  p.active,
		StartMs: p.startMs,
		Next:    p.next,
	}, nil
}

// ActivePhase returns the index of the running phase of an owner, or
// NoSuccessor when it has none.
func (t *Timeline) ActivePhase(owner int) int {
	for i, p := range t.phases {
		if p.active && p.Owner == owner {
			return i
		}
	}
	return NoSuccessor
}
