package wind

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultDirection is used until the first pointer input arrives.
var DefaultDirection = r3.Vec{Z: -0.4}

// DefaultTransition is how long, in simulated seconds, the direction takes
// to reach a new pointer target.
const DefaultTransition = 0.1

// Size is a screen size in whatever unit pointer coordinates use.
type Size struct {
	Width, Height float64
}

type request struct {
	target r3.Vec
	keepZ  bool
	snap   bool
}

// Steering is the wind direction. Writers (pointer handlers) may run on any
// goroutine; they only post to a single-slot mailbox, last writer wins. The
// simulation goroutine drains the mailbox in Advance and owns the rest.
type Steering struct {
	pending atomic.Pointer[request]

	dir      r3.Vec
	from, to r3.Vec
	elapsed  float64
	window   float64
	moving   bool
}

func NewSteering(initial r3.Vec, window float64) *Steering {
	if window < 0 {
		window = 0
	}
	return &Steering{dir: clampUnit(initial), window: window}
}

// PointerMove normalizes a pointer position to [-0.5, 0.5] on both axes, y
// pointing up, and eases the direction toward it. Positions off the screen
// are clamped to its edge. Z is kept. Calls with an empty screen are ignored.
func (s *Steering) PointerMove(x, y float64, screen Size) {
	if screen.Width <= 0 || screen.Height <= 0 {
		return
	}
	t := r3.Vec{
		X: clampHalf(x/screen.Width - 0.5),
		Y: clampHalf(-(y / screen.Height) + 0.5),
	}
	s.pending.Store(&request{target: t, keepZ: true})
}

// Ease moves the direction toward target over the transition window.
func (s *Steering) Ease(target r3.Vec) {
	s.pending.Store(&request{target: target})
}

// Set replaces the direction outright on the next Advance.
func (s *Steering) Set(target r3.Vec) {
	s.pending.Store(&request{target: target, snap: true})
}

// Advance applies any pending request and moves the interpolation forward
// by dt seconds. Only the simulation goroutine may call it.
func (s *Steering) Advance(dt float64) {
	if req := s.pending.Swap(nil); req != nil {
		target := req.target
		if req.keepZ {
			target.Z = s.dir.Z
		}
		target = clampUnit(target)

		if req.snap || s.window == 0 {
			s.dir = target
			s.moving = false
		} else {
			s.from, s.to = s.dir, target
			s.elapsed = 0
			s.moving = true
		}
	}

	if !s.moving || dt <= 0 {
		return
	}
	s.elapsed += dt
	f := s.elapsed / s.window
	if f >= 1 {
		s.dir = s.to
		s.moving = false
		return
	}
	s.dir = r3.Add(s.from, r3.Scale(f, r3.Sub(s.to, s.from)))
}

// Direction is the current wind direction. Simulation goroutine only.
func (s *Steering) Direction() r3.Vec { return s.dir }

// Settled reports whether no transition is in progress.
func (s *Steering) Settled() bool { return !s.moving && s.pending.Load() == nil }

func clampHalf(v float64) float64 {
	return math.Max(-0.5, math.Min(0.5, v))
}

func clampUnit(v r3.Vec) r3.Vec {
	if n := r3.Norm(v); n > 1 {
		return r3.Scale(1/n, v)
	}
	return v
}
