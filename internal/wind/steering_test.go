package wind

import (
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func TestSteeringDefault(t *testing.T) {
	s := NewSteering(DefaultDirection, DefaultTransition)
	s.Advance(1.0 / 60)
	if got := s.Direction(); got != DefaultDirection {
		t.Errorf("direction without input = %v, want %v", got, DefaultDirection)
	}
}

func TestSteeringPointerMove(t *testing.T) {
	s := NewSteering(DefaultDirection, 0.1)

	// right edge, top edge
	s.PointerMove(800, 0, Size{Width: 800, Height: 600})
	want := r3.Vec{X: 0.5, Y: 0.5, Z: -0.4}

	s.Advance(0.05)
	mid := s.Direction()
	if !near(mid, r3.Vec{X: 0.25, Y: 0.25, Z: -0.4}, 1e-9) {
		t.Errorf("halfway direction = %v", mid)
	}

	s.Advance(0.05)
	if got := s.Direction(); !near(got, want, 1e-9) {
		t.Errorf("settled direction = %v, want %v", got, want)
	}
	if !s.Settled() {
		t.Error("expected steering to settle after the transition window")
	}

	s.Advance(1)
	if got := s.Direction(); !near(got, want, 1e-9) {
		t.Errorf("direction drifted without input: %v", got)
	}
}

func TestSteeringPointerNormalization(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		screen Size
		want   r3.Vec
	}{
		{"centre", 400, 300, Size{800, 600}, r3.Vec{X: 0, Y: 0}},
		{"top left", 0, 0, Size{800, 600}, r3.Vec{X: -0.5, Y: 0.5}},
		{"bottom right", 800, 600, Size{800, 600}, r3.Vec{X: 0.5, Y: -0.5}},
		{"right of screen", 1600, 300, Size{800, 600}, r3.Vec{X: 0.5, Y: 0}},
		{"above and left", -200, -900, Size{800, 600}, r3.Vec{X: -0.5, Y: 0.5}},
		{"below screen", 400, 1e6, Size{800, 600}, r3.Vec{X: 0, Y: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSteering(r3.Vec{}, 0)
			s.PointerMove(tt.x, tt.y, tt.screen)
			s.Advance(1.0 / 60)
			if got := s.Direction(); !near(got, tt.want, 1e-12) {
				t.Errorf("direction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSteeringIgnoresEmptyScreen(t *testing.T) {
	s := NewSteering(DefaultDirection, 0)
	s.PointerMove(10, 10, Size{})
	s.Advance(1)
	if got := s.Direction(); got != DefaultDirection {
		t.Errorf("direction changed on empty screen: %v", got)
	}
}

func TestSteeringLastWriterWins(t *testing.T) {
	s := NewSteering(r3.Vec{}, 0)
	s.Set(r3.Vec{X: 0.1})
	s.Set(r3.Vec{X: 0.2})
	s.Advance(0)
	if got := s.Direction(); got.X != 0.2 {
		t.Errorf("expected last request to win, got %v", got)
	}
}

func TestSteeringClampsLength(t *testing.T) {
	s := NewSteering(r3.Vec{}, 0)
	s.Set(r3.Vec{X: 3, Y: 4})
	s.Advance(0)
	if n := r3.Norm(s.Direction()); math.Abs(n-1) > 1e-12 {
		t.Errorf("direction length = %v, want 1", n)
	}
}

func TestSteeringConcurrentWriters(t *testing.T) {
	s := NewSteering(DefaultDirection, DefaultTransition)
	screen := Size{Width: 100, Height: 100}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.PointerMove(float64(i), float64(w), screen)
			}
		}(w)
	}
	for i := 0; i < 100; i++ {
		s.Advance(1.0 / 60)
	}
	wg.Wait()
	s.Advance(1)

	d := s.Direction()
	if d.X < -0.5 || d.X > 0.5 || d.Y < -0.5 || d.Y > 0.5 {
		t.Errorf("direction out of pointer range: %v", d)
	}
}
