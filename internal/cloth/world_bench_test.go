package cloth

import (
	"testing"

	"github.com/san-kum/drape/internal/mesh"
)

func benchWorld(b *testing.B, segments int) {
	plane := mesh.NewPlane(1, 1, segments, segments)
	w, err := New(plane.Position, NewGrid(segments, segments), DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(DefaultDt)
		w.Sync(plane.Position)
	}
}

func BenchmarkWorldStep8(b *testing.B)  { benchWorld(b, 8) }
func BenchmarkWorldStep32(b *testing.B) { benchWorld(b, 32) }
