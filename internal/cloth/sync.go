package cloth

import "github.com/san-kum/drape/internal/mesh"

// Sync writes every particle position into the matching vertex slot of pos
// and marks it dirty. The buffer is left untouched when there is nothing to
// write.
func (w *World) Sync(pos *mesh.Attribute) {
	n := w.particles.Len()
	if n == 0 || pos == nil {
		return
	}
	if c := pos.Count(); c < n {
		n = c
	}
	for i := 0; i < n; i++ {
		pos.SetVec(i, w.particles.pos[i])
	}
	pos.MarkDirty()
}
