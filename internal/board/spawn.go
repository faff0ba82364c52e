package board

import "github.com/vovakirdan/fracture/internal/core"

// SpawnTop is the preferred spawn center: middle column, top row.
func (b *Board) SpawnTop() core.Vec {
	return core.V(b.grid.Width()/2, b.grid.Height()-1)
}

// FindSpawn searches for the first center at which t fits entirely on empty
// cells. Candidates fan out from the top: for each column distance r and each
// depth y, left of center is tried before right.
func (b *Board) FindSpawn(t Template) (core.Vec, bool) {
	top := b.SpawnTop()
	w, h := b.grid.Width(), b.grid.Height()
	for r := 0; r <= w/2+1; r++ {
		for y := 0; y < h; y++ {
			left := core.V(top.X-r, top.Y-y)
			if b.canPlace(left, t.Offsets) {
				return left, true
			}
			right := core.V(top.X+r, top.Y-y)
			if b.canPlace(right, t.Offsets) {
				return right, true
			}
		}
	}
	return core.Vec{}, false
}

// Spawn places t at the first free spawn position and gives it a control
// marker on lane 0. It returns false without mutating anything when no
// position fits.
func (b *Board) Spawn(t Template) (ShapeID, bool) {
	center, ok := b.FindSpawn(t)
	if !ok {
		b.logger.Warn("no spawn position", "template", t.Name)
		b.observer.OnSpawnFailed(t.Name)
		return 0, false
	}
	id, ok := b.Insert(center, t)
	if !ok {
		return 0, false
	}
	b.Attach(id, 0)
	b.logger.Debug("spawned", "template", t.Name, "shape", id.String(), "center", center.String())
	b.observer.OnSpawn(t.Name)
	return id, true
}
