package game

// Glide is a straight-line run of cells starting at From. Cells[0] == From
// and every cell is one step from its predecessor in Dir.
type Glide struct {
	From  Cell
	Dir   Direction
	Cells []Cell
}

// Last returns the destination cell.
func (gl Glide) Last() Cell { return gl.Cells[len(gl.Cells)-1] }

// Steps returns the number of moves in the glide (0 for a singleton).
func (gl Glide) Steps() int { return len(gl.Cells) - 1 }

// Project computes the longest glide from `from` in dir. Successive cells are
// taken while they are free in the actor view. Every returned cell, including
// from, is reserved in the actor view before Project returns; the caller owns
// releasing the ones it does not end on.
func (g *GridIndex) Project(from Cell, dir Direction) Glide {
	gl := Glide{From: from, Dir: dir, Cells: []Cell{from}}
	g.mu.Lock()
	defer g.mu.Unlock()
	actor := g.free[ViewActor]
	actor.Remove(from)
	if !dir.Valid() {
		return gl
	}
	for next := from.Step(dir, 1); actor.Has(next); next = next.Step(dir, 1) {
		actor.Remove(next)
		gl.Cells = append(gl.Cells, next)
	}
	return gl
}
