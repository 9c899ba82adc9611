package game

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func testGrid(t *testing.T, rows ...string) (*Level, *GridIndex) {
	t.Helper()
	lvl, err := ParseLevel(rows, DefaultPitch)
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	return lvl, BuildGrid(lvl, rand.New(rand.NewSource(7))) // #nosec G404 -- test
}

func TestParseLevel_RejectsRaggedRows(t *testing.T) {
	if _, err := ParseLevel([]string{"...", ".."}, DefaultPitch); err == nil {
		t.Fatal("expected error for ragged rows")
	}
	_, err := ParseLevel([]string{"..x"}, DefaultPitch)
	if !errors.Is(err, ErrUnknownLevelRune) {
		t.Fatalf("expected ErrUnknownLevelRune, got %v", err)
	}
}

func TestDefaultLevel_Shape(t *testing.T) {
	lvl := DefaultLevel()
	if lvl.Cols != 17 || lvl.Rows != 12 {
		t.Fatalf("expected 17x12, got %dx%d", lvl.Cols, lvl.Rows)
	}
	if lvl.PlayerSpawn != (Cell{Col: 8, Row: 7}) {
		t.Fatalf("unexpected spawn %v", lvl.PlayerSpawn)
	}
	for col := 0; col < lvl.Cols; col++ {
		if lvl.TileMap.IsPassable(col, 0) {
			t.Fatalf("top row col %d should be wall before water is carved", col)
		}
	}
}

func TestCarveTopWater_UniqueInnerColumns(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		lvl := DefaultLevel()
		water := lvl.CarveTopWater(2, rand.New(rand.NewSource(seed))) // #nosec G404 -- test
		if len(water) != 2 {
			t.Fatalf("seed %d: expected 2 water cells, got %d", seed, len(water))
		}
		if water[0] == water[1] {
			t.Fatalf("seed %d: duplicate water cell %v", seed, water[0])
		}
		for _, c := range water {
			if c.Row != 0 || c.Col < 1 || c.Col > lvl.Cols-2 {
				t.Fatalf("seed %d: water cell %v outside top-row interior", seed, c)
			}
			if !lvl.TileMap.IsWater(c.Col, c.Row) {
				t.Fatalf("seed %d: %v not carved", seed, c)
			}
		}
	}
}

func TestBuildGrid_WaterIsActorOnly(t *testing.T) {
	_, g := testGrid(t,
		"#~#",
		"...",
	)
	w := Cell{Col: 1, Row: 0}
	if !g.IsWater(w) {
		t.Fatal("expected water cell")
	}
	if !g.IsFree(ViewActor, w) {
		t.Fatal("water should be free for actors")
	}
	if g.IsFree(ViewItem, w) || g.IsFree(ViewScenery, w) {
		t.Fatal("water should not be free for items or scenery")
	}
	if g.IsFree(ViewActor, Cell{Col: 0, Row: 0}) {
		t.Fatal("wall should not be free")
	}
	if got := g.FreeCount(ViewItem); got != 3 {
		t.Fatalf("expected 3 item cells, got %d", got)
	}
}

func TestReserveRelease_RoundTrip(t *testing.T) {
	_, g := testGrid(t, "....", "....")
	c := Cell{Col: 2, Row: 1}
	for _, v := range []View{ViewScenery, ViewActor, ViewItem} {
		g.Reserve(v, c)
		if g.IsFree(v, c) {
			t.Fatalf("%s: reserved cell still free", v)
		}
		g.Release(v, c)
		if !g.IsFree(v, c) {
			t.Fatalf("%s: released cell not free", v)
		}
	}
}

func TestReserve_ViewsAreIndependent(t *testing.T) {
	_, g := testGrid(t, "...")
	c := Cell{Col: 1, Row: 0}
	g.Reserve(ViewActor, c)
	if !g.IsFree(ViewItem, c) || !g.IsFree(ViewScenery, c) {
		t.Fatal("reserving the actor view must not touch the others")
	}
}

func TestRelease_IgnoresCellsOutsideView(t *testing.T) {
	_, g := testGrid(t, "#~.")
	g.Release(ViewActor, Cell{Col: 0, Row: 0})
	g.Release(ViewItem, Cell{Col: 1, Row: 0})
	g.Release(ViewActor, Cell{Col: 9, Row: 9})
	if g.IsFree(ViewActor, Cell{Col: 0, Row: 0}) {
		t.Fatal("wall became free after release")
	}
	if g.IsFree(ViewItem, Cell{Col: 1, Row: 0}) {
		t.Fatal("water became an item cell after release")
	}
	if g.IsFree(ViewActor, Cell{Col: 9, Row: 9}) {
		t.Fatal("off-map cell became free")
	}
}

func TestBlock_RemovesFromAllViewsPermanently(t *testing.T) {
	_, g := testGrid(t, "...")
	c := Cell{Col: 1, Row: 0}
	g.Block(c)
	for _, v := range []View{ViewScenery, ViewActor, ViewItem} {
		g.Release(v, c)
		if g.IsFree(v, c) {
			t.Fatalf("%s: blocked cell came back", v)
		}
	}
}

func TestRandomFree_HonoursForbidden(t *testing.T) {
	_, g := testGrid(t, "..")
	for i := 0; i < 20; i++ {
		if got := g.RandomFree(ViewItem, Cell{Col: 0, Row: 0}); got != (Cell{Col: 1, Row: 0}) {
			t.Fatalf("expected (1,0), got %v", got)
		}
	}
}

func TestRandomFree_PanicsWhenExhausted(t *testing.T) {
	_, g := testGrid(t, ".#")
	g.Reserve(ViewItem, Cell{Col: 0, Row: 0})
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, ErrGridExhausted) {
			t.Fatalf("expected ErrGridExhausted panic, got %v", rec)
		}
	}()
	g.RandomFree(ViewItem)
}

func TestSnapAndCenter(t *testing.T) {
	_, g := testGrid(t, "....", "....")
	for _, c := range []Cell{{0, 0}, {3, 1}, {2, 0}} {
		p := g.Center(c)
		if got := g.Snap(p); got != c {
			t.Fatalf("Snap(Center(%v)) = %v", c, got)
		}
		if got := g.Snap(p.Add(Vec{X: 20, Y: -20})); got != c {
			t.Fatalf("Snap near %v = %v", c, got)
		}
	}
}

func TestProject_SingletonWhenBoxedIn(t *testing.T) {
	lvl, g := testGrid(t,
		"###",
		"#P#",
		"###",
	)
	from := lvl.PlayerSpawn
	for _, d := range []Direction{East, North, West, South, Direction(-1), Direction(4), Direction(99)} {
		g.Release(ViewActor, from)
		gl := g.Project(from, d)
		if len(gl.Cells) != 1 || gl.Cells[0] != from {
			t.Fatalf("dir %v: expected singleton [%v], got %v", d, from, gl.Cells)
		}
		if g.IsFree(ViewActor, from) {
			t.Fatalf("dir %v: start cell not reserved", d)
		}
	}
}

func TestProject_InvalidDirectionIsSingleton(t *testing.T) {
	_, g := testGrid(t, ".....")
	gl := g.Project(Cell{Col: 0, Row: 0}, Direction(7))
	if gl.Steps() != 0 {
		t.Fatalf("expected singleton, got %v", gl.Cells)
	}
	if got := g.FreeCount(ViewActor); got != 4 {
		t.Fatalf("only the start cell should be reserved, free=%d", got)
	}
}

func TestProject_StopsAtFirstBlockedCell(t *testing.T) {
	_, g := testGrid(t, "....#..")
	before := map[Cell]bool{}
	for col := 0; col < 7; col++ {
		c := Cell{Col: col, Row: 0}
		before[c] = g.IsFree(ViewActor, c)
	}
	gl := g.Project(Cell{Col: 0, Row: 0}, East)
	if gl.Last() != (Cell{Col: 3, Row: 0}) || gl.Steps() != 3 {
		t.Fatalf("expected glide to (3,0) in 3 steps, got %v", gl.Cells)
	}
	for i, c := range gl.Cells {
		if i > 0 && c != gl.Cells[i-1].Step(East, 1) {
			t.Fatalf("cells not contiguous: %v", gl.Cells)
		}
		if !before[c] {
			t.Fatalf("cell %v was not free before projecting", c)
		}
		if g.IsFree(ViewActor, c) {
			t.Fatalf("cell %v not reserved after projecting", c)
		}
	}
	if !g.IsFree(ViewActor, Cell{Col: 5, Row: 0}) {
		t.Fatal("cells past the wall must stay free")
	}
}

func TestProject_OverlappingLanesDoNotCross(t *testing.T) {
	_, g := testGrid(t,
		"..P..",
	)
	g.Reserve(ViewActor, Cell{Col: 4, Row: 0}) // another actor stands here
	a := g.Project(Cell{Col: 0, Row: 0}, East)
	b := g.Project(Cell{Col: 4, Row: 0}, West)
	seen := map[Cell]string{}
	for _, c := range a.Cells {
		seen[c] = "a"
	}
	for _, c := range b.Cells {
		if seen[c] != "" {
			t.Fatalf("cell %v claimed by both glides: a=%v b=%v", c, a.Cells, b.Cells)
		}
	}
	if a.Steps()+b.Steps() != 3 {
		t.Fatalf("expected the lane split between the glides, got a=%v b=%v", a.Cells, b.Cells)
	}
}

func TestProject_WaterStopsNothing(t *testing.T) {
	_, g := testGrid(t,
		".~.",
	)
	gl := g.Project(Cell{Col: 0, Row: 0}, East)
	if gl.Last() != (Cell{Col: 2, Row: 0}) {
		t.Fatalf("actors glide over water, got %v", gl.Cells)
	}
	g.ReleaseAll(ViewActor, gl.Cells[:2])
	if !g.LaneHasWater(Cell{Col: 0, Row: 0}, East) {
		t.Fatal("expected water on the east lane")
	}
}

func ExampleGridIndex_Project() {
	lvl, _ := ParseLevel([]string{"P...#"}, DefaultPitch)
	g := BuildGrid(lvl, rand.New(rand.NewSource(1))) // #nosec G404 -- example
	gl := g.Project(lvl.PlayerSpawn, East)
	fmt.Println(gl.Cells, g.IsFree(ViewActor, Cell{Col: 2, Row: 0}))
	// Output: [{0 0} {1 0} {2 0} {3 0}] false
}
