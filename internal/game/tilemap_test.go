package game

import "testing"

func TestNewTileMap_DefaultFloor(t *testing.T) {
	tm := NewTileMap(10, 8)
	if tm.Cols != 10 || tm.Rows != 8 {
		t.Fatalf("expected 10x8, got %dx%d", tm.Cols, tm.Rows)
	}
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			if g := tm.Ground(col, row); g != GroundFloor {
				t.Fatalf("tile (%d,%d) ground=%d, want GroundFloor", col, row, g)
			}
			if !tm.IsPassable(col, row) {
				t.Fatalf("tile (%d,%d) should be passable", col, row)
			}
		}
	}
}

func TestTileMap_WallAndCobblestoneBlock(t *testing.T) {
	tm := NewTileMap(5, 5)
	tm.SetObject(2, 2, ObjectWall)
	tm.SetObject(3, 3, ObjectCobblestone)
	if tm.IsPassable(2, 2) {
		t.Fatal("wall tile should not be passable")
	}
	if tm.IsPassable(3, 3) {
		t.Fatal("cobblestone tile should not be passable")
	}
	blocked := tm.Blocked()
	if len(blocked) != 2 {
		t.Fatalf("expected 2 blocked cells, got %d", len(blocked))
	}
	if blocked[0] != (Cell{Col: 2, Row: 2}) || blocked[1] != (Cell{Col: 3, Row: 3}) {
		t.Fatalf("blocked cells not in row-major order: %v", blocked)
	}
}

func TestTileMap_CarveWaterClearsWall(t *testing.T) {
	tm := NewTileMap(4, 4)
	tm.SetObject(1, 0, ObjectWall)
	tm.CarveWater(1, 0)
	if !tm.IsWater(1, 0) {
		t.Fatal("carved tile should be water")
	}
	if !tm.IsPassable(1, 0) {
		t.Fatal("water tile should be passable for actors")
	}
}

func TestTileMap_OutOfBounds(t *testing.T) {
	tm := NewTileMap(3, 3)
	if tm.At(-1, 0) != nil {
		t.Fatal("out of bounds At should return nil")
	}
	if tm.IsPassable(-1, 0) {
		t.Fatal("out of bounds should not be passable")
	}
	if tm.IsWater(5, 5) {
		t.Fatal("out of bounds should not be water")
	}
	// Should not panic.
	tm.SetGround(99, 99, GroundWater)
	tm.SetObject(-1, -1, ObjectWall)
	tm.CarveWater(-3, 7)
}
