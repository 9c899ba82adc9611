package game

import "testing"

func TestClearShot_Open(t *testing.T) {
	if !ClearShot(Vec{X: 0, Y: 0}, Vec{X: 100, Y: 100}, nil, 64) {
		t.Fatal("expected a clear shot with no walls")
	}
}

func TestClearShot_BlockedByWall(t *testing.T) {
	walls := []Cell{{Col: 2, Row: 1}}
	// Row 1 spans y 64..128; the shot at y=96 crosses column 2.
	if ClearShot(Vec{X: 32, Y: 96}, Vec{X: 288, Y: 96}, walls, 64) {
		t.Fatal("expected the wall to block the shot")
	}
}

func TestClearShot_WallBeyondTarget(t *testing.T) {
	walls := []Cell{{Col: 5, Row: 0}}
	if !ClearShot(Vec{X: 32, Y: 32}, Vec{X: 224, Y: 32}, walls, 64) {
		t.Fatal("a wall past the target should not block")
	}
}

func TestClearShot_VerticalBlocked(t *testing.T) {
	walls := []Cell{{Col: 1, Row: 2}}
	if ClearShot(Vec{X: 96, Y: 32}, Vec{X: 96, Y: 288}, walls, 64) {
		t.Fatal("expected the vertical shot to be blocked")
	}
}

func TestClearShot_PassesBesideWall(t *testing.T) {
	walls := []Cell{{Col: 1, Row: 1}}
	if !ClearShot(Vec{X: 0, Y: 32}, Vec{X: 300, Y: 32}, walls, 64) {
		t.Fatal("shot along row 0 should clear a wall in row 1")
	}
}

func TestSegmentHitsBox(t *testing.T) {
	if !segmentHitsBox(10, 10, 20, 20, 0, 0, 100, 100) {
		t.Fatal("segment inside the box should hit")
	}
	if segmentHitsBox(0, 0, 0, 100, 50, 0, 150, 100) {
		t.Fatal("segment left of the box should miss")
	}
	_ = segmentHitsBox(50, 50, 50, 50, 0, 0, 100, 100)
}
