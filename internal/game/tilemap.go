package game

// GroundType identifies the base surface of a tile.
type GroundType uint8

const (
	GroundFloor     GroundType = iota // Default walkable floor
	GroundWater                       // Drowning hazard, walkable by actors only
	groundTypeCount                   // sentinel
)

// ObjectType identifies an object sitting on a tile.
type ObjectType uint8

const (
	ObjectNone        ObjectType = iota // Empty cell
	ObjectWall                          // Static maze wall from level data
	ObjectCobblestone                   // Wall grown during the run
	objectTypeCount                     // sentinel
)

// objectBlocksMovement returns true if the object is impassable.
func objectBlocksMovement(o ObjectType) bool {
	switch o {
	case ObjectWall, ObjectCobblestone:
		return true
	default:
		return false
	}
}

// Tile represents one cell of the maze.
type Tile struct {
	Ground GroundType
	Object ObjectType
}

// TileMap is the authoritative per-cell terrain representation.
type TileMap struct {
	Cols  int
	Rows  int
	Tiles []Tile // row-major: index = row*Cols + col
}

// NewTileMap creates a tile map of open floor.
func NewTileMap(cols, rows int) *TileMap {
	return &TileMap{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
}

// inBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) inBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

// At returns a pointer to the tile at (col, row), or nil if out of bounds.
func (tm *TileMap) At(col, row int) *Tile {
	if !tm.inBounds(col, row) {
		return nil
	}
	return &tm.Tiles[row*tm.Cols+col]
}

// Ground returns the ground type at (col, row).
func (tm *TileMap) Ground(col, row int) GroundType {
	if !tm.inBounds(col, row) {
		return GroundFloor
	}
	return tm.Tiles[row*tm.Cols+col].Ground
}

// ObjectAt returns the object type at (col, row).
func (tm *TileMap) ObjectAt(col, row int) ObjectType {
	if !tm.inBounds(col, row) {
		return ObjectNone
	}
	return tm.Tiles[row*tm.Cols+col].Object
}

// IsPassable returns true if an actor can stand on (col, row).
func (tm *TileMap) IsPassable(col, row int) bool {
	if !tm.inBounds(col, row) {
		return false
	}
	return !objectBlocksMovement(tm.Tiles[row*tm.Cols+col].Object)
}

// IsWater returns true if the tile is a water hazard.
func (tm *TileMap) IsWater(col, row int) bool {
	return tm.inBounds(col, row) && tm.Tiles[row*tm.Cols+col].Ground == GroundWater
}

// SetGround sets the ground type for a tile.
func (tm *TileMap) SetGround(col, row int, g GroundType) {
	if !tm.inBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Cols+col].Ground = g
}

// SetObject places an object on a tile.
func (tm *TileMap) SetObject(col, row int, o ObjectType) {
	if !tm.inBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Cols+col].Object = o
}

// CarveWater turns (col, row) into open water, removing any wall on it.
func (tm *TileMap) CarveWater(col, row int) {
	if !tm.inBounds(col, row) {
		return
	}
	t := &tm.Tiles[row*tm.Cols+col]
	t.Ground = GroundWater
	t.Object = ObjectNone
}

// Blocked returns every impassable cell in row-major order.
func (tm *TileMap) Blocked() []Cell {
	var out []Cell
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			if !tm.IsPassable(col, row) {
				out = append(out, Cell{Col: col, Row: row})
			}
		}
	}
	return out
}
