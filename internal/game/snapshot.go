package game

// Body is one collidable entity in a snapshot.
type Body struct {
	ID   EntityID
	Kind EnemyKind
	Box  Box
}

// Pickup is the food or star item.
type Pickup struct {
	Present bool
	Cell    Cell
	Box     Box
}

// Snapshot is the read-only world state every resolver step sees for one
// tick. Steps must not mutate it.
type Snapshot struct {
	Tick      int
	Tuning    Tuning
	Ledger    Ledger
	Counters  Counters
	Candidate DeathCause

	Player     Box
	PlayerCell Cell
	OnWater    bool

	Enemies []Body // killable bodies: frog, spider, snake
	Fire    *Body
	Rocks   []Body
	Food    Pickup
	Star    Pickup

	Locks    Cooldowns
	Light    float64
	Jitter   float64 // light re-widen amount drawn for this tick
	Critical bool
}

// Locked reports whether id holds an active cooldown at this tick.
func (s *Snapshot) Locked(id EntityID) bool {
	return s.Locks.Active(id, s.Tick)
}

// enemy returns the body of the given kind, if present.
func (s *Snapshot) enemy(k EnemyKind) (Body, bool) {
	for _, b := range s.Enemies {
		if b.Kind == k {
			return b, true
		}
	}
	return Body{}, false
}

// counters returns the counters with the rock tally filled in from the ledger.
func (s *Snapshot) counters() Counters {
	c := s.Counters
	c.RocksRemaining = s.Ledger.Rocks
	return c
}

// Stats is the presentation view of the run at one instant.
type Stats struct {
	Tick       int
	Started    bool
	Finished   bool
	Ledger     Ledger
	Counters   Counters
	Light      float64
	Critical   bool
	Invincible bool
	Status     string
}

// Sprite is one drawable entity in a Frame.
type Sprite struct {
	ID     EntityID
	Label  string
	Pos    Vec
	Facing Direction
	Size   float64
}

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Stats
	Cols    int
	Rows    int
	Pitch   float64
	Walls   []Cell
	Cobbles []Cell
	Water   []Cell
	Player  Sprite
	Enemies []Sprite
	Fire    *Sprite
	Rocks   []Sprite
	Food    *Sprite
	Star    *Sprite
}
