package game

import "math"

// EntityID names a simulation entity or a lock owner.
type EntityID string

const (
	IDPlayer     EntityID = "player"
	IDFrog       EntityID = "frog"
	IDSpider     EntityID = "spider"
	IDSnake      EntityID = "snake"
	IDGhost      EntityID = "ghost"
	IDFire       EntityID = "fire"
	IDFood       EntityID = "food"
	IDStar       EntityID = "star"
	IDWater      EntityID = "water"
	IDInvincible EntityID = "invincible"
	IDDrown      EntityID = "drown"
	idNone       EntityID = "--"
)

// Forever is the expiry tick of a lock that only an explicit Clear removes.
const Forever = math.MaxInt

// Cooldowns maps an entity to the tick its lock expires. A lock is active
// while now < expiry.
type Cooldowns map[EntityID]int

// Set locks id until tick until.
func (c Cooldowns) Set(id EntityID, until int) { c[id] = until }

// Hold locks id until Clear is called.
func (c Cooldowns) Hold(id EntityID) { c[id] = Forever }

// Active reports whether id is locked at tick now.
func (c Cooldowns) Active(id EntityID, now int) bool {
	until, ok := c[id]
	return ok && now < until
}

// Clear removes the lock on id.
func (c Cooldowns) Clear(id EntityID) { delete(c, id) }

// Clone returns an independent copy.
func (c Cooldowns) Clone() Cooldowns {
	out := make(Cooldowns, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
