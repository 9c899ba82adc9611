package game

import (
	"math"
	"math/rand"
)

// Tuning holds every gameplay constant. Durations are in seconds and are
// converted to ticks with Ticks.
type Tuning struct {
	TicksPerSecond int `toml:"ticks_per_second"`

	// World.
	NumWater            int     `toml:"num_water"`
	NumCobblestone      int     `toml:"num_cobblestone"`
	CobblestoneInterval float64 `toml:"cobblestone_interval"`

	// Player.
	StartHealth   int     `toml:"start_health"`
	StartEnergy   int     `toml:"start_energy"`
	MaxEnergy     int     `toml:"max_energy"`
	StartRocks    int     `toml:"start_rocks"`
	MaxRocks      int     `toml:"max_rocks"`
	EnergyDecay   int     `toml:"energy_decay"`
	DecayInterval float64 `toml:"decay_interval"`
	Invincibility float64 `toml:"invincibility"`
	GlideStep     float64 `toml:"glide_step"`

	// Rewards.
	StarReward  int     `toml:"star_reward"`
	FoodReward  int     `toml:"food_reward"`
	FoodRespawn float64 `toml:"food_respawn"`
	RockRespawn float64 `toml:"rock_respawn"`
	RockReward  int     `toml:"rock_reward"`

	// Damage.
	FrogDamage   int `toml:"frog_damage"`
	SpiderDamage int `toml:"spider_damage"`
	SnakeDamage  int `toml:"snake_damage"`
	FireDamage   int `toml:"fire_damage"`

	// Enemy movement.
	FrogRun        int     `toml:"frog_run"`
	FrogDuration   float64 `toml:"frog_duration"`
	SpiderRun      int     `toml:"spider_run"`
	SpiderDuration float64 `toml:"spider_duration"`
	GhostRun       int     `toml:"ghost_run"`
	GhostDuration  float64 `toml:"ghost_duration"`
	PauseMin       float64 `toml:"pause_min"`
	PauseMax       float64 `toml:"pause_max"`
	SnakeWait      float64 `toml:"snake_wait"`
	SnakeStep      float64 `toml:"snake_step"`
	RespawnMin     float64 `toml:"respawn_min"`
	RespawnMax     float64 `toml:"respawn_max"`
	GhostAttackMin float64 `toml:"ghost_attack_min"`
	GhostAttackMax float64 `toml:"ghost_attack_max"`
	FireGravity    float64 `toml:"fire_gravity"` // px/s²
	FireDrop       float64 `toml:"fire_drop"`    // px below the ghost centre

	// Rocks.
	RockSpeed  float64 `toml:"rock_speed"` // px/s
	RockFlight float64 `toml:"rock_flight"`

	// Hitboxes (px).
	PlayerSize float64 `toml:"player_size"`
	EnemySize  float64 `toml:"enemy_size"`
	ItemSize   float64 `toml:"item_size"`
	RockSize   float64 `toml:"rock_size"`
	FireSize   float64 `toml:"fire_size"`
	// ContactReach extends the snake's damage box so it can strike the
	// player from the neighbouring cell.
	ContactReach float64 `toml:"contact_reach"`

	// Cosmetic light falloff.
	LightStart float64 `toml:"light_start"`
	LightLit   float64 `toml:"light_lit"`
	LightFloor float64 `toml:"light_floor"`
	LightStep  float64 `toml:"light_step"`

	CriticalFraction float64 `toml:"critical_fraction"`
}

// DefaultTuning returns the stock game constants.
func DefaultTuning() Tuning {
	return Tuning{
		TicksPerSecond: 60,

		NumWater:            2,
		NumCobblestone:      15,
		CobblestoneInterval: 1,

		StartHealth:   3,
		StartEnergy:   100,
		MaxEnergy:     100,
		StartRocks:    10,
		MaxRocks:      20,
		EnergyDecay:   1,
		DecayInterval: 1,
		Invincibility: 5,
		GlideStep:     0.5,

		StarReward:  1,
		FoodReward:  50,
		FoodRespawn: 10,
		RockRespawn: 30,
		RockReward:  1,

		FrogDamage:   60,
		SpiderDamage: 80,
		SnakeDamage:  100,
		FireDamage:   100,

		FrogRun:        9,
		FrogDuration:   3,
		SpiderRun:      15,
		SpiderDuration: 5,
		GhostRun:       15,
		GhostDuration:  10,
		PauseMin:       1,
		PauseMax:       3,
		SnakeWait:      1,
		SnakeStep:      0.5,
		RespawnMin:     1,
		RespawnMax:     5,
		GhostAttackMin: 5,
		GhostAttackMax: 10,
		FireGravity:    1470,
		FireDrop:       10,

		RockSpeed:  1024,
		RockFlight: 1,

		PlayerSize: 60,
		EnemySize:  60,
		ItemSize:   40,
		RockSize:   32,
		FireSize:   24,

		ContactReach: 8,

		LightStart: 15,
		LightLit:   5,
		LightFloor: 1,
		LightStep:  0.1,

		CriticalFraction: 0.25,
	}
}

// Ticks converts seconds to a whole number of ticks, at least one.
func (t Tuning) Ticks(seconds float64) int {
	n := int(math.Round(seconds * float64(t.TicksPerSecond)))
	if n < 1 {
		return 1
	}
	return n
}

// randTicks draws a tick count uniformly from [lo, hi) seconds.
func (t Tuning) randTicks(r *rand.Rand, lo, hi float64) int {
	if hi <= lo {
		return t.Ticks(lo)
	}
	return t.Ticks(lo + r.Float64()*(hi-lo))
}

// Damage returns the contact damage for an enemy kind.
func (t Tuning) Damage(k EnemyKind) int {
	switch k {
	case Frog:
		return t.FrogDamage
	case Spider:
		return t.SpiderDamage
	case Snake:
		return t.SnakeDamage
	case Ghost:
		return t.FireDamage
	default:
		return 0
	}
}
