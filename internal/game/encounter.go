package game

// EncounterKind classifies a resolver mutation.
type EncounterKind int

const (
	EncounterTerminal EncounterKind = iota
	EncounterLight
	EncounterDrown
	EncounterCritical
	EncounterConsume
	EncounterFoodStolen
	EncounterCollect
	EncounterDamage
	EncounterKill
	EncounterExtinguish
)

func (k EncounterKind) String() string {
	switch k {
	case EncounterTerminal:
		return "terminal"
	case EncounterLight:
		return "light"
	case EncounterDrown:
		return "drown"
	case EncounterCritical:
		return "critical"
	case EncounterConsume:
		return "consume"
	case EncounterFoodStolen:
		return "food_stolen"
	case EncounterCollect:
		return "collect"
	case EncounterDamage:
		return "damage"
	case EncounterKill:
		return "kill"
	case EncounterExtinguish:
		return "extinguish"
	default:
		return "unknown"
	}
}

// Encounter is one mutation produced by a resolver step. A acts on B.
type Encounter struct {
	A      EntityID
	B      EntityID
	Kind   EncounterKind
	Amount int        // energy, score or damage
	Cause  DeathCause // terminal/drown cause, or the attacker's cause for damage
	Value  float64    // light falloff
	Flag   bool       // critical state, or a damage hit that emptied the ledger
}

// Terminal reports whether applying e ends the run.
func (e Encounter) Terminal() bool {
	return e.Kind == EncounterTerminal || e.Kind == EncounterDrown
}

type encounterKey struct {
	A, B EntityID
	Kind EncounterKind
}

func (e Encounter) key() encounterKey { return encounterKey{e.A, e.B, e.Kind} }

// ResolverStep is one stage of per-tick resolution.
type ResolverStep struct {
	Name    string
	Resolve func(s *Snapshot) []Encounter
}

// Pipeline returns the resolver steps in evaluation order.
func Pipeline() []ResolverStep {
	return []ResolverStep{
		{Name: "terminal", Resolve: resolveTerminal},
		{Name: "light", Resolve: resolveLight},
		{Name: "drown", Resolve: resolveDrown},
		{Name: "critical", Resolve: resolveCritical},
		{Name: "pickups", Resolve: resolvePickups},
		{Name: "damage", Resolve: resolveDamage},
		{Name: "kills", Resolve: resolveKills},
	}
}

// Resolve runs steps against s and concatenates their output in order.
func Resolve(s *Snapshot, steps []ResolverStep) []Encounter {
	var out []Encounter
	for _, st := range steps {
		out = append(out, st.Resolve(s)...)
	}
	return out
}

// 1. Health below zero ends the run.
func resolveTerminal(s *Snapshot) []Encounter {
	if !s.Ledger.Dead() {
		return nil
	}
	return []Encounter{{
		A:     IDPlayer,
		B:     idNone,
		Kind:  EncounterTerminal,
		Cause: Classify(s.counters(), s.Candidate),
	}}
}

// 2. Light falloff shrinks toward the floor, then flickers.
func resolveLight(s *Snapshot) []Encounter {
	t := s.Tuning
	next := s.Light
	if next > t.LightFloor {
		next -= t.LightStep
	} else {
		next += s.Jitter
	}
	return []Encounter{{A: IDPlayer, B: idNone, Kind: EncounterLight, Value: next}}
}

// 3. Standing on water drowns the player once.
func resolveDrown(s *Snapshot) []Encounter {
	if !s.OnWater || s.Locked(IDDrown) {
		return nil
	}
	return []Encounter{{A: IDPlayer, B: IDWater, Kind: EncounterDrown, Cause: CauseDrown}}
}

// 4. Energy at or below the critical fraction of starting energy raises the
// warning flag; the flag is emitted only when it changes.
func resolveCritical(s *Snapshot) []Encounter {
	threshold := int(float64(s.Tuning.StartEnergy) * s.Tuning.CriticalFraction)
	critical := s.Ledger.Energy <= threshold
	if critical == s.Critical {
		return nil
	}
	return []Encounter{{A: IDPlayer, B: idNone, Kind: EncounterCritical, Flag: critical}}
}

// 5. Food and star. The player eats food before any enemy can steal it.
func resolvePickups(s *Snapshot) []Encounter {
	var out []Encounter
	if s.Food.Present && !s.Locked(IDFood) {
		if s.Player.Intersects(s.Food.Box) {
			out = append(out, Encounter{A: IDPlayer, B: IDFood, Kind: EncounterConsume, Amount: s.Tuning.FoodReward})
		} else {
			for _, e := range s.Enemies {
				if e.Box.Intersects(s.Food.Box) {
					out = append(out, Encounter{A: e.ID, B: IDFood, Kind: EncounterFoodStolen})
					break
				}
			}
		}
	}
	if s.Star.Present && s.Player.Intersects(s.Star.Box) {
		out = append(out, Encounter{A: IDPlayer, B: IDStar, Kind: EncounterCollect, Amount: s.Tuning.StarReward})
	}
	return out
}

// 6. At most one hit per invincibility window, in frog, spider, snake, fire
// priority. The snake reserves grid cells like the player, so it is never
// closer than one tile and strikes with ContactReach of extra range.
func resolveDamage(s *Snapshot) []Encounter {
	if s.Locked(IDInvincible) {
		return nil
	}
	for _, k := range []EnemyKind{Frog, Spider, Snake} {
		b, ok := s.enemy(k)
		if !ok {
			continue
		}
		box := b.Box
		if k == Snake {
			box = box.Grow(s.Tuning.ContactReach)
		}
		if s.Player.Intersects(box) {
			return []Encounter{hit(s, b.ID, k)}
		}
	}
	if s.Fire != nil && s.Player.Intersects(s.Fire.Box) {
		return []Encounter{hit(s, IDFire, Ghost)}
	}
	return nil
}

// hit names the attacker's death cause. Whether the hit empties the ledger is
// decided when it is applied, after earlier mutations of the same tick.
func hit(s *Snapshot, from EntityID, k EnemyKind) Encounter {
	return Encounter{A: from, B: IDPlayer, Kind: EncounterDamage, Amount: s.Tuning.Damage(k), Cause: causeForKind(k)}
}

// 7. Rocks kill unlocked enemies; a rock that hits nothing may still put out
// the ghost's fire.
func resolveKills(s *Snapshot) []Encounter {
	var out []Encounter
	usedRock := map[EntityID]bool{}
	killed := map[EntityID]bool{}
	for _, e := range s.Enemies {
		if s.Locked(e.ID) {
			continue
		}
		for _, r := range s.Rocks {
			if usedRock[r.ID] || killed[e.ID] {
				continue
			}
			if r.Box.Intersects(e.Box) {
				out = append(out, Encounter{A: r.ID, B: e.ID, Kind: EncounterKill})
				usedRock[r.ID] = true
				killed[e.ID] = true
			}
		}
	}
	if s.Fire != nil && !s.Locked(IDFire) {
		for _, r := range s.Rocks {
			if !usedRock[r.ID] && r.Box.Intersects(s.Fire.Box) {
				out = append(out, Encounter{A: r.ID, B: IDFire, Kind: EncounterExtinguish})
				break
			}
		}
	}
	return out
}
