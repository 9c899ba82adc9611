package game

// Observer receives run events. Presentation, audio, persistence and the
// spectator feed all attach here; none of them can change the run.
type Observer interface {
	// TickStarted is called once per tick before resolution.
	TickStarted(Stats)
	// Encountered is called for each applied encounter except light drift.
	Encountered(Encounter)
	// Finished is called exactly once, when the run ends.
	Finished(RunOutcome)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnTick      func(Stats)
	OnEncounter func(Encounter)
	OnFinish    func(RunOutcome)
}

func (f ObserverFuncs) TickStarted(s Stats) {
	if f.OnTick != nil {
		f.OnTick(s)
	}
}

func (f ObserverFuncs) Encountered(e Encounter) {
	if f.OnEncounter != nil {
		f.OnEncounter(e)
	}
}

func (f ObserverFuncs) Finished(o RunOutcome) {
	if f.OnFinish != nil {
		f.OnFinish(o)
	}
}
