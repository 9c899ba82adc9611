package game

// DeathCause classifies how a run ended. Code returns the stable numeric id
// used by the achievement store.
type DeathCause int

const (
	CauseDefault DeathCause = iota
	CauseDrown
	CauseFrog
	CauseSpider
	CauseSnake
	CauseGhost
	CauseGlutton
	CauseBerserker
	CauseMerchantman
	CausePacifist
	CauseJackpot
)

// AllCauses lists every cause in code order.
var AllCauses = []DeathCause{
	CauseDefault, CauseDrown, CauseFrog, CauseSpider, CauseSnake, CauseGhost,
	CauseGlutton, CauseBerserker, CauseMerchantman, CausePacifist, CauseJackpot,
}

func (c DeathCause) String() string {
	switch c {
	case CauseDefault:
		return "default"
	case CauseDrown:
		return "drown"
	case CauseFrog:
		return "frog"
	case CauseSpider:
		return "spider"
	case CauseSnake:
		return "snake"
	case CauseGhost:
		return "ghost"
	case CauseGlutton:
		return "glutton"
	case CauseBerserker:
		return "berserker"
	case CauseMerchantman:
		return "merchantman"
	case CausePacifist:
		return "pacifist"
	case CauseJackpot:
		return "jackpot"
	default:
		return "unknown"
	}
}

// Code returns the persisted achievement id.
func (c DeathCause) Code() int {
	switch {
	case c >= CauseDefault && c <= CauseGhost:
		return int(c)
	case c >= CauseGlutton && c <= CauseJackpot:
		return 100 + int(c-CauseGlutton)
	default:
		return -1
	}
}

// CauseFromCode is the inverse of Code.
func CauseFromCode(code int) (DeathCause, bool) {
	for _, c := range AllCauses {
		if c.Code() == code {
			return c, true
		}
	}
	return CauseDefault, false
}

// causeForKind is the hit-candidate cause recorded when an enemy lands the
// blow that empties the ledger.
func causeForKind(k EnemyKind) DeathCause {
	switch k {
	case Frog:
		return CauseFrog
	case Spider:
		return CauseSpider
	case Snake:
		return CauseSnake
	case Ghost:
		return CauseGhost
	default:
		return CauseDefault
	}
}

// Counters are the run statistics that feed cause classification.
type Counters struct {
	TimesHit       int
	Kills          int
	Consumed       int
	Collected      int
	RocksRemaining int
}

// RunOutcome is the terminal record of a run. It is built once and never
// modified afterwards.
type RunOutcome struct {
	FinalScore int
	Cause      DeathCause
	Counters   Counters
	Tick       int
}

// Classify picks the death cause for a finished run. Achievement causes take
// priority over the recorded hit candidate:
//
//	Glutton > Berserker > Merchantman > Pacifist > Jackpot > candidate > Default
func Classify(c Counters, candidate DeathCause) DeathCause {
	switch {
	case c.Consumed >= 10:
		return CauseGlutton
	case c.Kills >= 10:
		return CauseBerserker
	case c.Collected >= 10:
		return CauseMerchantman
	case c.Kills == 0 && c.TimesHit == 0:
		return CausePacifist
	case c.Consumed == 7 && c.Collected == 7 && c.RocksRemaining == 7:
		return CauseJackpot
	default:
		return candidate
	}
}
