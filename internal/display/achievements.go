package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/persistence"
)

// Achievement is the game-over card for one death cause.
type Achievement struct {
	Code    int
	Title   string
	Message string
}

// achievements is keyed by DeathCause code.
var achievements = map[int]Achievement{
	0:   {0, "Are you afraid?", "You were swallowed by the darkness."},
	1:   {1, "Drown", "Try not to fall in the water next time, 'kay?"},
	2:   {2, "Die to a frog", "Who would've thought you'd actually die to a frog?"},
	3:   {3, "Die to a spider", "Spiders give me the heebie-jeebies."},
	4:   {4, "Die to a snake", "ssssss..."},
	5:   {5, "Die to a ghost orb", "Watch out for physics defying ghost orbs!"},
	100: {100, "Glutton", "Would you like another serving?"},
	101: {101, "Berserker", "Are you a KDA player?"},
	102: {102, "Merchantman", "Mansa Musa is rolling in his grave..."},
	103: {103, "Pacifist", "A great offence is having a great defence."},
	104: {104, "Jackpot!", "Perfect 7s."},
}

// AchievementFor returns the card for cause. Unknown causes get the default.
func AchievementFor(cause game.DeathCause) Achievement {
	if a, ok := achievements[cause.Code()]; ok {
		return a
	}
	return achievements[0]
}

// AchievementLines lists every achievement in code order, unlocked ones
// starred and with their message, locked ones by title only.
func AchievementLines(rec persistence.Records) []string {
	codes := make([]int, 0, len(achievements))
	for c := range achievements {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	lines := []string{fmt.Sprintf("Achievements %d/%d", len(rec.Achievements), len(achievements))}
	for _, c := range codes {
		a := achievements[c]
		if rec.Has(c) {
			lines = append(lines, fmt.Sprintf("* %s | %s", a.Title, a.Message))
		} else {
			lines = append(lines, "  "+a.Title)
		}
	}
	return lines
}

// RunSummary is the text copied to the clipboard after a run.
func RunSummary(o game.RunOutcome, rec persistence.Records) string {
	a := AchievementFor(o.Cause)
	c := o.Counters
	var b strings.Builder
	fmt.Fprintf(&b, "Maze-Man: %d points\n", o.FinalScore)
	fmt.Fprintf(&b, "%s | %s\n", a.Title, a.Message)
	fmt.Fprintf(&b, "food %d  stars %d  kills %d  hits %d  rocks %d\n",
		c.Consumed, c.Collected, c.Kills, c.TimesHit, c.RocksRemaining)
	for _, h := range rec.Highscores {
		b.WriteString(h.String())
		b.WriteByte('\n')
	}
	return b.String()
}
