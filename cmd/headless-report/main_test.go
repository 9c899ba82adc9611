package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Garsondee/maze-man/internal/game"
)

func TestCauseDistribution_OrdersByCountThenCode(t *testing.T) {
	all := []runStats{
		{finished: true, outcome: game.RunOutcome{Cause: game.CauseGhost}},
		{finished: true, outcome: game.RunOutcome{Cause: game.CauseFrog}},
		{finished: true, outcome: game.RunOutcome{Cause: game.CauseGhost}},
		{finished: true, outcome: game.RunOutcome{Cause: game.CauseDrown}},
		{finished: false},
	}
	got := causeDistribution(all)
	if len(got) != 3 {
		t.Fatalf("expected 3 causes, got %+v", got)
	}
	if got[0].cause != game.CauseGhost || got[0].n != 2 {
		t.Fatalf("expected ghost first, got %+v", got[0])
	}
	if got[1].cause != game.CauseDrown || got[2].cause != game.CauseFrog {
		t.Fatalf("ties should order by code, got %+v", got)
	}
}

func TestCountRespawns_SkipsInitialAndItems(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 0, Category: "spawn", Key: "Frog"},
		{Tick: 400, Category: "spawn", Key: "fire"},
		{Tick: 500, Category: "spawn", Key: "food"},
		{Tick: 900, Category: "spawn", Key: "Frog"},
		{Tick: 950, Category: "encounter", Key: "kill"},
	}
	if n := countRespawns(entries); n != 1 {
		t.Fatalf("expected 1 respawn, got %d", n)
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "encounter", Key: "damage", Value: "spider -> player 40"},
		{Tick: 7, Category: "encounter", Key: "damage", Value: "frog -> player 60"},
	}
	if got := firstTick(entries, "encounter", "damage", "frog"); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := firstTick(entries, "encounter", "kill", ""); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestRunAutopilot_Deterministic(t *testing.T) {
	a := runAutopilot(1, 5, 2000, game.DefaultTuning())
	b := runAutopilot(1, 5, 2000, game.DefaultTuning())
	if a.ticks != b.ticks || a.outcome != b.outcome || a.damageEvents != b.damageEvents {
		t.Fatalf("same seed diverged: %+v vs %+v", a.outcome, b.outcome)
	}
	if a.ticks == 0 {
		t.Fatal("no ticks simulated")
	}
}

func TestRunAutopilot_WindowLogStaysInWindow(t *testing.T) {
	rs := runAutopilot(1, 5, 2000, game.DefaultTuning())
	if rs.window == nil {
		t.Fatal("expected a window report")
	}
	lines := strings.Split(strings.TrimSuffix(rs.windowLog, "\n"), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		var tick int
		if _, err := fmt.Sscanf(line, "[T=%d]", &tick); err != nil {
			t.Fatalf("unparseable line %q: %v", line, err)
		}
		if tick < rs.window.FromTick || tick > rs.window.ToTick {
			t.Fatalf("tick %d outside window %d..%d", tick, rs.window.FromTick, rs.window.ToTick)
		}
	}
}
