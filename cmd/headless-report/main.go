package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/maze-man/internal/config"
	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
)

type runStats struct {
	runIndex int
	seed     int64

	finished bool
	outcome  game.RunOutcome
	ticks    int

	firstHitTick  int
	firstKillTick int
	firstCritTick int
	damageEvents  int
	killEvents    int
	consumeEvents int
	collectEvents int
	stolenEvents  int
	extinguishes  int
	throws        int
	cobblesGrown  int
	enemyRespawns int
	summary       string
	window        *game.WindowReport
	windowLog     string // events inside the window, for -verbose
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var cfgPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 36000, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&cfgPath, "config", "", "optional TOML settings file")
	flag.BoolVar(&verbose, "verbose", false, "print each run's window events and summary")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel)

	fmt.Printf("=== Headless Maze-Man Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d tps=%d\n\n", runs, ticks, seedBase, seedStep, cfg.Tuning.TicksPerSecond)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutopilot(i+1, seed, ticks, cfg.Tuning)
		all = append(all, rs)
		printRun(rs, verbose)
	}
	printAggregate(all, cfg.Tuning.TicksPerSecond)
}

// runAutopilot plays one seeded run with the autopilot until it ends or the
// tick limit is reached.
func runAutopilot(runIndex int, seed int64, ticks int, tuning game.Tuning) runStats {
	reporter := game.NewRunReporter(tuning.TicksPerSecond, 0)
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithTuning(func(t *game.Tuning) { *t = tuning }),
		game.WithSimObserver(reporter),
	)
	bot := game.NewAutopilot(seed)
	for i := 0; i < ticks && !ts.Run.Finished(); i++ {
		bot.Step(ts.Run)
		ts.Run.Tick()
	}

	entries := ts.SimLog.Entries()
	rs := runStats{
		runIndex:      runIndex,
		seed:          seed,
		ticks:         ts.CurrentTick(),
		firstHitTick:  firstTick(entries, "encounter", "damage", ""),
		firstKillTick: firstTick(entries, "encounter", "kill", ""),
		firstCritTick: firstTick(entries, "encounter", "critical", ""),
		damageEvents:  ts.SimLog.CountCategory("encounter", "damage"),
		killEvents:    ts.SimLog.CountCategory("encounter", "kill"),
		consumeEvents: ts.SimLog.CountCategory("encounter", "consume"),
		collectEvents: ts.SimLog.CountCategory("encounter", "collect"),
		stolenEvents:  ts.SimLog.CountCategory("encounter", "food_stolen"),
		extinguishes:  ts.SimLog.CountCategory("encounter", "extinguish"),
		throws:        ts.SimLog.CountCategory("throw", "launch"),
		cobblesGrown:  ts.SimLog.CountCategory("grid", "cobblestone"),
		summary:       ts.SimLog.Summary(ts.Stats()),
		window:        reporter.WindowSummary(),
	}
	if rs.window != nil {
		rs.windowLog = ts.SimLog.FormatRange(rs.window.FromTick, rs.window.ToTick)
	}
	rs.enemyRespawns = countRespawns(entries)
	rs.outcome, rs.finished = ts.Run.Outcome()
	return rs
}

// countRespawns counts enemy spawns after the initial placement at tick 0.
func countRespawns(entries []game.SimLogEntry) int {
	n := 0
	for _, e := range entries {
		if e.Category == "spawn" && e.Tick > 0 && e.Key != "fire" && e.Key != "food" {
			n++
		}
	}
	return n
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats, verbose bool) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.finished {
		fmt.Printf("outcome: cause=%s code=%d score=%d tick=%d\n",
			rs.outcome.Cause, rs.outcome.Cause.Code(), rs.outcome.FinalScore, rs.outcome.Tick)
	} else {
		fmt.Printf("outcome: still alive after %d ticks\n", rs.ticks)
	}
	c := rs.outcome.Counters
	fmt.Printf("counters: hit=%d kills=%d consumed=%d collected=%d rocks=%d\n",
		c.TimesHit, c.Kills, c.Consumed, c.Collected, c.RocksRemaining)
	fmt.Printf("phase_markers: first_hit=%d first_kill=%d first_critical=%d\n",
		rs.firstHitTick, rs.firstKillTick, rs.firstCritTick)
	fmt.Printf("event_totals: damage=%d kill=%d consume=%d collect=%d stolen=%d extinguish=%d throw=%d cobble=%d respawn=%d\n",
		rs.damageEvents, rs.killEvents, rs.consumeEvents, rs.collectEvents, rs.stolenEvents,
		rs.extinguishes, rs.throws, rs.cobblesGrown, rs.enemyRespawns)
	fmt.Print(rs.window.Format())
	if verbose {
		fmt.Print(rs.windowLog)
		fmt.Print(rs.summary)
	}
	fmt.Println()
}

type causeCount struct {
	cause game.DeathCause
	n     int
}

// causeDistribution counts finished runs per cause, most frequent first and
// by code on ties.
func causeDistribution(all []runStats) []causeCount {
	counts := map[game.DeathCause]int{}
	for _, rs := range all {
		if rs.finished {
			counts[rs.outcome.Cause]++
		}
	}
	out := make([]causeCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, causeCount{c, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].cause.Code() < out[j].cause.Code()
	})
	return out
}

func avg(sum int, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func printAggregate(all []runStats, tps int) {
	totalScore, totalTicks, finished := 0, 0, 0
	totalDamage, totalKills, totalConsume, totalCollect := 0, 0, 0, 0
	for _, rs := range all {
		totalScore += rs.outcome.FinalScore
		totalTicks += rs.ticks
		totalDamage += rs.damageEvents
		totalKills += rs.killEvents
		totalConsume += rs.consumeEvents
		totalCollect += rs.collectEvents
		if rs.finished {
			finished++
		}
	}
	n := len(all)
	fmt.Printf("=== Aggregate (%d runs) ===\n", n)
	fmt.Printf("finished=%d survived=%d\n", finished, n-finished)
	fmt.Printf("avg_score=%.1f avg_survival=%.1fs\n", avg(totalScore, n), avg(totalTicks, n)/float64(max(tps, 1)))
	fmt.Printf("avg_events: damage=%.1f kill=%.1f consume=%.1f collect=%.1f\n",
		avg(totalDamage, n), avg(totalKills, n), avg(totalConsume, n), avg(totalCollect, n))
	fmt.Println("causes:")
	for _, cc := range causeDistribution(all) {
		fmt.Printf("  %-12s %3d  (%.0f%%)\n", cc.cause, cc.n, 100*avg(cc.n, n))
	}
}
