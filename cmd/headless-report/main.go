package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Sky-Strike/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	ticks    int
	gameOver bool
	killedBy string
	score    int

	firstSpawnTick  int
	firstKillTick   int
	firstEscapeTick int

	report        sim.RunReport
	windowSummary *sim.WindowReport
}

type aggregate struct {
	runs        int
	survived    int
	avgScore    float64
	avgTicks    float64
	avgAccuracy float64
	bestScore   int
	bestSeed    int64
	kills       map[sim.EnemyType]int
	escapes     map[sim.EnemyType]int
	killTicks   []int
	escapeTicks []int
	killers     map[string]int // enemy type that ended each lost run
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var width, height float64
	var verbose bool
	var copyOut bool

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 3600, "maximum ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "autopilot", "input policy: autopilot or idle")
	flag.Float64Var(&width, "width", 800, "playfield width")
	flag.Float64Var(&height, "height", 600, "playfield height")
	flag.BoolVar(&verbose, "verbose", false, "print the full event log of every run")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "autopilot" && scenario != "idle" {
		fmt.Printf("error: unsupported scenario %q (supported: autopilot, idle)\n", scenario)
		return
	}

	var out strings.Builder
	w := io.MultiWriter(os.Stdout, &out)

	fmt.Fprintf(w, "=== Headless Sortie Report ===\n")
	fmt.Fprintf(w, "scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d field=%.0fx%.0f\n\n",
		scenario, runs, ticks, seedBase, seedStep, width, height)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, detail := runScenario(i+1, seed, ticks, width, height, scenario == "autopilot", verbose)
		all = append(all, rs)
		printRun(w, rs)
		if verbose {
			fmt.Fprintln(w, detail)
		}
	}

	printAggregate(w, summarize(all))

	if copyOut {
		if err := clipboard.WriteAll(out.String()); err != nil {
			log.Printf("headless-report: copy to clipboard: %v", err)
		}
	}
}

// runScenario plays one seeded run. The returned detail holds the full event
// log and end summary when verbose is set.
func runScenario(runIndex int, seed int64, ticks int, width, height float64, autopilot, verbose bool) (runStats, string) {
	opts := []sim.SimOption{
		sim.WithViewport(width, height),
		sim.WithSeed(seed),
		sim.WithVerbose(verbose),
	}
	if autopilot {
		opts = append(opts, sim.WithAutopilot())
	}
	ts := sim.NewTestSim(opts...)
	ts.RunTicks(ticks)

	report := ts.Reporter.Run()
	rs := runStats{
		runIndex:        runIndex,
		seed:            seed,
		ticks:           ts.CurrentTick(),
		gameOver:        report.GameOver,
		killedBy:        report.KilledBy,
		score:           ts.Ctrl.State().Score,
		firstSpawnTick:  firstTick(ts.SimLog, sim.Query{Category: sim.LogSpawn}),
		firstKillTick:   firstTick(ts.SimLog, sim.Query{Category: sim.LogScore, Key: "kill"}),
		firstEscapeTick: firstTick(ts.SimLog, sim.Query{Category: sim.LogCull, Key: "escape"}),
		report:          report,
		windowSummary:   ts.Reporter.WindowSummary(),
	}
	if !verbose {
		return rs, ""
	}
	return rs, ts.SimLog.Format(sim.Query{}) + ts.Summary()
}

func firstTick(sl *sim.SimLog, q sim.Query) int {
	if e, ok := sl.First(q); ok {
		return e.Tick
	}
	return -1
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "phase_markers: first_spawn=%d first_kill=%d first_escape=%d\n",
		rs.firstSpawnTick, rs.firstKillTick, rs.firstEscapeTick)
	fmt.Fprint(w, rs.report.Format())
	if rs.windowSummary != nil {
		fmt.Fprintln(w, rs.windowSummary.Format())
	}
	fmt.Fprintln(w)
}

func summarize(all []runStats) aggregate {
	ag := aggregate{
		runs:     len(all),
		bestSeed: -1,
		kills:    map[sim.EnemyType]int{},
		escapes:  map[sim.EnemyType]int{},
		killers:  map[string]int{},
	}
	totalScore, totalTicks := 0, 0
	totalAccuracy := 0.0
	for _, rs := range all {
		totalScore += rs.score
		totalTicks += rs.ticks
		totalAccuracy += rs.report.Accuracy()
		if !rs.gameOver {
			ag.survived++
		} else if rs.killedBy != "" {
			ag.killers[killerType(rs.killedBy)]++
		}
		if ag.bestSeed < 0 || rs.score > ag.bestScore {
			ag.bestScore = rs.score
			ag.bestSeed = rs.seed
		}
		for _, t := range sim.EnemyTypes() {
			ag.kills[t] += rs.report.Kills[t]
			ag.escapes[t] += rs.report.Escapes[t]
		}
		if rs.firstKillTick >= 0 {
			ag.killTicks = append(ag.killTicks, rs.firstKillTick)
		}
		if rs.firstEscapeTick >= 0 {
			ag.escapeTicks = append(ag.escapeTicks, rs.firstEscapeTick)
		}
	}
	ag.avgScore = avg(totalScore, len(all))
	ag.avgTicks = avg(totalTicks, len(all))
	if len(all) > 0 {
		ag.avgAccuracy = totalAccuracy / float64(len(all))
	}
	return ag
}

// killerType strips the id suffix from an enemy label ("heavy:1f0c2a").
func killerType(label string) string {
	if i := strings.IndexByte(label, ':'); i >= 0 {
		return label[:i]
	}
	return label
}

func printAggregate(w io.Writer, ag aggregate) {
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d survived=%d (%.0f%%)\n", ag.runs, ag.survived, pct(ag.survived, ag.runs))
	fmt.Fprintf(w, "avg_score=%.1f avg_ticks=%.1f avg_accuracy=%.1f%%\n", ag.avgScore, ag.avgTicks, ag.avgAccuracy*100)
	fmt.Fprintf(w, "best_score=%d (seed=%d)\n", ag.bestScore, ag.bestSeed)
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_kill=%s first_escape=%s\n",
		avgTickString(ag.killTicks), avgTickString(ag.escapeTicks))
	for _, t := range sim.EnemyTypes() {
		fmt.Fprintf(w, "  %-5s kills=%d escapes=%d\n", t, ag.kills[t], ag.escapes[t])
	}
	fmt.Fprintf(w, "lost_to: %s\n", joinCounts(ag.killers))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(part, whole int) float64 {
	return avg(part*100, whole)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, k := range labels {
		parts[i] = fmt.Sprintf("%s(%d)", k, counts[k])
	}
	return strings.Join(parts, ",")
}
