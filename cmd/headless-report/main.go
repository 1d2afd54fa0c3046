package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Garsondee/Tank-Duel/internal/config"
	"github.com/Garsondee/Tank-Duel/internal/duel"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	hitStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	selfStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	terrainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	boundsStyle  = lipgloss.NewStyle().Faint(true)
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

const cellWidth = 7

// tableCell is where one (angle, power) pair lands.
type tableCell struct {
	impact duel.Impact
	ticks  int
	landed bool
}

type tableStats struct {
	shots      int
	enemyHits  int
	selfHits   int
	outOfField int
	unlanded   int
}

func main() {
	var mode string
	var configPath string
	var scriptPath string
	var anglesFlag string
	var powersFlag string
	var shooter int
	var maxTicks int
	var verbose bool

	flag.StringVar(&mode, "mode", "table", "report mode: table or replay")
	flag.StringVar(&configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&scriptPath, "script", "", "YAML match script for -mode=replay")
	flag.StringVar(&anglesFlag, "angles", "10,20,30,40,50,60,70,80", "comma-separated aim angles for the firing table")
	flag.StringVar(&powersFlag, "powers", "10,20,30,40,50,60,70,80,90,100", "comma-separated powers for the firing table")
	flag.IntVar(&shooter, "shooter", 1, "firing player for the table (1 or 2)")
	flag.IntVar(&maxTicks, "max-ticks", 2000, "flight tick cap per shot")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick flight samples in replay logs")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	t := cfg.Tuning()

	switch mode {
	case "table":
		id := duel.PlayerID(shooter)
		if !id.Valid() {
			fmt.Println("error: -shooter must be 1 or 2")
			return
		}
		angles, err := parseFloats(anglesFlag)
		if err != nil {
			fmt.Printf("error: -angles: %v\n", err)
			return
		}
		powers, err := parseInts(powersFlag)
		if err != nil {
			fmt.Printf("error: -powers: %v\n", err)
			return
		}
		if maxTicks <= 0 {
			fmt.Println("error: -max-ticks must be > 0")
			return
		}
		fmt.Println(headerStyle.Render("=== Firing Table ==="))
		fmt.Printf("shooter=%s gravity=%.2f wind=%.2f max_ticks=%d\n\n", id, t.Gravity, t.Wind, maxTicks)
		rows := firingTable(t, id, angles, powers, maxTicks)
		fmt.Print(renderTable(angles, powers, rows))
		st := summarizeTable(id, rows)
		fmt.Printf("\nshots=%d enemy_hits=%d self_hits=%d out_of_field=%d unlanded=%d\n",
			st.shots, st.enemyHits, st.selfHits, st.outOfField, st.unlanded)
	case "replay":
		if scriptPath == "" {
			fmt.Println("error: -mode=replay needs -script")
			return
		}
		s, err := loadScript(scriptPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		res, err := replay(s, t, verbose)
		printReplay(res)
		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
	default:
		fmt.Printf("error: unsupported mode %q (supported: table, replay)\n", mode)
	}
}

// firingTable flies every (angle, power) pair from the shooter's start
// position on a fresh match. rows[i][j] is angles[i] at powers[j].
func firingTable(t duel.Tuning, shooter duel.PlayerID, angles []float64, powers []int, maxTicks int) [][]tableCell {
	m := duel.NewMatch(duel.WithTuning(t))
	defer m.Close()
	snap := m.Snapshot()
	sim := duel.NewSimulator(m.Terrain(), t)
	others := snap.Combatants[:]

	rows := make([][]tableCell, len(angles))
	for i, a := range angles {
		rows[i] = make([]tableCell, len(powers))
		for j, p := range powers {
			c := snap.Combatant(shooter)
			c.AimAngle = a
			c.Power = p
			path, imp, ok := sim.Trajectory(c, others, maxTicks)
			rows[i][j] = tableCell{impact: imp, ticks: len(path) - 1, landed: ok}
		}
	}
	return rows
}

func summarizeTable(shooter duel.PlayerID, rows [][]tableCell) tableStats {
	var st tableStats
	for _, row := range rows {
		for _, c := range row {
			st.shots++
			switch {
			case !c.landed:
				st.unlanded++
			case c.impact.Kind == duel.ImpactBounds:
				st.outOfField++
			default:
				if id, ok := c.impact.Kind.Target(); ok {
					if id == shooter {
						st.selfHits++
					} else {
						st.enemyHits++
					}
				}
			}
		}
	}
	return st
}

// cellText is the short label printed for one table cell.
func cellText(c tableCell) string {
	if !c.landed {
		return "--"
	}
	switch c.impact.Kind {
	case duel.ImpactBounds:
		return "out"
	case duel.ImpactTank1:
		return "P1!"
	case duel.ImpactTank2:
		return "P2!"
	default:
		return strconv.Itoa(int(c.impact.X))
	}
}

func cellStyle(c tableCell) lipgloss.Style {
	if !c.landed || c.impact.Kind == duel.ImpactBounds {
		return boundsStyle
	}
	switch c.impact.Kind {
	case duel.ImpactTank1:
		return selfStyle
	case duel.ImpactTank2:
		return hitStyle
	}
	return terrainStyle
}

func renderTable(angles []float64, powers []int, rows [][]tableCell) string {
	var b strings.Builder
	b.WriteString(headerStyle.Width(cellWidth).Render("ang\\pow"))
	for _, p := range powers {
		b.WriteString(headerStyle.Width(cellWidth).Render(strconv.Itoa(p)))
	}
	b.WriteByte('\n')
	for i, row := range rows {
		b.WriteString(headerStyle.Width(cellWidth).Render(strconv.FormatFloat(angles[i], 'f', -1, 64)))
		for _, c := range row {
			b.WriteString(cellStyle(c).Width(cellWidth).Render(cellText(c)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func printReplay(res replayResult) {
	name := res.name
	if name == "" {
		name = "unnamed"
	}
	fmt.Println(headerStyle.Render("=== Scripted Replay: " + name + " ==="))
	for i, sr := range res.shots {
		fmt.Println(shotLine(i+1, sr))
	}
	if res.skipped > 0 {
		fmt.Printf("skipped_shots=%d (match already decided)\n", res.skipped)
	}
	if res.outcome != duel.OutcomeInProgress {
		fmt.Println(bannerStyle.Render(res.outcome.Banner()))
	} else {
		fmt.Println("outcome=in_progress")
	}
	if res.report != "" {
		fmt.Println()
		fmt.Print(res.report)
	}
}

func shotLine(n int, sr shotResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "shot %d: turn=%d %s angle=%.1f power=%d weapon=%s", n, sr.turn, sr.player, sr.angle, sr.power, sr.weapon)
	if !sr.landed {
		b.WriteString(" impact=none")
		return b.String()
	}
	fmt.Fprintf(&b, " impact=%s@%.0f", sr.impact.Kind, sr.impact.X)
	for _, d := range sr.damages {
		fmt.Fprintf(&b, " %s-%d(hp=%d)", d.Player, d.Amount, d.HealthAfter)
	}
	if len(sr.refused) > 0 {
		fmt.Fprintf(&b, " refused=[%s]", strings.Join(sr.refused, ","))
	}
	return b.String()
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
