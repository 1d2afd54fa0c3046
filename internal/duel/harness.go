package duel

// TestDuel is a headless match harness for tests and batch tooling. It wraps
// a Match with a verbose-capable log and records every impact and launch.
type TestDuel struct {
	Match   *Match
	Log     *MatchLog
	Impacts []Impact
	Damages [][]Damage
	Shots   []Projectile
}

// duelOptionKind controls the pass in which an option is applied.
type duelOptionKind int

const (
	duelOptInfra duelOptionKind = iota // match options and logging, before the match exists
	duelOptSetup                       // adjustments applied to the built match
)

// DuelOption is a builder step applied to a TestDuel during construction.
type DuelOption struct {
	kind    duelOptionKind
	match   []Option
	verbose bool
	fn      func(*Match)
}

// WithDuelTuning overrides the match constants.
func WithDuelTuning(t Tuning) DuelOption {
	return DuelOption{kind: duelOptInfra, match: []Option{WithTuning(t)}}
}

// WithMatchOptions forwards raw match options.
func WithMatchOptions(opts ...Option) DuelOption {
	return DuelOption{kind: duelOptInfra, match: opts}
}

// WithVerbose records per-tick flight samples and aim changes.
func WithVerbose(v bool) DuelOption {
	return DuelOption{kind: duelOptInfra, verbose: v}
}

// WithPosition places a tank, clamped to the lane.
func WithPosition(id PlayerID, x float64) DuelOption {
	return DuelOption{kind: duelOptSetup, fn: func(m *Match) {
		m.combatants[id.index()].PositionX = clamp(x, m.tuning.MinX, m.tuning.MaxX)
	}}
}

// WithAim sets a tank's barrel angle and power.
func WithAim(id PlayerID, angle float64, power int) DuelOption {
	return DuelOption{kind: duelOptSetup, fn: func(m *Match) {
		c := &m.combatants[id.index()]
		c.setAngle(angle)
		c.Power = clampInt(power, 0, m.tuning.MaxPower)
	}}
}

// WithHealth sets a tank's starting health.
func WithHealth(id PlayerID, hp int) DuelOption {
	return DuelOption{kind: duelOptSetup, fn: func(m *Match) {
		m.combatants[id.index()].Health = clampInt(hp, 0, m.tuning.MaxHealth)
	}}
}

// NewTestDuel constructs a TestDuel in two ordered passes: infrastructure
// options build the match, then setup options adjust it.
func NewTestDuel(opts ...DuelOption) *TestDuel {
	td := &TestDuel{}
	verbose := false
	var matchOpts []Option
	for _, o := range opts {
		if o.kind != duelOptInfra {
			continue
		}
		matchOpts = append(matchOpts, o.match...)
		verbose = verbose || o.verbose
	}
	td.Log = NewMatchLog(0, verbose)
	matchOpts = append(matchOpts,
		WithLog(td.Log),
		WithImpactHandler(func(imp Impact, ds []Damage) {
			td.Impacts = append(td.Impacts, imp)
			td.Damages = append(td.Damages, ds)
		}),
		WithFireHandler(func(_ PlayerID, p Projectile) {
			td.Shots = append(td.Shots, p)
		}),
	)
	td.Match = NewMatch(matchOpts...)
	for _, o := range opts {
		if o.kind == duelOptSetup && o.fn != nil {
			td.Match.mu.Lock()
			o.fn(td.Match)
			td.Match.mu.Unlock()
		}
	}
	return td
}

// RunTicks advances the match n times.
func (td *TestDuel) RunTicks(n int) {
	for i := 0; i < n; i++ {
		td.Match.Advance()
	}
}

// RunUntilImpact advances until a new impact is recorded or max ticks pass.
// It returns the impact and the number of ticks it took.
func (td *TestDuel) RunUntilImpact(max int) (Impact, int, bool) {
	before := len(td.Impacts)
	for i := 1; i <= max; i++ {
		td.Match.Advance()
		if len(td.Impacts) > before {
			return td.Impacts[len(td.Impacts)-1], i, true
		}
	}
	return Impact{}, max, false
}

// RunUntilAiming advances until the match is back in the aiming phase with
// no handover pending, or max ticks pass.
func (td *TestDuel) RunUntilAiming(max int) (int, bool) {
	for i := 1; i <= max; i++ {
		td.Match.Advance()
		if td.Match.Phase() == PhaseAiming && !td.Match.ResolvePending() {
			return i, true
		}
	}
	return max, false
}

// Shoot points the active tank, fires, and runs the turn to completion.
// It returns the impact, or false if the shot was refused or never landed.
func (td *TestDuel) Shoot(angle float64, power int, maxTicks int) (Impact, bool) {
	m := td.Match
	id := m.ActivePlayer()
	if !m.SetAngle(id, angle) {
		return Impact{}, false
	}
	c, _ := m.Combatant(id)
	if !m.AdjustPower(id, power-c.Power) {
		return Impact{}, false
	}
	if !m.Fire() {
		return Impact{}, false
	}
	imp, _, ok := td.RunUntilImpact(maxTicks)
	if !ok {
		return Impact{}, false
	}
	td.RunUntilAiming(m.Tuning().ResolveDelayTicks() + 1)
	return imp, true
}
