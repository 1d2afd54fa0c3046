package duel

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Phase gates which commands a match accepts.
type Phase int

const (
	PhaseAiming Phase = iota
	PhaseFiring
)

func (p Phase) String() string {
	if p == PhaseFiring {
		return "firing"
	}
	return "aiming"
}

// Stats are per-player tallies for the current match.
type Stats struct {
	ShotsFired  int
	DirectHits  int // shots that struck the opponent's tank
	DamageDealt int // to the opponent
	SelfDamage  int // splash the shooter took from their own shell
	DamageTaken int
	MovesUsed   int
}

// ImpactHandler observes an impact after its damage has been applied.
type ImpactHandler func(Impact, []Damage)

// FireHandler observes a launch.
type FireHandler func(PlayerID, Projectile)

// Option configures a Match at construction.
type Option func(*Match)

// WithTuning replaces the default constants.
func WithTuning(t Tuning) Option {
	return func(m *Match) { m.tuning = t }
}

// WithTerrain supplies a prebuilt terrain instead of generating one.
func WithTerrain(t *Terrain) Option {
	return func(m *Match) { m.terrain = t }
}

// WithLog records events into ml.
func WithLog(ml *MatchLog) Option {
	return func(m *Match) { m.log = ml }
}

// WithImpactHandler adds an impact observer. Handlers run after Advance has
// released the match, so they may query it.
func WithImpactHandler(h ImpactHandler) Option {
	return func(m *Match) { m.onImpact = append(m.onImpact, h) }
}

// WithFireHandler adds a launch observer. Same calling rules as impact handlers.
func WithFireHandler(h FireHandler) Option {
	return func(m *Match) { m.onFire = append(m.onFire, h) }
}

// Match is the turn controller. It owns the combatants, the projectile, the
// explosion record and the scheduler, and is the only writer of all of them.
// Every exported method except Log is safe to call from multiple goroutines;
// queries return copies.
type Match struct {
	mu sync.RWMutex

	tuning   Tuning
	terrain  *Terrain
	sim      *Simulator
	resolver *Resolver
	sched    *Scheduler
	log      *MatchLog

	session    uuid.UUID
	tick       uint64
	turn       int
	phase      Phase
	active     PlayerID
	combatants [playerCount]Combatant
	stats      [playerCount]Stats

	projectile *Projectile
	shooter    PlayerID
	explosion  *Explosion
	lastImpact *Impact

	resolveTok   Token
	explosionTok Token
	closed       bool

	onImpact []ImpactHandler
	onFire   []FireHandler
}

// NewMatch builds a match ready for player 1 to aim.
func NewMatch(opts ...Option) *Match {
	m := &Match{tuning: DefaultTuning()}
	for _, o := range opts {
		o(m)
	}
	if m.terrain == nil {
		m.terrain = NewTerrain(m.tuning)
	}
	if m.log == nil {
		m.log = NewMatchLog(0, false)
	}
	m.sim = NewSimulator(m.terrain, m.tuning)
	m.resolver = NewResolver(m.terrain, m.tuning)
	m.sched = NewScheduler()
	m.reset()
	m.log.Add(m.tick, 0, "match", "start", "session="+m.session.String(), 0)
	return m
}

// reset restores match-start state. Callers hold mu.
func (m *Match) reset() {
	m.sched.CancelAll()
	m.resolveTok = Token{}
	m.explosionTok = Token{}
	m.session = uuid.New()
	m.turn = 1
	m.phase = PhaseAiming
	m.active = Player1
	for _, id := range Players() {
		m.combatants[id.index()] = newCombatant(id, m.tuning)
		m.stats[id.index()] = Stats{}
	}
	m.projectile = nil
	m.shooter = 0
	m.explosion = nil
	m.lastImpact = nil
}

// --- Commands ---

// ResetMatch reinitialises both combatants and cancels anything pending from
// the previous session.
func (m *Match) ResetMatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.reset()
	m.log.Add(m.tick, 0, "match", "reset", "session="+m.session.String(), 0)
}

// Close tears the match down. Pending callbacks are cancelled and every later
// command or Advance is a no-op.
func (m *Match) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.sched.CancelAll()
	m.resolveTok = Token{}
	m.explosionTok = Token{}
	m.closed = true
	m.log.Add(m.tick, 0, "match", "teardown", "session="+m.session.String(), 0)
}

// canAim reports whether id may issue aiming commands. Callers hold mu.
func (m *Match) canAim(id PlayerID) bool {
	return !m.closed && !m.over() && m.phase == PhaseAiming && id == m.active
}

// Move shifts the active tank one step. It costs one move even when the edge
// clamp absorbs it.
func (m *Match) Move(id PlayerID, dir Direction) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAim(id) {
		return false
	}
	c := &m.combatants[id.index()]
	from := c.PositionX
	if !c.move(dir, m.tuning) {
		return false
	}
	m.stats[id.index()].MovesUsed++
	m.log.Add(m.tick, id, "move", dir.String(),
		fmt.Sprintf("%.0f → %.0f (left=%d)", from, c.PositionX, c.MovesRemaining), c.PositionX)
	return true
}

// AdjustAngle rotates the barrel by delta degrees, wrapping into [0,360).
func (m *Match) AdjustAngle(id PlayerID, delta float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAim(id) {
		return false
	}
	c := &m.combatants[id.index()]
	c.adjustAngle(delta)
	m.log.AddVerbose(m.tick, id, "aim", "angle", fmt.Sprintf("%.1f", c.AimAngle), c.AimAngle)
	return true
}

// SetAngle points the barrel at an absolute angle, wrapped into [0,360).
func (m *Match) SetAngle(id PlayerID, angle float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAim(id) {
		return false
	}
	c := &m.combatants[id.index()]
	c.setAngle(angle)
	m.log.AddVerbose(m.tick, id, "aim", "angle", fmt.Sprintf("%.1f", c.AimAngle), c.AimAngle)
	return true
}

// AdjustPower changes launch power by delta, clamped to [0, MaxPower].
func (m *Match) AdjustPower(id PlayerID, delta int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAim(id) {
		return false
	}
	c := &m.combatants[id.index()]
	c.adjustPower(delta, m.tuning)
	m.log.AddVerbose(m.tick, id, "aim", "power", fmt.Sprintf("%d", c.Power), float64(c.Power))
	return true
}

// SetWeapon selects a shell label. Weapons do not change flight or damage.
func (m *Match) SetWeapon(id PlayerID, w Weapon) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAim(id) || !w.Valid() {
		return false
	}
	c := &m.combatants[id.index()]
	if c.Weapon == w {
		return true
	}
	c.Weapon = w
	m.log.Add(m.tick, id, "aim", "weapon", w.String(), 0)
	return true
}

// Fire launches a shell from the active tank and enters the firing phase.
func (m *Match) Fire() bool {
	m.mu.Lock()
	if m.closed || m.over() || m.phase != PhaseAiming || m.projectile != nil {
		m.mu.Unlock()
		return false
	}
	id := m.active
	c := m.combatants[id.index()]
	p := m.sim.Launch(c)
	m.projectile = &p
	m.shooter = id
	m.phase = PhaseFiring
	m.stats[id.index()].ShotsFired++
	m.log.Add(m.tick, id, "fire", "launch",
		fmt.Sprintf("angle=%.1f power=%d weapon=%s from (%.1f,%.1f)", c.AimAngle, c.Power, c.Weapon, p.X, p.Y),
		float64(c.Power))
	handlers := m.onFire
	m.mu.Unlock()

	for _, h := range handlers {
		h(id, p)
	}
	return true
}

// --- Driver ---

// Advance runs one tick: due scheduled callbacks first, then one physics
// step if a shell is in flight.
func (m *Match) Advance() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.tick++
	m.sched.Advance()

	var notify func()
	if m.phase == PhaseFiring && m.projectile != nil {
		imp, done := m.sim.Step(m.projectile, m.combatants[:])
		if done {
			notify = m.handleImpact(imp)
		} else {
			p := m.projectile
			m.log.AddVerbose(m.tick, m.shooter, "fire", "flight",
				fmt.Sprintf("(%.1f,%.1f) v=(%.2f,%.2f)", p.X, p.Y, p.VX, p.VY), p.Y)
		}
	}
	m.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// handleImpact applies damage, records the explosion and schedules the turn
// handover. It returns the observer calls to make once mu is released.
func (m *Match) handleImpact(imp Impact) func() {
	imp.Tick = m.tick
	m.projectile = nil
	m.lastImpact = &imp
	shooter := m.shooter

	m.log.Add(m.tick, shooter, "impact", imp.Kind.String(), fmt.Sprintf("(%.1f,%.1f)", imp.X, imp.Y), imp.X)

	targets := []*Combatant{&m.combatants[0], &m.combatants[1]}
	damages := m.resolver.Resolve(imp, targets)
	if target, ok := imp.Kind.Target(); ok && target != shooter {
		m.stats[shooter.index()].DirectHits++
	}
	for _, d := range damages {
		m.stats[d.Player.index()].DamageTaken += d.Amount
		if d.Player == shooter {
			m.stats[shooter.index()].SelfDamage += d.Amount
		} else {
			m.stats[shooter.index()].DamageDealt += d.Amount
		}
		m.log.Add(m.tick, d.Player, "damage", imp.Kind.String(),
			fmt.Sprintf("-%d (hp=%d d=%.1f)", d.Amount, d.HealthAfter, d.Distance), float64(d.Amount))
	}

	m.explosion = &Explosion{
		CenterX:   imp.X,
		CenterY:   imp.Y,
		Kind:      imp.Kind,
		StartTick: m.tick,
		Duration:  m.tuning.ExplosionDuration,
		MaxRadius: m.tuning.ExplosionRadius,
	}
	m.sched.Cancel(m.explosionTok)
	m.explosionTok = m.sched.Schedule(m.tuning.ExplosionTicks(), m.expireExplosion)
	m.sched.Cancel(m.resolveTok)
	m.resolveTok = m.sched.Schedule(m.tuning.ResolveDelayTicks(), m.resolveTurn)

	if out := m.outcome(); out != OutcomeInProgress {
		m.log.Add(m.tick, 0, "match", "over", out.String(), 0)
	}

	handlers := m.onImpact
	ds := append([]Damage(nil), damages...)
	return func() {
		for _, h := range handlers {
			h(imp, ds)
		}
	}
}

// resolveTurn hands control to the other player. Runs from the scheduler
// with mu held.
func (m *Match) resolveTurn() {
	m.resolveTok = Token{}
	m.projectile = nil
	m.phase = PhaseAiming
	m.active = m.active.Other()
	m.turn++
	m.combatants[m.active.index()].MovesRemaining = m.tuning.MovesPerTurn
	m.log.Add(m.tick, m.active, "turn", "handover", fmt.Sprintf("turn %d", m.turn), float64(m.turn))
}

func (m *Match) expireExplosion() {
	m.explosionTok = Token{}
	m.explosion = nil
	m.log.AddVerbose(m.tick, 0, "explosion", "expired", "", 0)
}

// --- Queries ---

func (m *Match) over() bool {
	return m.outcome() != OutcomeInProgress
}

func (m *Match) outcome() Outcome {
	return DetermineOutcome(m.combatants[0].Health, m.combatants[1].Health)
}

// TerrainHeight is the ground height at x.
func (m *Match) TerrainHeight(x float64) float64 {
	return m.terrain.HeightAt(x)
}

// Terrain is the match terrain. It is immutable.
func (m *Match) Terrain() *Terrain {
	return m.terrain
}

// Tuning returns the constants in use.
func (m *Match) Tuning() Tuning {
	return m.tuning
}

// Combatant returns a copy of the player's record.
func (m *Match) Combatant(id PlayerID) (Combatant, bool) {
	if !id.Valid() {
		return Combatant{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.combatants[id.index()], true
}

// Stats returns the player's tallies for the current session.
func (m *Match) Stats(id PlayerID) (Stats, bool) {
	if !id.Valid() {
		return Stats{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats[id.index()], true
}

// Projectile returns the shell in flight, if any.
func (m *Match) Projectile() (Projectile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.projectile == nil {
		return Projectile{}, false
	}
	return *m.projectile, true
}

// Explosion returns the live explosion record, if any.
func (m *Match) Explosion() (Explosion, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.explosion == nil {
		return Explosion{}, false
	}
	return *m.explosion, true
}

// LastImpact returns the most recent impact of this session.
func (m *Match) LastImpact() (Impact, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastImpact == nil {
		return Impact{}, false
	}
	return *m.lastImpact, true
}

// Phase is the current turn phase.
func (m *Match) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// ActivePlayer is the player whose turn it is.
func (m *Match) ActivePlayer() PlayerID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Over reports whether either combatant has been knocked out.
func (m *Match) Over() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.over()
}

// Outcome classifies the match result so far.
func (m *Match) Outcome() Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outcome()
}

// Tick is the number of Advance calls since the match was built.
func (m *Match) Tick() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tick
}

// Turn is the 1-based turn number of the current session.
func (m *Match) Turn() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.turn
}

// Session identifies the current match session; ResetMatch starts a new one.
func (m *Match) Session() uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// ResolvePending reports whether a turn handover is scheduled.
func (m *Match) ResolvePending() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.resolveTok.IsZero()
}

// Closed reports whether Close has been called.
func (m *Match) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Log is the match event log. It is not synchronised; read it from the
// goroutine that drives Advance, or use RecentLog.
func (m *Match) Log() *MatchLog {
	return m.log
}

// RecentLog copies the last n log entries under the read lock.
func (m *Match) RecentLog(n int) []MatchLogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.log.Recent(n)
}

// Snapshot is a consistent read of everything a renderer needs.
type Snapshot struct {
	Session        uuid.UUID
	Tick           uint64
	Turn           int
	Phase          Phase
	Active         PlayerID
	Outcome        Outcome
	Combatants     [playerCount]Combatant
	Stats          [playerCount]Stats
	Projectile     Projectile
	HasProjectile  bool
	Explosion      Explosion
	HasExplosion   bool
	ResolvePending bool
}

// Combatant returns the snapshot's copy of id's record.
func (s Snapshot) Combatant(id PlayerID) Combatant {
	if !id.Valid() {
		return Combatant{}
	}
	return s.Combatants[id.index()]
}

// Snapshot captures the whole match under one read lock.
func (m *Match) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Snapshot{
		Session:        m.session,
		Tick:           m.tick,
		Turn:           m.turn,
		Phase:          m.phase,
		Active:         m.active,
		Outcome:        m.outcome(),
		Combatants:     m.combatants,
		Stats:          m.stats,
		ResolvePending: !m.resolveTok.IsZero(),
	}
	if m.projectile != nil {
		s.Projectile = *m.projectile
		s.HasProjectile = true
	}
	if m.explosion != nil {
		s.Explosion = *m.explosion
		s.HasExplosion = true
	}
	return s
}
