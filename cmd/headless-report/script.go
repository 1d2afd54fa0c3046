package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

// script is a scripted match: each shot is taken by whoever's turn it is,
// after optional repositioning and re-aiming.
type script struct {
	Name     string       `yaml:"name"`
	MaxTicks int          `yaml:"max_ticks"`
	Shots    []scriptShot `yaml:"shots"`
}

type scriptShot struct {
	Player int      `yaml:"player"` // 0 = whoever is active
	Moves  []string `yaml:"moves"`
	Angle  *float64 `yaml:"angle"`
	Power  *int     `yaml:"power"`
	Weapon string   `yaml:"weapon"`
}

type shotResult struct {
	turn    int
	player  duel.PlayerID
	angle   float64
	power   int
	weapon  duel.Weapon
	impact  duel.Impact
	landed  bool
	damages []duel.Damage
	refused []string
}

type replayResult struct {
	name    string
	shots   []shotResult
	skipped int // shots left unplayed after the match ended
	outcome duel.Outcome
	report  string
}

func loadScript(path string) (script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return script{}, fmt.Errorf("read script: %w", err)
	}
	s, err := parseScript(b)
	if err != nil {
		return script{}, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

func parseScript(b []byte) (script, error) {
	var s script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return script{}, err
	}
	if s.MaxTicks <= 0 {
		s.MaxTicks = 2000
	}
	if len(s.Shots) == 0 {
		return script{}, fmt.Errorf("no shots")
	}
	for i, sh := range s.Shots {
		if sh.Player != 0 && !duel.PlayerID(sh.Player).Valid() {
			return script{}, fmt.Errorf("shot %d: player must be 1 or 2, got %d", i+1, sh.Player)
		}
		for _, mv := range sh.Moves {
			if _, err := parseDirection(mv); err != nil {
				return script{}, fmt.Errorf("shot %d: %w", i+1, err)
			}
		}
		if sh.Weapon != "" {
			if _, err := duel.ParseWeapon(sh.Weapon); err != nil {
				return script{}, fmt.Errorf("shot %d: %w", i+1, err)
			}
		}
	}
	return s, nil
}

func parseDirection(s string) (duel.Direction, error) {
	switch strings.ToLower(s) {
	case "left", "l":
		return duel.Left, nil
	case "right", "r":
		return duel.Right, nil
	}
	return duel.Left, fmt.Errorf("unknown move %q", s)
}

// replay plays s on a fresh headless match.
func replay(s script, t duel.Tuning, verbose bool) (replayResult, error) {
	td := duel.NewTestDuel(duel.WithDuelTuning(t), duel.WithVerbose(verbose))
	defer td.Match.Close()
	m := td.Match

	res := replayResult{name: s.Name}
	for i, sh := range s.Shots {
		if m.Over() {
			res.skipped = len(s.Shots) - i
			break
		}
		id := m.ActivePlayer()
		if sh.Player != 0 && duel.PlayerID(sh.Player) != id {
			return res, fmt.Errorf("shot %d: scripted for P%d but it is %s's turn", i+1, sh.Player, id)
		}
		sr := shotResult{turn: m.Turn(), player: id}

		for _, mv := range sh.Moves {
			dir, _ := parseDirection(mv)
			if !m.Move(id, dir) {
				sr.refused = append(sr.refused, "move "+dir.String())
			}
		}
		if sh.Angle != nil {
			m.SetAngle(id, *sh.Angle)
		}
		if sh.Power != nil {
			c, _ := m.Combatant(id)
			m.AdjustPower(id, *sh.Power-c.Power)
		}
		if sh.Weapon != "" {
			w, _ := duel.ParseWeapon(sh.Weapon)
			m.SetWeapon(id, w)
		}

		c, _ := m.Combatant(id)
		sr.angle, sr.power, sr.weapon = c.AimAngle, c.Power, c.Weapon
		if !m.Fire() {
			return res, fmt.Errorf("shot %d: fire refused", i+1)
		}
		imp, _, ok := td.RunUntilImpact(s.MaxTicks)
		sr.impact, sr.landed = imp, ok
		if ok {
			sr.damages = td.Damages[len(td.Damages)-1]
		}
		td.RunUntilAiming(t.ResolveDelayTicks() + 1)
		res.shots = append(res.shots, sr)
		if !ok {
			return res, fmt.Errorf("shot %d: no impact within %d ticks", i+1, s.MaxTicks)
		}
	}
	res.outcome = m.Outcome()
	res.report = duel.Report(m)
	return res, nil
}
