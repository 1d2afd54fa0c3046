package duel

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded match event.
type MatchLogEntry struct {
	Tick     uint64
	Player   string  // "P1", "P2", or "--" for match-wide events
	Category string  // match, turn, aim, move, fire, impact, damage, explosion
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] P1 impact    terrain          (312.4,461.0)
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-2s %-9s %-16s %s",
		e.Tick, e.Player, e.Category, e.Key, e.Value)
}

// MatchLog collects structured match events. With a capacity it keeps only
// the most recent entries; with capacity 0 it is unbounded.
type MatchLog struct {
	entries  []MatchLogEntry
	capacity int
	verbose  bool
}

// NewMatchLog creates a log. verbose adds per-tick flight samples.
func NewMatchLog(capacity int, verbose bool) *MatchLog {
	if capacity < 0 {
		capacity = 0
	}
	return &MatchLog{capacity: capacity, verbose: verbose}
}

// Add records a new entry.
func (ml *MatchLog) Add(tick uint64, player PlayerID, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Player:   player.String(),
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	if ml.capacity > 0 && len(ml.entries) > ml.capacity {
		drop := len(ml.entries) - ml.capacity
		ml.entries = append(ml.entries[:0], ml.entries[drop:]...)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(tick uint64, player PlayerID, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(tick, player, category, key, value, numVal)
}

// Entries returns a copy of all retained entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	out := make([]MatchLogEntry, len(ml.entries))
	copy(out, ml.entries)
	return out
}

// Len is the number of retained entries.
func (ml *MatchLog) Len() int {
	return len(ml.entries)
}

// Recent returns up to n of the newest entries, oldest first.
func (ml *MatchLog) Recent(n int) []MatchLogEntry {
	if n <= 0 || n > len(ml.entries) {
		n = len(ml.entries)
	}
	out := make([]MatchLogEntry, n)
	copy(out, ml.entries[len(ml.entries)-n:])
	return out
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterPlayer returns entries for one player label ("P1", "P2", "--").
func (ml *MatchLog) FilterPlayer(label string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Player == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (ml *MatchLog) FilterTickRange(fromTick, toTick uint64) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		e := ml.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return MatchLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Reset drops every entry.
func (ml *MatchLog) Reset() {
	ml.entries = ml.entries[:0]
}

// Format returns the full log as a single string for t.Log output.
func (ml *MatchLog) Format() string {
	return formatEntries(ml.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (ml *MatchLog) FormatRange(fromTick, toTick uint64) string {
	return formatEntries(ml.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []MatchLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
