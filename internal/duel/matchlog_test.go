package duel

import (
	"strings"
	"testing"
)

func TestMatchLog_CapacityKeepsNewest(t *testing.T) {
	ml := NewMatchLog(3, false)
	for i := 1; i <= 5; i++ {
		ml.Add(uint64(i), Player1, "move", "right", "", float64(i))
	}
	if ml.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ml.Len())
	}
	if e := ml.Entries()[0]; e.Tick != 3 {
		t.Fatalf("oldest kept entry should be tick 3, got %d", e.Tick)
	}
}

func TestMatchLog_VerboseGate(t *testing.T) {
	quiet := NewMatchLog(0, false)
	quiet.AddVerbose(1, Player1, "fire", "flight", "", 0)
	if quiet.Len() != 0 {
		t.Fatal("verbose entry recorded with verbose off")
	}
	loud := NewMatchLog(0, true)
	loud.AddVerbose(1, Player1, "fire", "flight", "", 0)
	if loud.Len() != 1 {
		t.Fatal("verbose entry dropped with verbose on")
	}
}

func TestMatchLog_Queries(t *testing.T) {
	ml := NewMatchLog(0, false)
	ml.Add(1, Player1, "fire", "launch", "angle=45.0", 50)
	ml.Add(24, Player1, "impact", "terrain", "(339.4,399.2)", 339.4)
	ml.Add(60, Player2, "turn", "handover", "turn 2", 2)
	ml.Add(61, 0, "match", "over", "p1_victory", 0)

	if n := ml.CountCategory("impact", ""); n != 1 {
		t.Fatalf("expected 1 impact, got %d", n)
	}
	if got := ml.FilterPlayer("P2"); len(got) != 1 || got[0].Key != "handover" {
		t.Fatalf("unexpected P2 entries: %+v", got)
	}
	if got := ml.FilterPlayer("--"); len(got) != 1 {
		t.Fatalf("match-wide entries should use the -- label, got %+v", got)
	}
	if got := ml.FilterTickRange(20, 60); len(got) != 2 {
		t.Fatalf("expected 2 entries in [20,60], got %d", len(got))
	}
	if e, ok := ml.LastOf("", ""); !ok || e.Category != "match" {
		t.Fatalf("LastOf any should be the final entry, got %+v", e)
	}
	if !ml.HasEntry("impact", "terrain", "339") || ml.HasEntry("impact", "tank2", "") {
		t.Fatal("HasEntry mismatch")
	}
	if r := ml.Recent(2); len(r) != 2 || r[1].Tick != 61 {
		t.Fatalf("Recent(2) wrong: %+v", r)
	}
	if r := ml.Recent(0); len(r) != 4 {
		t.Fatalf("Recent(0) should return everything, got %d", len(r))
	}
}

func TestMatchLogEntry_String(t *testing.T) {
	e := MatchLogEntry{Tick: 42, Player: "P1", Category: "impact", Key: "terrain", Value: "(312.4,461.0)"}
	got := e.String()
	if !strings.HasPrefix(got, "[T=0042] P1 impact    terrain") || !strings.HasSuffix(got, "(312.4,461.0)") {
		t.Fatalf("unexpected format %q", got)
	}
	ml := NewMatchLog(0, false)
	ml.Add(1, Player2, "aim", "weapon", "heavy", 0)
	ml.Add(2, Player2, "fire", "launch", "", 0)
	if lines := strings.Count(ml.Format(), "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d", lines)
	}
	if out := ml.FormatRange(2, 2); strings.Contains(out, "weapon") {
		t.Fatalf("range format leaked an earlier entry: %q", out)
	}
	ml.Reset()
	if ml.Len() != 0 {
		t.Fatal("reset should empty the log")
	}
}
