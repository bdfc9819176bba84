package hunt

import (
	"errors"
	"testing"
	"time"
)

func testCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Fountain", Coordinates: Coordinates{48.8584, 2.2945},
			Clue: Clue{Question: "How many arches?", Answer: "2", Hint: "Count again"}, ChallengeType: ChallengeRiddle},
		{ID: 2, Name: "Old Mill", Coordinates: Coordinates{48.8606, 2.3376}, Locked: true,
			Clue: Clue{Question: "Year on the plaque?", Answer: "1887", Hint: "Look up"}, ChallengeType: ChallengeRiddle},
		{ID: 3, Name: "Chapel", Coordinates: Coordinates{48.8529, 2.3500}, Locked: true,
			Clue: Clue{Text: "Show your find to the guide"}, ChallengeType: ChallengeManual},
	}
}

func testProgress(t *testing.T) TeamProgress {
	t.Helper()
	p, err := NewTeamProgress("t1", "Red Foxes", "#cc0000", "s1", []int{1, 2, 3}, testCatalog(), time.Now())
	if err != nil {
		t.Fatalf("new progress: %v", err)
	}
	return p
}

func assertInvariant(t *testing.T, p *TeamProgress) {
	t.Helper()
	for id := range p.Found {
		if !p.Unlocked.Has(id) {
			t.Fatalf("invariant broken: %d found but not unlocked", id)
		}
	}
}

func TestNewProgressInitialState(t *testing.T) {
	p := testProgress(t)

	if got := p.StateOf(1); got != StateUnlocked {
		t.Errorf("checkpoint 1 = %s, want unlocked", got)
	}
	if got := p.StateOf(2); got != StateLocked {
		t.Errorf("checkpoint 2 = %s, want locked", got)
	}
	if p.CurrentCheckpoint != 1 {
		t.Errorf("current = %d, want 1", p.CurrentCheckpoint)
	}
	if p.Status != TeamActive {
		t.Errorf("status = %s, want active", p.Status)
	}
	assertInvariant(t, &p)
}

func TestUnlockIdempotent(t *testing.T) {
	p := testProgress(t)

	newly, err := p.Unlock(2)
	if err != nil || !newly {
		t.Fatalf("first unlock: newly=%v err=%v", newly, err)
	}
	before := len(p.Unlocked)

	newly, err = p.Unlock(2)
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if newly {
		t.Error("second unlock reported a new transition")
	}
	if len(p.Unlocked) != before {
		t.Errorf("unlocked grew from %d to %d", before, len(p.Unlocked))
	}
}

func TestMarkFoundIdempotent(t *testing.T) {
	p := testProgress(t)

	newly, err := p.MarkFound(1)
	if err != nil || !newly {
		t.Fatalf("first find: newly=%v err=%v", newly, err)
	}

	newly, err = p.MarkFound(1)
	if err != nil {
		t.Fatalf("second find: %v", err)
	}
	if newly {
		t.Error("second find reported a new transition")
	}
	if len(p.Found) != 1 {
		t.Errorf("found has %d entries, want 1", len(p.Found))
	}
	assertInvariant(t, &p)
}

func TestMarkFoundRefusesLocked(t *testing.T) {
	p := testProgress(t)

	_, err := p.MarkFound(2)
	if !errors.Is(err, ErrCheckpointLocked) {
		t.Fatalf("err = %v, want ErrCheckpointLocked", err)
	}
	if len(p.Found) != 0 {
		t.Error("found set changed on a refused transition")
	}
}

func TestMarkFoundAdvancesCurrent(t *testing.T) {
	p := testProgress(t)

	p.Unlock(2)
	p.MarkFound(1)

	if p.CurrentCheckpoint != 2 {
		t.Errorf("current = %d, want 2", p.CurrentCheckpoint)
	}
}

func TestOffRouteRejected(t *testing.T) {
	p := testProgress(t)

	if _, err := p.Unlock(99); !errors.Is(err, ErrNotOnRoute) {
		t.Errorf("unlock off-route: err = %v", err)
	}
	if _, err := p.MarkFound(99); !errors.Is(err, ErrNotOnRoute) {
		t.Errorf("find off-route: err = %v", err)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	catalog := testCatalog()
	p := testProgress(t)

	p.Unlock(2)
	p.Unlock(3)
	p.MarkFound(1)
	p.MarkFound(2)
	p.Status = TeamStuck

	p.Reset(catalog)

	if len(p.Found) != 0 {
		t.Errorf("found not emptied: %v", p.Found.IDs())
	}
	if got := p.Unlocked.IDs(); len(got) != 1 || got[0] != 1 {
		t.Errorf("unlocked = %v, want [1]", got)
	}
	if p.CurrentCheckpoint != 1 {
		t.Errorf("current = %d, want 1", p.CurrentCheckpoint)
	}
	if p.Status != TeamActive {
		t.Errorf("status = %s, want active", p.Status)
	}
	assertInvariant(t, &p)
}

func TestCompletedDerived(t *testing.T) {
	p := testProgress(t)

	if p.Completed() {
		t.Fatal("fresh team reported completed")
	}

	for _, id := range p.Route {
		p.Unlock(id)
		p.MarkFound(id)
	}
	if !p.Completed() {
		t.Error("team with full route found not completed")
	}
	assertInvariant(t, &p)
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		given string
		want  bool
	}{
		{"2", true},
		{" 2 ", true},
		{"TWO", false},
		{"", false},
		{"  ", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer("2", tt.given); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.given, got, tt.want)
		}
	}

	if !CheckAnswer("Bell Tower", "  bell tower ") {
		t.Error("case/whitespace-insensitive match failed")
	}
}

func TestRiddleUnlocksNext(t *testing.T) {
	catalog := testCatalog()
	p := testProgress(t)

	cp, _ := catalog.ByID(1)
	if !CheckAnswer(cp.Clue.Answer, "2") {
		t.Fatal("correct answer rejected")
	}

	next, ok := p.NextAfter(1)
	if !ok || next != 2 {
		t.Fatalf("next after 1 = %d %v, want 2", next, ok)
	}
	p.Unlock(next)

	if got := p.StateOf(2); got != StateUnlocked {
		t.Errorf("checkpoint 2 = %s, want unlocked", got)
	}
	if got := p.StateOf(1); got != StateUnlocked {
		t.Errorf("checkpoint 1 = %s, want unlocked (not yet found)", got)
	}
}

func TestIDSetJSONRoundTrip(t *testing.T) {
	s := NewIDSet(3, 1, 2)
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[1,2,3]" {
		t.Errorf("marshal = %s, want sorted [1,2,3]", data)
	}

	var back IDSet
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 3 || !back.Has(2) {
		t.Errorf("round trip lost members: %v", back.IDs())
	}
}
