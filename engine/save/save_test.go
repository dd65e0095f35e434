package save

import (
	"encoding/json"
	"testing"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/timeline"
)

func testTimeline() *timeline.Timeline {
	tl := timeline.New(nil)
	tl.Me = "me"
	tl.UpdateTime(500)

	me := tl.Primary("me")
	me.DetectClass(agent.ClassShikudo)
	me.Class = agent.Shikudo{Form: combo.Maelstrom, KataCount: 3}
	me.Balances.Use(agent.Balance, 120)

	foe := tl.Primary("foe")
	foe.Set(flags.Paralysis, true)
	foe.Guess(flags.Clumsiness)
	_ = foe.Flags.TickUp(flags.Ablaze)
	_ = foe.Flags.TickUp(flags.Ablaze)
	foe.SetLimbDamage(agent.LeftLeg, 4000)
	foe.Parrying = agent.Head
	foe.Strike()
	foe.Relapses.Push("curare", 300)
	foe.Class = agent.Zealot{Zenith: 700}
	return tl
}

func TestRoundTrip(t *testing.T) {
	tl := testTimeline()

	data, err := Save(tl, 42, 7)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sd.RNGSeed != 42 || sd.RNGPosition != 7 {
		t.Errorf("rng: got seed %d position %d", sd.RNGSeed, sd.RNGPosition)
	}

	fresh := timeline.New(nil)
	if err := ApplySave(fresh, sd); err != nil {
		t.Fatalf("ApplySave failed: %v", err)
	}

	if fresh.Me != "me" || fresh.Time != 500 {
		t.Errorf("expected me at 500, got %q at %d", fresh.Me, fresh.Time)
	}

	me := fresh.Primary("me")
	sh, ok := me.Class.(agent.Shikudo)
	if !ok || sh.Form != combo.Maelstrom || sh.KataCount != 3 {
		t.Errorf("shikudo state not restored: %#v", me.Class)
	}
	if got := me.Balances.Remaining(agent.Balance); got != 120 {
		t.Errorf("balance: expected 120, got %d", got)
	}

	foe := fresh.Primary("foe")
	if !foe.Is(flags.Paralysis) {
		t.Error("paralysis lost")
	}
	if !foe.Guessed(flags.Clumsiness) {
		t.Error("clumsiness should still be a guess")
	}
	if foe.Guessed(flags.Paralysis) {
		t.Error("paralysis was observed, not guessed")
	}
	if n := foe.Flags.Count(flags.Ablaze); n != 2 {
		t.Errorf("ablaze: expected 2, got %d", n)
	}
	if foe.Limbs[agent.LeftLeg].Damage != 4000 || !foe.Is(flags.LeftLegDamaged) {
		t.Errorf("left leg not restored: %+v", foe.Limbs[agent.LeftLeg])
	}
	if foe.Parrying != agent.Head {
		t.Errorf("parrying: expected head, got %s", foe.Parrying)
	}
	if foe.Strikes != 1 {
		t.Errorf("strikes: expected 1, got %d", foe.Strikes)
	}
	if foe.Relapses.Len() != 1 {
		t.Errorf("relapses: expected 1, got %d", foe.Relapses.Len())
	}
	if z, ok := foe.Class.(agent.Zealot); !ok || z.Zenith != 700 {
		t.Errorf("zealot state not restored: %#v", foe.Class)
	}
}

func TestSave_FlagsAreNamed(t *testing.T) {
	data, err := Save(testTimeline(), 1, 0)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	agents := raw["agents"].(map[string]any)
	foe := agents["foe"].(map[string]any)
	fl := foe["flags"].(map[string]any)
	if fl["paralysis"] != float64(1) {
		t.Errorf("expected paralysis=1, got %v", fl["paralysis"])
	}
	if fl["ablaze"] != float64(2) {
		t.Errorf("expected ablaze=2, got %v", fl["ablaze"])
	}
	if foe["class"] != "zealot" {
		t.Errorf("expected class zealot, got %v", foe["class"])
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	if _, err := Load([]byte("{invalid")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoad_NewerVersion(t *testing.T) {
	if _, err := Load([]byte(`{"version": 99}`)); err == nil {
		t.Fatal("expected error for a newer snapshot")
	}
}

func TestLoad_NilMapsInitialized(t *testing.T) {
	sd, err := Load([]byte(`{"version": 1, "me": "me"}`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sd.Agents == nil {
		t.Error("Agents should not be nil")
	}
}

func TestApplySave_UnknownFlag(t *testing.T) {
	sd := &SaveData{Version: 1, Agents: map[string]AgentData{
		"foe": {Flags: map[string]int{"nosuchflag": 1}},
	}}
	if err := ApplySave(timeline.New(nil), sd); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
