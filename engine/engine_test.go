package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nathoo/duelcore/engine/actions"
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/interpret"
	"github.com/nathoo/duelcore/types"
)

func newTestEngine(t *testing.T) (*Engine, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return New(Options{Me: "me", Seed: 42, Log: log}), hook
}

func stab(at types.Time, venoms string, extra ...types.Observation) *types.TimeSlice {
	obs := []types.Observation{
		types.CombatAction{Caster: "me", Category: "serpent", Skill: "doublestab", Annotation: venoms, Target: "foe"},
	}
	return &types.TimeSlice{Me: "me", Time: at, Observations: append(obs, extra...)}
}

// --- Step ---

func TestStep_AppliesSlice(t *testing.T) {
	e, _ := newTestEngine(t)

	if errs := e.Step(stab(100, "curare kalmia")); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	foe := e.Timeline.Primary("foe")
	if !foe.Is(flags.Paralysis) || !foe.Is(flags.Asthma) {
		t.Errorf("expected paralysis and asthma, got %v", foe.Flags.Afflictions())
	}
	if e.Timeline.Time != 100 {
		t.Errorf("expected clock 100, got %d", e.Timeline.Time)
	}
}

func TestStep_NilSlice(t *testing.T) {
	e, _ := newTestEngine(t)
	if errs := e.Step(nil); errs != nil {
		t.Fatalf("expected nil, got %v", errs)
	}
}

func TestStep_UnresolvableObservationIsSkipped(t *testing.T) {
	e, hook := newTestEngine(t)

	errs := e.Step(&types.TimeSlice{Me: "me", Time: 10, Observations: []types.Observation{
		types.Afflicted{Who: "foe", Affliction: "nosuchthing"},
		types.Afflicted{Who: "foe", Affliction: "clumsiness"},
	}})

	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	var unknown *interpret.UnknownAfflictionError
	if !errors.As(errs[0], &unknown) {
		t.Fatalf("expected UnknownAfflictionError, got %T", errs[0])
	}
	if !e.Timeline.Primary("foe").Is(flags.Clumsiness) {
		t.Error("later observation should still apply")
	}

	warned := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning for the skipped observation")
	}
}

func TestStep_PrunesToMaxBranches(t *testing.T) {
	e, _ := newTestEngine(t)
	e.MaxBranches = 2

	// Hackles without confirmation forks once per candidate.
	e.Step(&types.TimeSlice{Me: "me", Time: 10, Observations: []types.Observation{
		types.CombatAction{Caster: "me", Category: "zealot", Skill: "hackles", Target: "foe"},
	}})

	if n := len(e.Timeline.Branches("foe")); n != 2 {
		t.Fatalf("expected 2 branches after pruning, got %d", n)
	}
}

// --- Determinism ---

func TestReplay_Deterministic(t *testing.T) {
	slices := func() []*types.TimeSlice {
		return []*types.TimeSlice{
			stab(100, "curare kalmia"),
			{Me: "me", Time: 200, Observations: []types.Observation{
				types.CombatAction{Caster: "me", Category: "zealot", Skill: "hackles", Target: "foe"},
			}},
			stab(450, "xentio slike", types.Dodge{Who: "foe", Type: types.DodgeDodge}),
			{Me: "me", Time: 600, Observations: []types.Observation{
				types.CureAction{Caster: "foe", Cure: types.CurePill, Item: "bloodroot"},
			}},
		}
	}

	a, _ := newTestEngine(t)
	b, _ := newTestEngine(t)
	for _, s := range slices() {
		a.Step(s)
	}
	for _, s := range slices() {
		b.Step(s)
	}

	opts := cmp.Options{
		cmp.AllowUnexported(agent.AgentState{}, flags.Store{}),
		cmpopts.IgnoreFields(agent.AgentState{}, "ID"),
	}
	for _, name := range []string{"me", "foe"} {
		if diff := cmp.Diff(a.Timeline.Branches(name), b.Timeline.Branches(name), opts); diff != "" {
			t.Errorf("%s diverged (-a +b):\n%s", name, diff)
		}
	}
}

// --- Planning ---

func TestPlan_UsesRegistryFallback(t *testing.T) {
	e, _ := newTestEngine(t)

	plan := e.Plan("foe", "no-such-strategy")
	if got := plan.String(); !strings.HasPrefix(got, "dstab foe xentio vernalius") {
		t.Errorf("unexpected plan %q", got)
	}
}

func TestPlan_RecordsKataWithGrader(t *testing.T) {
	e, _ := newTestEngine(t)
	g := &combo.Grader{Name: "aggro", FirstUseBonus: 1, LimbBonus: 1}
	e.Graders["aggro"] = g
	e.Timeline.Primary("me").DetectClass(agent.ClassShikudo)

	plan := e.Plan("foe", "aggro")
	if len(plan.Actions) == 0 {
		t.Fatal("expected a kata")
	}
	k, ok := plan.Actions[0].(*actions.Kata)
	if !ok {
		t.Fatalf("expected *actions.Kata, got %T", plan.Actions[0])
	}
	for _, a := range k.Combo.Attacks {
		if g.Used[a.Name] == 0 {
			t.Errorf("attack %s not recorded", a.Name)
		}
	}
}

func TestLookahead_LeavesLiveTimeline(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Timeline.Primary("foe").Dodge.Dodged() // no dodge chance: the hit is certain

	predicted, plan := e.Lookahead("foe", "aggro")
	if plan.Empty() {
		t.Fatal("expected a plan")
	}
	if !predicted.Primary("foe").Is(flags.Clumsiness) {
		t.Error("predicted timeline should carry the stab's venoms")
	}
	if e.Timeline.Primary("foe").Is(flags.Clumsiness) {
		t.Error("live timeline must not change")
	}
	if _, ok := e.Timeline.GetPlayerHint("me", "last_venoms"); ok {
		t.Error("lookahead must not leave hints on the live timeline")
	}
}

func TestPredict_IsReproducible(t *testing.T) {
	a, _ := newTestEngine(t)
	b, _ := newTestEngine(t)
	act := actions.NewDoublestab(a.Assembler.Profile, "me", "foe", "curare", "kalmia")

	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(a.Predict(act), b.Predict(act)); diff != "" {
			t.Fatalf("prediction %d diverged:\n%s", i, diff)
		}
	}
	if a.RNG.Position() != 10 {
		t.Errorf("expected RNG position 10, got %d", a.RNG.Position())
	}
}

// --- Branch scoring ---

func TestScoreBranches(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Step(&types.TimeSlice{Me: "me", Time: 10, Observations: []types.Observation{
		types.CombatAction{Caster: "me", Category: "zealot", Skill: "hackles", Target: "foe"},
	}})
	e.Timeline.Branches("foe")[0].Strike()

	scores, err := e.ScoreBranches(context.Background(), "foe", Plausibility)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != len(e.Timeline.Branches("foe")) {
		t.Fatalf("expected one score per branch, got %d", len(scores))
	}
	if scores[0] >= scores[1] {
		t.Errorf("struck branch should score lower: %v", scores)
	}
}

func TestScoreBranches_Error(t *testing.T) {
	e, _ := newTestEngine(t)
	boom := errors.New("boom")

	_, err := e.ScoreBranches(context.Background(), "foe", func(context.Context, *agent.AgentState) (float64, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
