// Package engine provides the Step() orchestrator that wires together
// interpretation, branch pruning, planning and prediction for one session.
package engine

import (
	"context"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nathoo/duelcore/engine/actions"
	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/interpret"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/engine/venoms"
	"github.com/nathoo/duelcore/types"
)

// DefaultMaxBranches bounds the hypotheses kept per agent after a slice.
const DefaultMaxBranches = 16

// Options configures a new Engine. Zero values take defaults.
type Options struct {
	Me          string
	Seed        int64
	MaxBranches int
	Profile     *actions.Profile
	Search      combo.SearchOptions
	Registry    *venoms.Registry
	Graders     map[string]*combo.Grader
	Log         logrus.FieldLogger
}

// Engine holds the reconstructed session and the strategy definitions.
type Engine struct {
	Timeline    *timeline.Timeline
	Interpreter *interpret.Interpreter
	Registry    *venoms.Registry
	Graders     map[string]*combo.Grader
	Assembler   *actions.Assembler
	RNG         *RNG
	MaxBranches int
	Log         logrus.FieldLogger
}

// New creates an engine with an empty timeline.
func New(opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.Registry == nil {
		opts.Registry = venoms.NewRegistry()
	}
	if opts.Graders == nil {
		opts.Graders = map[string]*combo.Grader{}
	}
	if opts.MaxBranches <= 0 {
		opts.MaxBranches = DefaultMaxBranches
	}
	tl := timeline.New(log)
	tl.Me = opts.Me
	return &Engine{
		Timeline:    tl,
		Interpreter: interpret.New(log),
		Registry:    opts.Registry,
		Graders:     opts.Graders,
		Assembler:   actions.NewAssembler(opts.Profile, opts.Search, log),
		RNG:         NewRNG(opts.Seed),
		MaxBranches: opts.MaxBranches,
		Log:         log,
	}
}

// RestoreRNG re-creates the RNG from seed and advances to the saved position.
func (e *Engine) RestoreRNG(seed int64, position int64) {
	e.RNG = RestoreRNG(seed, position)
}

// Step applies one time slice and prunes the hypotheses it produced. The
// returned errors are the observations that could not be applied; none of
// them stop the slice.
func (e *Engine) Step(slice *types.TimeSlice) []error {
	// 0. Nothing to apply.
	if slice == nil {
		return nil
	}

	// 1. Interpret the slice.
	errs := e.Timeline.ApplyTimeSlice(slice, e.Interpreter)

	// 2. Drop implausible and excess branches.
	e.Timeline.PruneAll(e.MaxBranches)

	// 3. Report.
	if e.Log != nil {
		e.Log.WithFields(logrus.Fields{
			"time":         slice.Time,
			"observations": len(slice.Observations),
			"skipped":      len(errs),
		}).Debug("slice applied")
	}
	return errs
}

// Strategy resolves a strategy tag. Unknown tags fall back to the default
// venom plan and, when present, the default grader.
func (e *Engine) Strategy(tag string) actions.Strategy {
	s := actions.Strategy{Name: tag, Venoms: e.Registry.Get(tag)}
	if g, ok := e.Graders[tag]; ok {
		s.Grader = g
	} else if g, ok := e.Graders[venoms.DefaultTag]; ok {
		s.Grader = g
	}
	return s
}

// Plan assembles the next command for the controlled agent against target.
// Staff combos the plan sends are recorded with the strategy's grader.
func (e *Engine) Plan(target, tag string) actions.Plan {
	s := e.Strategy(tag)
	plan := e.Assembler.Plan(e.Timeline, e.Timeline.Me, target, s)
	if s.Grader != nil {
		for _, a := range plan.Actions {
			if k, ok := a.(*actions.Kata); ok {
				s.Grader.Record(k.Combo)
			}
		}
	}
	return plan
}

// Predict samples one simulated outcome of a on the current timeline.
func (e *Engine) Predict(a actions.Action) []types.Observation {
	return e.predict(e.Timeline, a)
}

func (e *Engine) predict(tl *timeline.Timeline, a actions.Action) []types.Observation {
	events := a.Simulate(tl)
	if len(events) == 0 {
		return nil
	}
	weights := make([]float64, len(events))
	for i, ev := range events {
		weights[i] = ev.Weight
	}
	return events[e.RNG.WeightedSelect(weights)].Observations
}

// Lookahead plans against target on a copy of the timeline, samples an
// outcome for every planned action and applies them to the copy. The live
// timeline is left untouched.
func (e *Engine) Lookahead(target, tag string) (*timeline.Timeline, actions.Plan) {
	tl := e.Timeline.Clone()
	plan := e.Assembler.Plan(tl, tl.Me, target, e.Strategy(tag))
	slice := &types.TimeSlice{Time: tl.Time, Me: tl.Me}
	for _, a := range plan.Actions {
		slice.Observations = append(slice.Observations, e.predict(tl, a)...)
	}
	tl.ApplyTimeSlice(slice, e.Interpreter)
	return tl, plan
}

// Scorer rates one branch.
type Scorer func(ctx context.Context, a *agent.AgentState) (float64, error)

// Plausibility scores a branch by how little it had to guess.
func Plausibility(_ context.Context, a *agent.AgentState) (float64, error) {
	return 1 / float64(1+a.Strikes+len(a.Guesses())), nil
}

// ScoreBranches runs score over every branch of name concurrently. Scores
// are returned in branch order. The first error cancels the rest.
func (e *Engine) ScoreBranches(ctx context.Context, name string, score Scorer) ([]float64, error) {
	branches := e.Timeline.Branches(name)
	out := make([]float64, len(branches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, b := range branches {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := score(ctx, b)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
