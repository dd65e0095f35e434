package actions

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/combo"
	"github.com/nathoo/duelcore/engine/timeline"
)

// Plan is an assembled outbound command.
type Plan struct {
	// Parry is prepended when the guarded limb should change.
	Parry string
	// Commands are sent now, in channel order.
	Commands []string
	// Queued fire once the channels claimed by Commands come back.
	Queued []string
	// Actions are the actions that produced Commands and Queued, in order.
	Actions []Action
	// Skipped holds why candidate actions were passed over.
	Skipped []error

	separator string
}

// String joins the plan into the single line sent to the game.
func (p Plan) String() string {
	parts := make([]string, 0, len(p.Commands)+len(p.Queued)+1)
	if p.Parry != "" {
		parts = append(parts, p.Parry)
	}
	parts = append(parts, p.Commands...)
	parts = append(parts, p.Queued...)
	return strings.Join(parts, p.separator)
}

// Empty reports whether the plan sends nothing.
func (p Plan) Empty() bool {
	return p.Parry == "" && len(p.Commands) == 0 && len(p.Queued) == 0
}

// Assembler combines the per-channel sub-plans into one command.
type Assembler struct {
	Profile *Profile
	Search  combo.SearchOptions
	log     logrus.FieldLogger
}

// NewAssembler returns an assembler using profile. A nil profile uses
// DefaultProfile.
func NewAssembler(profile *Profile, search combo.SearchOptions, log logrus.FieldLogger) *Assembler {
	if profile == nil {
		profile = DefaultProfile()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{Profile: profile, Search: search, log: log}
}

// Plan builds the next command for me against target. Channels are
// resolved in order; the first candidate of each channel that acts wins.
// An action needing a channel an earlier command already claimed is
// queued behind it instead.
func (a *Assembler) Plan(tl *timeline.Timeline, me, target string, strategy Strategy) Plan {
	s := &Situation{TL: tl, Me: me, Target: target, Strategy: strategy, Profile: a.Profile, Search: a.Search}
	plan := Plan{separator: a.Profile.Separator}
	planners := SubPlanners(tl.Primary(me).ClassOf())
	var claimed [agent.NumBalances]bool

	for ch := Channel(0); ch < NumChannels; ch++ {
		for _, act := range planners[ch](s) {
			cmd, err := act.Act(tl)
			if err != nil {
				var ia *InapplicableActionError
				if !errors.As(err, &ia) {
					a.log.WithFields(logrus.Fields{
						"channel": ch.String(),
						"action":  act.Name(),
						"error":   err,
					}).Warn("action failed")
				}
				plan.Skipped = append(plan.Skipped, err)
				continue
			}
			plan.Actions = append(plan.Actions, act)
			if overlaps(claimed, act.Uses()) {
				plan.Queued = append(plan.Queued, a.Profile.QueuePrefix+cmd)
			} else {
				plan.Commands = append(plan.Commands, cmd)
				for _, u := range act.Uses() {
					claimed[u] = true
				}
			}
			break
		}
	}

	if p := a.parry(tl, me); p != nil {
		if cmd, err := p.Act(tl); err == nil {
			plan.Parry = cmd
			plan.Actions = append([]Action{p}, plan.Actions...)
		}
	}
	return plan
}

func overlaps(claimed [agent.NumBalances]bool, uses []agent.BType) bool {
	for _, u := range uses {
		if claimed[u] {
			return true
		}
	}
	return false
}

// parry returns a parry of the limb last attacked on me when it differs
// from the one held.
func (a *Assembler) parry(tl *timeline.Timeline, me string) *Parry {
	hint, ok := tl.GetPlayerHint(me, timeline.HintLastAttack)
	if !ok {
		return nil
	}
	l, ok := agent.LimbFromName(hint)
	if !ok {
		return nil
	}
	st := tl.Primary(me)
	if st.Parrying == l || !st.CanParry() {
		return nil
	}
	return NewParry(a.Profile, me, l)
}
