// Package actions turns planner decisions into outbound commands.
//
// An Action can be simulated, producing weighted predictions of the
// observations it would cause, or acted, producing the command text. Act
// fails with an InapplicableActionError when a channel the action consumes
// is not available.
package actions

import (
	"fmt"
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/timeline"
	"github.com/nathoo/duelcore/types"
)

// Action is one command the controlled agent could send.
type Action interface {
	Name() string
	// Uses lists the cooldown channels the action needs free.
	Uses() []agent.BType
	Simulate(tl *timeline.Timeline) []types.ProbableEvent
	Act(tl *timeline.Timeline) (string, error)
}

// InapplicableActionError is returned by Act when a needed channel is busy.
type InapplicableActionError struct {
	Action    string
	Channel   agent.BType
	Remaining types.Time
}

func (e *InapplicableActionError) Error() string {
	return fmt.Sprintf("%s: %s not ready for %.2fs", e.Action, e.Channel, float64(e.Remaining)/float64(types.Second))
}

// base carries what every action shares.
type base struct {
	name   string
	caster string
	target string
	uses   []agent.BType
	p      *Profile
}

func (b base) Name() string        { return b.name }
func (b base) Uses() []agent.BType { return b.uses }

// ready checks the caster's most plausible branch for every needed channel.
func (b base) ready(tl *timeline.Timeline) error {
	me := tl.Primary(b.caster)
	for _, u := range b.uses {
		if !me.Balances.Ready(u) {
			return &InapplicableActionError{Action: b.name, Channel: u, Remaining: me.Balances.Remaining(u)}
		}
	}
	return nil
}

func (b base) render(vars ...string) string {
	return b.p.Render(b.name, append([]string{"target", b.target}, vars...)...)
}

// Profile shapes command text. It is loaded from the strategy files.
type Profile struct {
	// Separator joins commands sent in one line.
	Separator string
	// QueuePrefix is put in front of commands deferred until the channels
	// claimed by earlier commands come back.
	QueuePrefix string
	// Commands maps an action name to a template. Placeholders look like
	// {target}.
	Commands map[string]string
}

// DefaultProfile is used when no profile is loaded.
func DefaultProfile() *Profile {
	return &Profile{
		Separator:   "/",
		QueuePrefix: "queue add eqbal ",
		Commands: map[string]string{
			"doublestab": "dstab {target} {venom1} {venom2}",
			"bite":       "bite {target} {venom1}",
			"flay":       "flay {target} {defense}",
			"hypnotise":  "hypnotise {target}",
			"suggest":    "suggest {target} {suggestion}",
			"seal":       "seal {target} {seconds}",
			"snap":       "snap {target}",
			"pummel":     "pummel {target} {limb}",
			"wanekick":   "wanekick {target} {side}",
			"zenith":     "zenith",
			"pyromania":  "pyromania",
			"hackles":    "hackles {target}",
			"kata":       "kata {target} {attacks} {venom1}",
			"shrug":      "shrugging",
			"parry":      "parry {limb}",
		},
	}
}

// Render fills the template for name from key/value pairs. Unknown names
// render as the name followed by the values.
func (p *Profile) Render(name string, kv ...string) string {
	tmpl, ok := p.Commands[name]
	if !ok {
		parts := []string{name}
		for i := 1; i < len(kv); i += 2 {
			if kv[i] != "" {
				parts = append(parts, kv[i])
			}
		}
		return strings.Join(parts, " ")
	}
	pairs := make([]string, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		pairs = append(pairs, "{"+kv[i]+"}", kv[i+1])
	}
	return strings.Join(strings.Fields(strings.NewReplacer(pairs...).Replace(tmpl)), " ")
}

// dodgeChance is the predicted chance the target avoids a melee attack.
func dodgeChance(tl *timeline.Timeline, target string) float64 {
	if tl.Primary(target).Dodge.Ready() {
		return 0.25
	}
	return 0
}

// hitOrMiss predicts an attack that either lands or is dodged.
func hitOrMiss(tl *timeline.Timeline, act types.CombatAction) []types.ProbableEvent {
	p := dodgeChance(tl, act.Target)
	hit := types.ProbableEvent{Weight: 1 - p, Observations: []types.Observation{act}}
	if p == 0 {
		return []types.ProbableEvent{hit}
	}
	miss := types.ProbableEvent{Weight: p, Observations: []types.Observation{act, types.Dodge{Who: act.Target, Type: types.DodgeDodge}}}
	return []types.ProbableEvent{hit, miss}
}

// certain predicts a single outcome.
func certain(obs ...types.Observation) []types.ProbableEvent {
	return []types.ProbableEvent{{Weight: 1, Observations: obs}}
}
