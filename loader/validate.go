package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/venoms"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Commands the planner renders. A profile may only template these.
var knownCommands = map[string]bool{
	"doublestab": true, "bite": true, "flay": true,
	"hypnotise": true, "suggest": true, "seal": true, "snap": true,
	"pummel": true, "wanekick": true, "zenith": true, "pyromania": true, "hackles": true,
	"kata": true, "shrug": true, "parry": true,
}

// validate checks the compiled strategies for consistency. Warnings are
// stored on st.
func validate(st *Strategies) error {
	ve := &ValidationError{}

	// Profile.
	if st.Profile.Separator == "" {
		ve.Errors = append(ve.Errors, "Profile.separator must not be empty")
	}
	for _, name := range sortedKeys(st.Profile.Commands) {
		if !knownCommands[name] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"profile command %q is not used by any action", name))
		}
	}

	// Plans: every affliction a plan can stick needs a venom.
	for _, tag := range sortedKeys(st.Plans) {
		validatePlan(tag, st.Plans[tag], ve)
	}
	if _, ok := st.Plans[venoms.DefaultTag]; !ok {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"no %q venom plan defined, using the built-in one", venoms.DefaultTag))
	}

	// Graders.
	for _, tag := range sortedKeys(st.Graders) {
		g := st.Graders[tag]
		if g.ReusePenalty < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"grader %q reuse_penalty must not be negative", tag))
		}
		if _, ok := st.Plans[tag]; !ok && tag != venoms.DefaultTag {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"grader %q has no venom plan of the same name", tag))
		}
	}

	st.Warnings = ve.Warnings
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validatePlan(tag string, p venoms.Plan, ve *ValidationError) {
	check := func(f flags.FType) {
		if _, ok := venoms.For(f); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"venom plan %q sticks %s, which no venom delivers", tag, f))
		}
	}
	for _, n := range p {
		switch n := n.(type) {
		case venoms.Stick:
			check(n.Aff)
		case venoms.OneOf:
			check(n.Primary)
			check(n.Secondary)
		case venoms.OnTree:
			check(n.Aff)
		case venoms.OffTree:
			check(n.Aff)
		case venoms.IfDo:
			validatePlan(tag, n.Plan, ve)
		case venoms.IfNotDo:
			validatePlan(tag, n.Plan, ve)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
