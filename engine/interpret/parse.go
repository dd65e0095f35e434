package interpret

import (
	"strconv"
	"strings"

	"github.com/nathoo/duelcore/engine/agent"
	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/engine/venoms"
	"github.com/nathoo/duelcore/types"
)

// fields splits an annotation on whitespace and commas.
func fields(annotation string) []string {
	return strings.FieldsFunc(strings.ToLower(annotation), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '/'
	})
}

// parseVenoms reads venom names from an annotation such as "curare kalmia".
func parseVenoms(annotation string) ([]string, error) {
	var out []string
	for _, f := range fields(annotation) {
		if _, ok := venoms.Lookup(f); !ok {
			return nil, &UnknownVenomError{Name: f}
		}
		out = append(out, f)
	}
	return out, nil
}

// parseLimb reads a limb name, accepting "left leg", "left_leg" and "ll".
func parseLimb(name string) (agent.Limb, error) {
	l, ok := agent.LimbFromName(name)
	if !ok {
		return agent.NoLimb, &UnknownLimbError{Name: name}
	}
	return l, nil
}

// parseSide turns a bare side into a concrete limb of group: "left" with
// group "leg" is the left leg. A full limb name is also accepted.
func parseSide(annotation, group string) (agent.Limb, error) {
	a := strings.ToLower(strings.TrimSpace(annotation))
	switch a {
	case "left", "right":
		return parseLimb(a + " " + group)
	case "":
		switch group {
		case "head":
			return agent.Head, nil
		case "torso":
			return agent.Torso, nil
		}
	}
	return parseLimb(a)
}

// parseFlag resolves an affliction or defense name.
func parseFlag(name string) (flags.FType, error) {
	f, ok := flags.FromName(strings.TrimSpace(name))
	if !ok {
		return 0, &UnknownAfflictionError{Name: name}
	}
	return f, nil
}

// parseBalance resolves a cooldown channel name.
func parseBalance(name string) (agent.BType, error) {
	b, ok := agent.BalanceFromName(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return 0, &UnknownBalanceError{Name: name}
	}
	return b, nil
}

// parseSeconds reads a duration in seconds, e.g. "4" or "2.5".
func parseSeconds(s string) (types.Time, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return types.Time(v * float64(types.Second)), true
}
