// Package history reads and stores recorded fights: YAML fixtures for
// tests and hand-written scenarios, and a SQLite log of live sessions.
// Both replay into an engine one TimeSlice at a time.
package history

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/duelcore/types"
)

// UnknownKindError is returned when an observation's kind key names no
// known observation type.
type UnknownKindError struct {
	Kind string
	Line int
}

func (e *UnknownKindError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("line %d: observation has no kind", e.Line)
	}
	return fmt.Sprintf("line %d: unknown observation kind %q", e.Line, e.Kind)
}

type decodeFunc func(n *yaml.Node) (types.Observation, error)

func decodeAs[T types.Observation](n *yaml.Node) (types.Observation, error) {
	var v T
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

var decoders = map[types.ObservationKind]decodeFunc{
	types.KindCombatAction:     decodeAs[types.CombatAction],
	types.KindCureAction:       decodeAs[types.CureAction],
	types.KindAfflicted:        decodeAs[types.Afflicted],
	types.KindCured:            decodeAs[types.Cured],
	types.KindDefenseGained:    decodeAs[types.DefenseGained],
	types.KindDefenseStripped:  decodeAs[types.DefenseStripped],
	types.KindBalance:          decodeAs[types.Balance],
	types.KindBalanceRecovered: decodeAs[types.BalanceRecovered],
	types.KindLimbDamage:       decodeAs[types.LimbDamage],
	types.KindLimbQualifier:    decodeAs[types.LimbQualifier],
	types.KindDodge:            decodeAs[types.Dodge],
	types.KindRelapse:          decodeAs[types.Relapse],
	types.KindWieldChange:      decodeAs[types.WieldChange],
	types.KindParry:            decodeAs[types.Parry],
	types.KindHypnoticTrigger:  decodeAs[types.HypnoticTrigger],
	types.KindChannel:          decodeAs[types.Channel],
	types.KindDeath:            decodeAs[types.Death],
}

// decodeObservation reads one mapping tagged with a kind key.
func decodeObservation(n *yaml.Node) (types.Observation, error) {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := n.Decode(&head); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	dec, ok := decoders[types.ObservationKind(head.Kind)]
	if !ok {
		return nil, &UnknownKindError{Kind: head.Kind, Line: n.Line}
	}
	o, err := dec(n)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", n.Line, head.Kind, err)
	}
	return o, nil
}

// ParseObservation decodes a single observation, usually a YAML flow
// mapping such as {kind: afflicted, who: foe, affliction: asthma}.
func ParseObservation(src string) (types.Observation, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		return nil, fmt.Errorf("decoding observation: %w", err)
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = *n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("observation must be a mapping")
	}
	return decodeObservation(&n)
}

// encodeObservation writes o as a mapping whose first key is its kind.
func encodeObservation(o types.Observation) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(o); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", o.Kind(), err)
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("encoding %s: not a mapping", o.Kind())
	}
	kind := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "kind"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(o.Kind())},
	}
	n.Content = append(kind, n.Content...)
	return &n, nil
}

// sliceDoc is the YAML form of a TimeSlice.
type sliceDoc struct {
	types.TimeSlice `yaml:",inline"`
	Observations    []yaml.Node `yaml:"observations,omitempty"`
}

func (d *sliceDoc) slice() (types.TimeSlice, error) {
	ts := d.TimeSlice
	ts.Observations = make([]types.Observation, 0, len(d.Observations))
	for i := range d.Observations {
		o, err := decodeObservation(&d.Observations[i])
		if err != nil {
			return types.TimeSlice{}, err
		}
		ts.Observations = append(ts.Observations, o)
	}
	return ts, nil
}

func newSliceDoc(ts types.TimeSlice) (*sliceDoc, error) {
	d := &sliceDoc{TimeSlice: ts}
	d.TimeSlice.Observations = nil
	for _, o := range ts.Observations {
		n, err := encodeObservation(o)
		if err != nil {
			return nil, err
		}
		d.Observations = append(d.Observations, *n)
	}
	return d, nil
}

// MarshalSlice encodes one TimeSlice as YAML.
func MarshalSlice(ts types.TimeSlice) ([]byte, error) {
	d, err := newSliceDoc(ts)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(d)
}

// UnmarshalSlice decodes one TimeSlice written by MarshalSlice.
func UnmarshalSlice(data []byte) (types.TimeSlice, error) {
	var d sliceDoc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return types.TimeSlice{}, fmt.Errorf("decoding slice: %w", err)
	}
	return d.slice()
}
