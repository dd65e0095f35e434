// Package venoms maps venoms to the afflictions they deliver and resolves
// declarative venom plans against a target.
package venoms

import (
	"sort"
	"strings"

	"github.com/nathoo/duelcore/engine/flags"
)

// Effect describes how a venom behaves once it lands.
type Effect uint8

const (
	// Afflicts sets one affliction.
	Afflicts Effect = iota
	// Strips removes a defense before it can afflict (prefarar, delphinium).
	Strips
	// Damages deals flat health damage (camus).
	Damages
	// Breaks cripples one of two limbs at random (epteth, epseth).
	Breaks
)

// Entry is one row of the venom table.
type Entry struct {
	Name       string
	Effect     Effect
	Affliction flags.FType
	// Strip is removed first when present; the affliction only lands when
	// nothing was stripped.
	Strip  flags.FType
	Damage int
	// Limbs are the candidate broken-limb flags for Breaks.
	Limbs []flags.FType
}

var table = map[string]Entry{
	"xentio":     {Effect: Afflicts, Affliction: flags.Clumsiness},
	"kalmia":     {Effect: Afflicts, Affliction: flags.Asthma},
	"gecko":      {Effect: Afflicts, Affliction: flags.Slickness},
	"slike":      {Effect: Afflicts, Affliction: flags.Anorexia},
	"curare":     {Effect: Afflicts, Affliction: flags.Paralysis},
	"aconite":    {Effect: Afflicts, Affliction: flags.Stupidity},
	"monkshood":  {Effect: Afflicts, Affliction: flags.Disloyalty},
	"euphorbia":  {Effect: Afflicts, Affliction: flags.Nausea},
	"larkspur":   {Effect: Afflicts, Affliction: flags.Dizziness},
	"digitalis":  {Effect: Afflicts, Affliction: flags.Shyness},
	"vernalius":  {Effect: Afflicts, Affliction: flags.Weariness},
	"voyria":     {Effect: Afflicts, Affliction: flags.Voyria},
	"darkshade":  {Effect: Afflicts, Affliction: flags.Darkshade},
	"eurypteria": {Effect: Afflicts, Affliction: flags.Recklessness},
	"vardrax":    {Effect: Afflicts, Affliction: flags.Addiction},
	"scytherus":  {Effect: Afflicts, Affliction: flags.ThinBlood},
	"notechis":   {Effect: Afflicts, Affliction: flags.Haemophilia},
	"selarnia":   {Effect: Afflicts, Affliction: flags.Ablaze},
	"prefarar":   {Effect: Strips, Affliction: flags.Sensitivity, Strip: flags.Deafness},
	"delphinium": {Effect: Strips, Affliction: flags.Asleep, Strip: flags.Insomnia},
	"camus":      {Effect: Damages, Damage: 1000},
	"epteth":     {Effect: Breaks, Limbs: []flags.FType{flags.LeftArmBroken, flags.RightArmBroken}},
	"epseth":     {Effect: Breaks, Limbs: []flags.FType{flags.LeftLegBroken, flags.RightLegBroken}},
}

var byAffliction = map[flags.FType]string{}

func init() {
	for name, s := range table {
		s.Name = name
		table[name] = s
		if s.Effect == Afflicts || s.Effect == Strips {
			byAffliction[s.Affliction] = name
		}
	}
}

// Lookup returns the table row for a venom name.
func Lookup(name string) (Entry, bool) {
	s, ok := table[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// For returns the venom that delivers aff.
func For(aff flags.FType) (string, bool) {
	v, ok := byAffliction[aff]
	return v, ok
}

// Names returns every known venom, sorted.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
