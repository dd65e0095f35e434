package agent

import (
	"strings"

	"github.com/nathoo/duelcore/engine/flags"
	"github.com/nathoo/duelcore/types"
)

// Limb identifies one of the six tracked body parts.
type Limb uint8

const (
	Head Limb = iota
	Torso
	LeftArm
	RightArm
	LeftLeg
	RightLeg
	NumLimbs

	// NoLimb is used where a limb is optional, e.g. an empty parry.
	NoLimb = NumLimbs
)

// Limb damage is tracked in hundredths of a percent.
const (
	DamagedThreshold = 3334
	MangledThreshold = 6667
	MaxLimbDamage    = 10000

	RestoreAmount = 3000
	RestoreTime   = 4 * types.Second
)

var limbNames = [NumLimbs]string{
	Head:     "head",
	Torso:    "torso",
	LeftArm:  "left arm",
	RightArm: "right arm",
	LeftLeg:  "left leg",
	RightLeg: "right leg",
}

var limbShort = map[string]Limb{
	"h":  Head,
	"t":  Torso,
	"la": LeftArm,
	"ra": RightArm,
	"ll": LeftLeg,
	"rl": RightLeg,
}

// limbFlags maps a limb to its broken/damaged/mangled/dislocated flags.
var limbFlags = [NumLimbs][4]flags.FType{
	Head:     {flags.HeadBroken, flags.HeadDamaged, flags.HeadMangled, flags.HeadDislocated},
	Torso:    {flags.TorsoBroken, flags.TorsoDamaged, flags.TorsoMangled, flags.TorsoDislocated},
	LeftArm:  {flags.LeftArmBroken, flags.LeftArmDamaged, flags.LeftArmMangled, flags.LeftArmDislocated},
	RightArm: {flags.RightArmBroken, flags.RightArmDamaged, flags.RightArmMangled, flags.RightArmDislocated},
	LeftLeg:  {flags.LeftLegBroken, flags.LeftLegDamaged, flags.LeftLegMangled, flags.LeftLegDislocated},
	RightLeg: {flags.RightLegBroken, flags.RightLegDamaged, flags.RightLegMangled, flags.RightLegDislocated},
}

func (l Limb) String() string {
	if l >= NumLimbs {
		return "none"
	}
	return limbNames[l]
}

// BrokenFlag returns the flag for a crippled (mending-curable) limb.
func (l Limb) BrokenFlag() flags.FType { return limbFlags[l][0] }

// DamagedFlag returns the flag set once damage passes DamagedThreshold.
func (l Limb) DamagedFlag() flags.FType { return limbFlags[l][1] }

// MangledFlag returns the flag set once damage passes MangledThreshold.
func (l Limb) MangledFlag() flags.FType { return limbFlags[l][2] }

// DislocatedFlag returns the dislocation flag for the limb.
func (l Limb) DislocatedFlag() flags.FType { return limbFlags[l][3] }

// LimbFromName parses "left leg", "left_leg", "leftleg" or "ll".
func LimbFromName(name string) (Limb, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if l, ok := limbShort[n]; ok {
		return l, true
	}
	n = strings.NewReplacer("_", " ", "-", " ").Replace(n)
	for l := Limb(0); l < NumLimbs; l++ {
		if limbNames[l] == n || strings.ReplaceAll(limbNames[l], " ", "") == n {
			return l, true
		}
	}
	return NoLimb, false
}

// Limbs returns every tracked limb in order.
func Limbs() []Limb {
	return []Limb{Head, Torso, LeftArm, RightArm, LeftLeg, RightLeg}
}

// LimbState is the damage record of one limb.
type LimbState struct {
	Damage    int        `json:"damage"`
	Restoring types.Time `json:"restoring,omitempty"`
}

// LimbSet holds every limb's record. It is a value type.
type LimbSet [NumLimbs]LimbState

// LimbLevel classifies a damage amount against the thresholds.
func LimbLevel(damage int) (damaged, mangled bool) {
	return damage >= DamagedThreshold, damage >= MangledThreshold
}
