// Package types defines the shared data structures for the duelcore engine.
// This package contains only type definitions and trivial kind accessors, no logic.
package types

// Time is a point on the session clock, in hundredths of a second.
type Time int64

// Second is one second on the session clock.
const Second Time = 100

// ObservationKind names the concrete type of an Observation.
type ObservationKind string

const (
	KindCombatAction     ObservationKind = "combat_action"
	KindCureAction       ObservationKind = "cure_action"
	KindAfflicted        ObservationKind = "afflicted"
	KindCured            ObservationKind = "cured"
	KindDefenseGained    ObservationKind = "defense_gained"
	KindDefenseStripped  ObservationKind = "defense_stripped"
	KindBalance          ObservationKind = "balance"
	KindBalanceRecovered ObservationKind = "balance_recovered"
	KindLimbDamage       ObservationKind = "limb_damage"
	KindLimbQualifier    ObservationKind = "limb_qualifier"
	KindDodge            ObservationKind = "dodge"
	KindRelapse          ObservationKind = "relapse"
	KindWieldChange      ObservationKind = "wield_change"
	KindParry            ObservationKind = "parry"
	KindHypnoticTrigger  ObservationKind = "hypnotic_trigger"
	KindChannel          ObservationKind = "channel"
	KindDeath            ObservationKind = "death"
)

// Observation is one typed game event produced by an external parser.
// Observations are immutable once constructed.
type Observation interface {
	Kind() ObservationKind
}

// CombatAction is a skill used by Caster, optionally against Target.
// Annotation carries skill-specific detail such as the venoms on a blade.
type CombatAction struct {
	Caster     string `yaml:"caster" json:"caster"`
	Category   string `yaml:"category" json:"category"`
	Skill      string `yaml:"skill" json:"skill"`
	Annotation string `yaml:"annotation,omitempty" json:"annotation,omitempty"`
	Target     string `yaml:"target,omitempty" json:"target,omitempty"`
}

// CureKind identifies the curing channel a CureAction used.
type CureKind string

const (
	CurePill    CureKind = "pill"
	CureSalve   CureKind = "salve"
	CureSmoke   CureKind = "smoke"
	CureTree    CureKind = "tree"
	CureFocus   CureKind = "focus"
	CureFitness CureKind = "fitness"
	CureShrug   CureKind = "shrug"
)

// CureAction is an observed attempt to cure, e.g. eating an herb or
// applying a salve to a location.
type CureAction struct {
	Caster   string   `yaml:"caster" json:"caster"`
	Cure     CureKind `yaml:"cure" json:"cure"`
	Item     string   `yaml:"item,omitempty" json:"item,omitempty"`
	Location string   `yaml:"location,omitempty" json:"location,omitempty"`
}

// Afflicted reports that Who gained an affliction.
type Afflicted struct {
	Who        string `yaml:"who" json:"who"`
	Affliction string `yaml:"affliction" json:"affliction"`
}

// Cured reports that Who lost an affliction.
type Cured struct {
	Who        string `yaml:"who" json:"who"`
	Affliction string `yaml:"affliction" json:"affliction"`
}

// DefenseGained reports that Who raised a defense.
type DefenseGained struct {
	Who     string `yaml:"who" json:"who"`
	Defense string `yaml:"defense" json:"defense"`
}

// DefenseStripped reports that Who lost a defense.
type DefenseStripped struct {
	Who     string `yaml:"who" json:"who"`
	Defense string `yaml:"defense" json:"defense"`
}

// Balance reports an explicit duration for a balance channel.
type Balance struct {
	Who      string `yaml:"who" json:"who"`
	Channel  string `yaml:"channel" json:"channel"`
	Duration Time   `yaml:"duration" json:"duration"`
}

// BalanceRecovered reports that a balance channel came back.
type BalanceRecovered struct {
	Who     string `yaml:"who" json:"who"`
	Channel string `yaml:"channel" json:"channel"`
}

// LimbDamage reports the authoritative accumulated damage on a limb in
// hundredths of a percent (0..10000).
type LimbDamage struct {
	Who    string `yaml:"who" json:"who"`
	Limb   string `yaml:"limb" json:"limb"`
	Damage int    `yaml:"damage" json:"damage"`
}

// LimbLevel is the qualifier the game prints when a limb crosses a threshold.
type LimbLevel string

const (
	LimbDamaged LimbLevel = "damaged"
	LimbMangled LimbLevel = "mangled"
)

// LimbQualifier confirms that a limb became damaged or mangled.
type LimbQualifier struct {
	Who   string    `yaml:"who" json:"who"`
	Limb  string    `yaml:"limb" json:"limb"`
	Level LimbLevel `yaml:"level" json:"level"`
}

// DodgeType qualifies how an attack failed to connect.
type DodgeType string

const (
	DodgeDodge     DodgeType = "dodge"
	DodgeMiss      DodgeType = "miss"
	DodgeParry     DodgeType = "parry"
	DodgeAbsorb    DodgeType = "absorb"
	DodgeRebounded DodgeType = "rebounded"
	DodgePurge     DodgeType = "purge"
)

// Dodge reports that Who avoided (part of) the preceding attack.
type Dodge struct {
	Who  string    `yaml:"who" json:"who"`
	Type DodgeType `yaml:"type" json:"type"`
}

// Relapse reports that one queued venom resurfaced on Who.
type Relapse struct {
	Who string `yaml:"who" json:"who"`
}

// WieldChange reports what Who holds after wielding or unwielding.
type WieldChange struct {
	Who       string `yaml:"who" json:"who"`
	Left      string `yaml:"left,omitempty" json:"left,omitempty"`
	Right     string `yaml:"right,omitempty" json:"right,omitempty"`
	TwoHanded bool   `yaml:"two_handed,omitempty" json:"two_handed,omitempty"`
}

// Parry reports the limb Who is now guarding. An empty Limb means none.
type Parry struct {
	Who  string `yaml:"who" json:"who"`
	Limb string `yaml:"limb,omitempty" json:"limb,omitempty"`
}

// HypnoticTrigger reports that an active hypnosis fired one suggestion on Who.
type HypnoticTrigger struct {
	Who string `yaml:"who" json:"who"`
}

// Channel reports that Who began channelling Name for Duration. A zero
// Duration means the channel ended or was interrupted.
type Channel struct {
	Who      string `yaml:"who" json:"who"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Duration Time   `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// Death reports that Who died; their tracked state resets.
type Death struct {
	Who string `yaml:"who" json:"who"`
}

func (CombatAction) Kind() ObservationKind     { return KindCombatAction }
func (CureAction) Kind() ObservationKind       { return KindCureAction }
func (Afflicted) Kind() ObservationKind        { return KindAfflicted }
func (Cured) Kind() ObservationKind            { return KindCured }
func (DefenseGained) Kind() ObservationKind    { return KindDefenseGained }
func (DefenseStripped) Kind() ObservationKind  { return KindDefenseStripped }
func (Balance) Kind() ObservationKind          { return KindBalance }
func (BalanceRecovered) Kind() ObservationKind { return KindBalanceRecovered }
func (LimbDamage) Kind() ObservationKind       { return KindLimbDamage }
func (LimbQualifier) Kind() ObservationKind    { return KindLimbQualifier }
func (Dodge) Kind() ObservationKind            { return KindDodge }
func (Relapse) Kind() ObservationKind          { return KindRelapse }
func (WieldChange) Kind() ObservationKind      { return KindWieldChange }
func (Parry) Kind() ObservationKind            { return KindParry }
func (HypnoticTrigger) Kind() ObservationKind  { return KindHypnoticTrigger }
func (Channel) Kind() ObservationKind          { return KindChannel }
func (Death) Kind() ObservationKind            { return KindDeath }

// PromptStats are the authoritative vitals shown on the controlled agent's prompt.
type PromptStats struct {
	Health    int `yaml:"health" json:"health"`
	MaxHealth int `yaml:"max_health" json:"max_health"`
	Mana      int `yaml:"mana" json:"mana"`
	MaxMana   int `yaml:"max_mana" json:"max_mana"`
	Spirit    int `yaml:"spirit" json:"spirit"`
	MaxSpirit int `yaml:"max_spirit" json:"max_spirit"`
	Sips      int `yaml:"sips,omitempty" json:"sips,omitempty"`
	Shields   int `yaml:"shields,omitempty" json:"shields,omitempty"`
}

// Prompt is the status line captured with a TimeSlice. Either part may be absent.
type Prompt struct {
	Stats        *PromptStats `yaml:"stats,omitempty" json:"stats,omitempty"`
	Target       string       `yaml:"target,omitempty" json:"target,omitempty"`
	TargetHealth *int         `yaml:"target_health,omitempty" json:"target_health,omitempty"`
}

// TimeSlice is every Observation captured within one atomic game update.
type TimeSlice struct {
	Observations []Observation `yaml:"-" json:"-"`
	Lines        []string      `yaml:"lines,omitempty" json:"lines,omitempty"`
	Prompt       Prompt        `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Time         Time          `yaml:"time" json:"time"`
	Me           string        `yaml:"me" json:"me"`
}

// ProbableEvent is one weighted outcome of a simulated action.
type ProbableEvent struct {
	Weight       float64
	Observations []Observation
}
