// Package flags defines the closed enumeration of afflictions and defenses
// tracked for every agent, and the fixed-size Store that holds them.
//
// Identifiers are plain indices into arrays. Each one is classified once,
// at package initialisation, as either a simple flag (present/absent) or a
// counter (stacking magnitude 0..255). There is no runtime registration.
package flags

// FType identifies one affliction or defense.
type FType uint8

const (
	// Defenses.
	Shielded FType = iota
	Rebounding
	Insomnia
	Deafness
	Blindness
	Cloak
	Speed
	Levitation
	Insulation
	Density
	Thirdeye
	Nightsight
	Temperance
	Fangbarrier
	Deathsight
	Mindseye
	Selfishness
	Truehearing
	Alertness
	Vigor
	Clarity
	Fireresist
	Coldresist
	Electricresist
	Magicresist
	Poisonresist
	Waterbreathing
	Constitution
	Toughness
	Resistance
	Weathering
	Lifevision
	Reflection
	Kola
	Blocking
	Fortify
	Deflect
	Heldbreath
	Metawake
	Mass
	Ghost
	Phased
	Shroud
	Vitality
	Sturdiness
	Scales
	Softfocus
	Barkskin
	Blur
	Hiding
	Secondsight
	Splitmind
	Dodging
	Grip
	Consciousness
	Premonition

	// Mental afflictions.
	Stupidity
	Confusion
	Dementia
	Hallucinations
	Paranoia
	Hatred
	Addiction
	Hypersomnia
	Recklessness
	Dizziness
	Shyness
	Epilepsy
	Impatience
	Dissonance
	Agoraphobia
	Claustrophobia
	Loneliness
	Masochism
	Vertigo
	Generosity
	Pacifism
	Peace
	Justice
	Lovers
	Egocide
	Sadness
	Disloyalty
	Shadowmadness
	Infatuation
	Stuttering
	Indifference
	Hypochondria
	Depression
	Guilt
	Retribution
	Timeloop
	Spiritburn
	Amnesia
	Fear
	Blackout

	// Physical afflictions.
	Paralysis
	Clumsiness
	Weariness
	Asthma
	Anorexia
	Slickness
	Sensitivity
	Nausea
	Darkshade
	Haemophilia
	ThinBlood
	Voyria
	Lethargy
	Healthleech
	Manaleech
	Hypothermia
	Shivering
	Frozen
	Asleep
	Prone
	Stun
	Disrupted
	Unconscious
	Deadening
	Aeon
	Hellsight
	Heartflutter
	Sandrot
	Squelched
	Mirroring
	Crippled
	CrippledBody
	Itching
	Relapsing
	Transfixed
	Webbed
	Impaled
	Entangled
	Bound
	Roped
	Shackled
	Concussion
	CrushedChest
	Heatspear
	Windpipe
	Vomiting
	Void
	Weakvoid
	Muddled
	Superstition
	Besilence
	Gloom
	Lightwound
	Whisperingmadness
	Jinx
	Battered
	Hamstring
	LaceratedThroat
	MildTrauma
	SeriousTrauma
	Hemotoxin
	Neurotoxin
	Cadmuscurse
	Dazed
	Flushings
	Scalded
	Blistered
	Deathmark
	Taintsick
	Exhausted
	Fragile
	Parasite
	Retardation
	Narcolepsy
	Despair
	Temptation
	RingingEars
	NumbedSkin
	BurntEyes
	BlurryVision
	Dread
	Nightmares
	Cursed
	Hexed
	Stormtouched
	Shadowrot
	Thunderstruck
	Writhing
	WritheVines
	Faintness
	Gorged
	Rotting
	Withering
	Calcified
	Spiritdisrupt
	Airdisrupt
	Firedisrupt
	Waterdisrupt
	Earthdisrupt
	Soulburn
	Frostbrand

	// Limb states.
	HeadBroken
	HeadDamaged
	HeadMangled
	HeadDislocated
	TorsoBroken
	TorsoDamaged
	TorsoMangled
	TorsoDislocated
	LeftArmBroken
	LeftArmDamaged
	LeftArmMangled
	LeftArmDislocated
	RightArmBroken
	RightArmDamaged
	RightArmMangled
	RightArmDislocated
	LeftLegBroken
	LeftLegDamaged
	LeftLegMangled
	LeftLegDislocated
	RightLegBroken
	RightLegDamaged
	RightLegMangled
	RightLegDislocated

	// Stacking counters.
	Bleeding
	Ablaze
	Rend
	Deepwound
	Torment
	Pressure
	Intoxicated
	Soulpoison
	Corruption
	Mucous

	// NumFlags is the size of the enumeration. It is not a valid identifier.
	NumFlags
)

var names = [NumFlags]string{
	Shielded:       "shielded",
	Rebounding:     "rebounding",
	Insomnia:       "insomnia",
	Deafness:       "deafness",
	Blindness:      "blindness",
	Cloak:          "cloak",
	Speed:          "speed",
	Levitation:     "levitation",
	Insulation:     "insulation",
	Density:        "density",
	Thirdeye:       "thirdeye",
	Nightsight:     "nightsight",
	Temperance:     "temperance",
	Fangbarrier:    "fangbarrier",
	Deathsight:     "deathsight",
	Mindseye:       "mindseye",
	Selfishness:    "selfishness",
	Truehearing:    "truehearing",
	Alertness:      "alertness",
	Vigor:          "vigor",
	Clarity:        "clarity",
	Fireresist:     "fireresist",
	Coldresist:     "coldresist",
	Electricresist: "electricresist",
	Magicresist:    "magicresist",
	Poisonresist:   "poisonresist",
	Waterbreathing: "waterbreathing",
	Constitution:   "constitution",
	Toughness:      "toughness",
	Resistance:     "resistance",
	Weathering:     "weathering",
	Lifevision:     "lifevision",
	Reflection:     "reflection",
	Kola:           "kola",
	Blocking:       "blocking",
	Fortify:        "fortify",
	Deflect:        "deflect",
	Heldbreath:     "heldbreath",
	Metawake:       "metawake",
	Mass:           "mass",
	Ghost:          "ghost",
	Phased:         "phased",
	Shroud:         "shroud",
	Vitality:       "vitality",
	Sturdiness:     "sturdiness",
	Scales:         "scales",
	Softfocus:      "softfocus",
	Barkskin:       "barkskin",
	Blur:           "blur",
	Hiding:         "hiding",
	Secondsight:    "secondsight",
	Splitmind:      "splitmind",
	Dodging:        "dodging",
	Grip:           "grip",
	Consciousness:  "consciousness",
	Premonition:    "premonition",

	Stupidity:      "stupidity",
	Confusion:      "confusion",
	Dementia:       "dementia",
	Hallucinations: "hallucinations",
	Paranoia:       "paranoia",
	Hatred:         "hatred",
	Addiction:      "addiction",
	Hypersomnia:    "hypersomnia",
	Recklessness:   "recklessness",
	Dizziness:      "dizziness",
	Shyness:        "shyness",
	Epilepsy:       "epilepsy",
	Impatience:     "impatience",
	Dissonance:     "dissonance",
	Agoraphobia:    "agoraphobia",
	Claustrophobia: "claustrophobia",
	Loneliness:     "loneliness",
	Masochism:      "masochism",
	Vertigo:        "vertigo",
	Generosity:     "generosity",
	Pacifism:       "pacifism",
	Peace:          "peace",
	Justice:        "justice",
	Lovers:         "lovers",
	Egocide:        "egocide",
	Sadness:        "sadness",
	Disloyalty:     "disloyalty",
	Shadowmadness:  "shadowmadness",
	Infatuation:    "infatuation",
	Stuttering:     "stuttering",
	Indifference:   "indifference",
	Hypochondria:   "hypochondria",
	Depression:     "depression",
	Guilt:          "guilt",
	Retribution:    "retribution",
	Timeloop:       "timeloop",
	Spiritburn:     "spiritburn",
	Amnesia:        "amnesia",
	Fear:           "fear",
	Blackout:       "blackout",

	Paralysis:         "paralysis",
	Clumsiness:        "clumsiness",
	Weariness:         "weariness",
	Asthma:            "asthma",
	Anorexia:          "anorexia",
	Slickness:         "slickness",
	Sensitivity:       "sensitivity",
	Nausea:            "nausea",
	Darkshade:         "darkshade",
	Haemophilia:       "haemophilia",
	ThinBlood:         "thin_blood",
	Voyria:            "voyria",
	Lethargy:          "lethargy",
	Healthleech:       "healthleech",
	Manaleech:         "manaleech",
	Hypothermia:       "hypothermia",
	Shivering:         "shivering",
	Frozen:            "frozen",
	Asleep:            "asleep",
	Prone:             "prone",
	Stun:              "stun",
	Disrupted:         "disrupted",
	Unconscious:       "unconscious",
	Deadening:         "deadening",
	Aeon:              "aeon",
	Hellsight:         "hellsight",
	Heartflutter:      "heartflutter",
	Sandrot:           "sandrot",
	Squelched:         "squelched",
	Mirroring:         "mirroring",
	Crippled:          "crippled",
	CrippledBody:      "crippled_body",
	Itching:           "itching",
	Relapsing:         "relapsing",
	Transfixed:        "transfixed",
	Webbed:            "webbed",
	Impaled:           "impaled",
	Entangled:         "entangled",
	Bound:             "bound",
	Roped:             "roped",
	Shackled:          "shackled",
	Concussion:        "concussion",
	CrushedChest:      "crushed_chest",
	Heatspear:         "heatspear",
	Windpipe:          "windpipe",
	Vomiting:          "vomiting",
	Void:              "void",
	Weakvoid:          "weakvoid",
	Muddled:           "muddled",
	Superstition:      "superstition",
	Besilence:         "besilence",
	Gloom:             "gloom",
	Lightwound:        "lightwound",
	Whisperingmadness: "whisperingmadness",
	Jinx:              "jinx",
	Battered:          "battered",
	Hamstring:         "hamstring",
	LaceratedThroat:   "lacerated_throat",
	MildTrauma:        "mild_trauma",
	SeriousTrauma:     "serious_trauma",
	Hemotoxin:         "hemotoxin",
	Neurotoxin:        "neurotoxin",
	Cadmuscurse:       "cadmuscurse",
	Dazed:             "dazed",
	Flushings:         "flushings",
	Scalded:           "scalded",
	Blistered:         "blistered",
	Deathmark:         "deathmark",
	Taintsick:         "taintsick",
	Exhausted:         "exhausted",
	Fragile:           "fragile",
	Parasite:          "parasite",
	Retardation:       "retardation",
	Narcolepsy:        "narcolepsy",
	Despair:           "despair",
	Temptation:        "temptation",
	RingingEars:       "ringing_ears",
	NumbedSkin:        "numbed_skin",
	BurntEyes:         "burnt_eyes",
	BlurryVision:      "blurry_vision",
	Dread:             "dread",
	Nightmares:        "nightmares",
	Cursed:            "cursed",
	Hexed:             "hexed",
	Stormtouched:      "stormtouched",
	Shadowrot:         "shadowrot",
	Thunderstruck:     "thunderstruck",
	Writhing:          "writhing",
	WritheVines:       "writhe_vines",
	Faintness:         "faintness",
	Gorged:            "gorged",
	Rotting:           "rotting",
	Withering:         "withering",
	Calcified:         "calcified",
	Spiritdisrupt:     "spiritdisrupt",
	Airdisrupt:        "airdisrupt",
	Firedisrupt:       "firedisrupt",
	Waterdisrupt:      "waterdisrupt",
	Earthdisrupt:      "earthdisrupt",
	Soulburn:          "soulburn",
	Frostbrand:        "frostbrand",

	HeadBroken:         "head_broken",
	HeadDamaged:        "head_damaged",
	HeadMangled:        "head_mangled",
	HeadDislocated:     "head_dislocated",
	TorsoBroken:        "torso_broken",
	TorsoDamaged:       "torso_damaged",
	TorsoMangled:       "torso_mangled",
	TorsoDislocated:    "torso_dislocated",
	LeftArmBroken:      "left_arm_broken",
	LeftArmDamaged:     "left_arm_damaged",
	LeftArmMangled:     "left_arm_mangled",
	LeftArmDislocated:  "left_arm_dislocated",
	RightArmBroken:     "right_arm_broken",
	RightArmDamaged:    "right_arm_damaged",
	RightArmMangled:    "right_arm_mangled",
	RightArmDislocated: "right_arm_dislocated",
	LeftLegBroken:      "left_leg_broken",
	LeftLegDamaged:     "left_leg_damaged",
	LeftLegMangled:     "left_leg_mangled",
	LeftLegDislocated:  "left_leg_dislocated",
	RightLegBroken:     "right_leg_broken",
	RightLegDamaged:    "right_leg_damaged",
	RightLegMangled:    "right_leg_mangled",
	RightLegDislocated: "right_leg_dislocated",

	Bleeding:    "bleeding",
	Ablaze:      "ablaze",
	Rend:        "rend",
	Deepwound:   "deepwound",
	Torment:     "torment",
	Pressure:    "pressure",
	Intoxicated: "intoxicated",
	Soulpoison:  "soulpoison",
	Corruption:  "corruption",
	Mucous:      "mucous",
}

// counters lists every identifier classified as a stacking counter.
var counters = [...]FType{
	Bleeding,
	Ablaze,
	Rend,
	Deepwound,
	Torment,
	Pressure,
	Intoxicated,
	Soulpoison,
	Corruption,
	Mucous,
}

// NumCounters is the number of counter-classified identifiers.
const NumCounters = len(counters)

// idSpace is the number of values an FType can hold.
const idSpace = 1 << 8

var (
	byName       = make(map[string]FType, NumFlags)
	counterIndex [idSpace]int8
	lastDefense  = Premonition
)

func init() {
	for i := range counterIndex {
		counterIndex[i] = -1
	}
	for i, id := range counters {
		counterIndex[id] = int8(i)
	}
	for id := FType(0); id < NumFlags; id++ {
		if names[id] == "" {
			panic("flags: identifier without a name")
		}
		byName[names[id]] = id
	}
}

// String returns the canonical lowercase name of the identifier.
func (f FType) String() string {
	if f >= NumFlags {
		return "invalid"
	}
	return names[f]
}

// IsCounter reports whether f stacks.
func (f FType) IsCounter() bool {
	return counterIndex[f] >= 0
}

// IsDefense reports whether f is a defense rather than an affliction.
func (f FType) IsDefense() bool {
	return f <= lastDefense
}

// FromName looks up an identifier by its canonical name. Spaces are
// accepted in place of underscores ("thin blood" == "thin_blood").
func FromName(name string) (FType, bool) {
	if id, ok := byName[name]; ok {
		return id, true
	}
	id, ok := byName[normalize(name)]
	return id, ok
}

// All returns every identifier in enumeration order.
func All() []FType {
	all := make([]FType, NumFlags)
	for i := range all {
		all[i] = FType(i)
	}
	return all
}

func normalize(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c == ' ' || c == '-':
			b[i] = '_'
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
