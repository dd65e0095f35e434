package interpret

import "fmt"

// UnknownAfflictionError indicates an observation named an affliction or
// defense outside the enumeration.
type UnknownAfflictionError struct {
	Name string
}

func (e *UnknownAfflictionError) Error() string {
	return fmt.Sprintf("unknown affliction %q", e.Name)
}

// UnknownVenomError indicates an observation named a venom with no table row.
type UnknownVenomError struct {
	Name string
}

func (e *UnknownVenomError) Error() string {
	return fmt.Sprintf("unknown venom %q", e.Name)
}

// UnknownLimbError indicates an observation named a body part we do not track.
type UnknownLimbError struct {
	Name string
}

func (e *UnknownLimbError) Error() string {
	return fmt.Sprintf("unknown limb %q", e.Name)
}

// UnknownBalanceError indicates an observation named a cooldown channel we
// do not track.
type UnknownBalanceError struct {
	Name string
}

func (e *UnknownBalanceError) Error() string {
	return fmt.Sprintf("unknown balance %q", e.Name)
}

// UnknownCureError indicates a cure item with no known effect.
type UnknownCureError struct {
	Kind string
	Item string
}

func (e *UnknownCureError) Error() string {
	return fmt.Sprintf("unknown %s cure %q", e.Kind, e.Item)
}
