package uom

import "strconv"

// Kind discriminates the semantic interpretations of a normalized value.
type Kind int

// Value kinds.
const (
	// KindUnknown means the raw value was absent or the unknown sentinel.
	KindUnknown Kind = iota

	// KindBool is an on/off style boolean.
	KindBool

	// KindNumber is a scaled numeric quantity, possibly with a unit.
	KindNumber

	// KindLabel is an enumerated state label.
	KindLabel
)

// Value is the semantic decoding of a raw hub status.
//
// Exactly one of Bool, Number, or Label is meaningful, selected by Kind.
// Unit is only set for KindNumber and may be empty for unitless values.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Label  string
	Unit   string
}

// Unknown returns the unknown value.
func Unknown() Value {
	return Value{Kind: KindUnknown}
}

// Boolean returns a boolean value. Booleans carry no unit.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Number returns a numeric value with an optional unit suffix.
func Number(v float64, unit string) Value {
	return Value{Kind: KindNumber, Number: v, Unit: unit}
}

// Label returns an enumerated state label.
func Label(s string) Value {
	return Value{Kind: KindLabel, Label: s}
}

// IsUnknown reports whether the value is the unknown value.
func (v Value) IsUnknown() bool {
	return v.Kind == KindUnknown
}

// String renders the value for logs and wire payloads.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "on"
		}
		return "off"
	case KindNumber:
		s := strconv.FormatFloat(v.Number, 'f', -1, 64)
		if v.Unit != "" {
			return s + " " + v.Unit
		}
		return s
	case KindLabel:
		return v.Label
	default:
		return "unknown"
	}
}
