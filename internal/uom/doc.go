// Package uom decodes raw hub status values into semantic values.
//
// The hub reports every point's status as a raw number plus metadata: a
// unit-of-measure (UOM) code and a fixed-point precision digit. Depending
// on the UOM, the same raw number can mean a boolean, an enumerated state
// ("locked", "heating", ...), a percentage, or a scaled physical quantity.
// This package holds the static lookup tables (UOM → unit suffix,
// UOM → state map, Insteon ramp-rate table) and the Normalizer that turns
// a (raw, uom, precision) triple into a Value.
//
// Normalization is a pure function over its inputs and the static tables.
// It never fails: missing or unrecognised metadata degrades to an unknown
// value or a best-effort raw number, never an error.
//
// # Usage
//
//	norm := uom.Normalizer{TemperatureUnit: "°F"}
//	v := norm.Normalize(node.Status, node.EffectiveUOM(), node.Precision, node.TypeCode)
//	if !v.IsUnknown() {
//	    fmt.Println(v.String())
//	}
package uom
