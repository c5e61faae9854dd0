package uom

import (
	"math"
	"strconv"
	"strings"
)

// byteLevelMax is the raw range ceiling for the ByteLevel UOM.
const byteLevelMax = 255

// Normalizer converts raw hub status values into semantic values.
//
// The zero value is usable; TemperatureUnit defaults to empty, which
// renders half-degree temperatures without a suffix.
type Normalizer struct {
	// TemperatureUnit is the configured display unit ("°C" or "°F")
	// applied to the half-degree temperature convention. The hub does
	// not report which unit the doubled value is in.
	TemperatureUnit string
}

// Normalize decodes a raw status value given its UOM code, precision
// digit, and the owning device's type code.
//
// The decoding steps are ordered; the first applicable one wins:
//
//  1. nil raw or the unknown sentinel → Unknown
//  2. boolean code → Boolean, unit cleared
//  3. byte-level code → round(raw/255*100) as a percentage
//  4. half-degree temperature codes → raw/2 to one decimal
//  5. Index code on an Insteon dimmer/relay family → ramp-rate seconds
//  6. enumerated code → state label, unknown raw falls back to the number
//  7. non-zero precision → decimal point shifted left by that many digits
//  8. otherwise the raw number as-is
//
// Callers with a legacy state-list UOM should pass the first list element
// (hub.Node.EffectiveUOM does this).
//
// Normalize never fails; absent metadata degrades to a best-effort value.
func (n Normalizer) Normalize(raw *float64, uomCode, precision, typeCode string) Value {
	if raw == nil || math.IsInf(*raw, -1) {
		return Unknown()
	}
	value := *raw

	switch uomCode {
	case OnOff:
		return Boolean(value != 0)
	case ByteLevel:
		return Number(math.Round(value/byteLevelMax*100), FriendlyUnit[Percent])
	case DoubleTemp, LegacyDegrees:
		return Number(roundTo(value/2.0, 1), n.TemperatureUnit)
	case Index:
		if strings.HasPrefix(typeCode, insteonDimmerPrefix) ||
			strings.HasPrefix(typeCode, insteonRelayPrefix) {
			if seconds, ok := InsteonRampRates[int(value)]; ok {
				return Number(seconds, FriendlyUnit["57"])
			}
		}
	}

	if states, ok := States[uomCode]; ok {
		if label, ok := states[int(value)]; ok {
			return Label(label)
		}
		// Enumerated code with an unlisted raw value: report the raw
		// number rather than guessing a label.
		return Number(value, "")
	}

	if p := parsePrecision(precision); p > 0 {
		return Number(roundTo(value/math.Pow10(p), p), FriendlyUnit[uomCode])
	}

	return Number(value, FriendlyUnit[uomCode])
}

// parsePrecision parses the precision digit string. Absent or malformed
// precision decodes as zero (integer value).
func parsePrecision(precision string) int {
	if precision == "" || precision == "0" {
		return 0
	}
	p, err := strconv.Atoi(precision)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// roundTo rounds v to p decimal places.
func roundTo(v float64, p int) float64 {
	shift := math.Pow10(p)
	return math.Round(v*shift) / shift
}
