package uom

import (
	"math"
	"testing"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

func f(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeUnknown(t *testing.T) {
	norm := Normalizer{}

	tests := []struct {
		name      string
		raw       *float64
		uom       string
		precision string
	}{
		{"nil raw", nil, "2", "0"},
		{"unknown sentinel", &hub.ValueUnknown, "2", "0"},
		{"sentinel with precision", &hub.ValueUnknown, "", "3"},
		{"sentinel with enum uom", &hub.ValueUnknown, "11", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(tt.raw, tt.uom, tt.precision, "")
			if !got.IsUnknown() {
				t.Errorf("Normalize() = %+v, want unknown", got)
			}
		})
	}
}

func TestNormalizeBoolean(t *testing.T) {
	norm := Normalizer{}

	tests := []struct {
		name string
		raw  float64
		want bool
	}{
		{"zero is off", 0, false},
		{"one is on", 1, true},
		{"full level is on", 255, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(f(tt.raw), OnOff, "0", "")
			if got.Kind != KindBool || got.Bool != tt.want {
				t.Errorf("Normalize(%v, OnOff) = %+v, want bool %v", tt.raw, got, tt.want)
			}
			if got.Unit != "" {
				t.Errorf("boolean value carries unit %q, want none", got.Unit)
			}
		})
	}
}

func TestNormalizePrecision(t *testing.T) {
	norm := Normalizer{}

	// Round trip: for precision p, value/10^p rounded to p decimals.
	tests := []struct {
		name      string
		raw       float64
		precision string
		want      float64
	}{
		{"precision 0", 2345, "0", 2345},
		{"precision 1", 2345, "1", 234.5},
		{"precision 2", 2345, "2", 23.45},
		{"precision 3", 2345, "3", 2.345},
		{"precision 4", 2345, "4", 0.2345},
		{"empty precision", 42, "", 42},
		{"malformed precision", 42, "abc", 42},
		{"negative value", -150, "1", -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(f(tt.raw), "", tt.precision, "")
			if got.Kind != KindNumber || !almostEqual(got.Number, tt.want) {
				t.Errorf("Normalize(%v, prec=%q) = %+v, want %v", tt.raw, tt.precision, got, tt.want)
			}
		})
	}
}

func TestNormalizeDoubleTemp(t *testing.T) {
	norm := Normalizer{TemperatureUnit: "°F"}

	tests := []struct {
		name string
		raw  float64
		uom  string
		want float64
	}{
		{"half degree convention", 2345, DoubleTemp, 1172.5},
		{"legacy degrees spelling", 145, LegacyDegrees, 72.5},
		{"rounds to one decimal", 47, DoubleTemp, 23.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Precision "2" must lose: the half-degree convention takes
			// precedence over generic decimal shifting.
			got := norm.Normalize(f(tt.raw), tt.uom, "2", "")
			if got.Kind != KindNumber || !almostEqual(got.Number, tt.want) {
				t.Errorf("Normalize(%v, %q) = %+v, want %v", tt.raw, tt.uom, got, tt.want)
			}
			if got.Unit != "°F" {
				t.Errorf("Unit = %q, want configured temperature unit", got.Unit)
			}
		})
	}
}

func TestNormalizeByteLevel(t *testing.T) {
	norm := Normalizer{}

	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"full range", 255, 100},
		{"half range", 127, 50},
		{"off", 0, 0},
		{"low", 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(f(tt.raw), ByteLevel, "0", "")
			if got.Kind != KindNumber || !almostEqual(got.Number, tt.want) {
				t.Errorf("Normalize(%v, ByteLevel) = %+v, want %v", tt.raw, got, tt.want)
			}
			if got.Unit != "%" {
				t.Errorf("Unit = %q, want %%", got.Unit)
			}
		})
	}
}

func TestNormalizeRampRate(t *testing.T) {
	norm := Normalizer{}

	tests := []struct {
		name     string
		raw      float64
		typeCode string
		wantKind Kind
		want     float64
		wantUnit string
	}{
		{"dimmer family index", 28, "1.32.1.0", KindNumber, 0.5, "s"},
		{"relay family index", 0, "2.12.0.0", KindNumber, 540, "s"},
		{"fastest ramp", 31, "1.46.1.0", KindNumber, 0.1, "s"},
		{"non-dimmer family falls through", 28, "7.0.1.0", KindNumber, 28, "index"},
		{"no type hint falls through", 28, "", KindNumber, 28, "index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(f(tt.raw), Index, "0", tt.typeCode)
			if got.Kind != tt.wantKind || !almostEqual(got.Number, tt.want) || got.Unit != tt.wantUnit {
				t.Errorf("Normalize(%v, Index, type=%q) = %+v, want %v %s",
					tt.raw, tt.typeCode, got, tt.want, tt.wantUnit)
			}
		})
	}
}

func TestNormalizeEnumStates(t *testing.T) {
	norm := Normalizer{}

	tests := []struct {
		name string
		raw  float64
		uom  string
		want string
	}{
		{"deadbolt locked", 100, "11", "locked"},
		{"deadbolt unlocked", 0, "11", "unlocked"},
		{"heat/cool state heating", 1, "66", "heating"},
		{"on/off 100 code", 100, "78", "on"},
		{"barrier percentage", 42, "97", "42 %"},
		{"barrier open", 100, "97", "open"},
		{"secure mode unlock", 1, "84", "unlock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(f(tt.raw), tt.uom, "0", "")
			if got.Kind != KindLabel || got.Label != tt.want {
				t.Errorf("Normalize(%v, %q) = %+v, want label %q", tt.raw, tt.uom, got, tt.want)
			}
		})
	}

	t.Run("unlisted raw value falls back to number", func(t *testing.T) {
		got := norm.Normalize(f(55), "11", "0", "")
		if got.Kind != KindNumber || !almostEqual(got.Number, 55) {
			t.Errorf("Normalize(55, 11) = %+v, want raw number 55", got)
		}
	})
}

func TestNormalizeUnitSuffix(t *testing.T) {
	norm := Normalizer{}

	tests := []struct {
		name     string
		raw      float64
		uom      string
		wantUnit string
	}{
		{"watts", 100, "73", "W"},
		{"percent", 50, "51", "%"},
		{"celsius with precision", 215, "4", "°C"},
		{"unknown uom has no unit", 7, "9999", ""},
		{"no uom has no unit", 7, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := norm.Normalize(f(tt.raw), tt.uom, "1", "")
			if got.Unit != tt.wantUnit {
				t.Errorf("Normalize(%v, %q).Unit = %q, want %q", tt.raw, tt.uom, got.Unit, tt.wantUnit)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"unknown", Unknown(), "unknown"},
		{"bool on", Boolean(true), "on"},
		{"bool off", Boolean(false), "off"},
		{"number with unit", Number(23.45, "°C"), "23.45 °C"},
		{"number without unit", Number(7, ""), "7"},
		{"label", Label("locked"), "locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRampRateTableComplete(t *testing.T) {
	// The hardware table has exactly 32 entries, indices 0-31.
	if len(InsteonRampRates) != 32 {
		t.Fatalf("InsteonRampRates has %d entries, want 32", len(InsteonRampRates))
	}
	for i := 0; i < 32; i++ {
		if _, ok := InsteonRampRates[i]; !ok {
			t.Errorf("InsteonRampRates missing index %d", i)
		}
	}
}
