package classify

import "strconv"

// platformFilter holds the per-platform membership tables the rule chain
// consults. The values match the hub's wire conventions exactly:
// insteonTypes and zwaveCategories are string prefixes (including the
// trailing dot where the convention requires one), uoms and nodeDefIDs
// are exact-membership sets, and states is compared by exact set
// equality against a node's legacy state list.
type platformFilter struct {
	nodeDefIDs      map[string]struct{}
	insteonTypes    []string
	zwaveCategories []string
	uoms            map[string]struct{}
	states          []string
}

// nodeFilters is the master classification table. Platforms are looked
// up in NodePlatforms order; within a platform the prefix slices are
// tried in declaration order.
var nodeFilters = map[Platform]platformFilter{
	PlatformBinarySensor: {
		nodeDefIDs: stringSet(
			"BinaryAlarm",
			"BinaryControl",
			"BinaryControl_ADV",
			"EZIO2x4_Input",
			"EZRAIN_Input",
			"OnOffControl",
			"OnOffControl_ADV",
		),
		insteonTypes:    []string{"7.0.", "7.13.", "16."},
		zwaveCategories: append([]string{"104", "112", "138"}, numericRange(148, 179)...),
	},
	PlatformSensor: {
		nodeDefIDs:   stringSet("IMETER_SOLO", "EZIO2x4_Input_ADV"),
		insteonTypes: []string{"9.0.", "9.7."},
		zwaveCategories: append([]string{"118", "143"},
			numericRange(180, 184)...),
		// Most numeric-measurement codes between 1 and 96, excluding the
		// codes claimed by other platforms (2, 11, 51, 66-68, 78, 80-81).
		uoms: sensorUOMs(),
	},
	PlatformLock: {
		nodeDefIDs:      stringSet("DoorLock"),
		insteonTypes:    []string{"15.", "4.64."},
		zwaveCategories: []string{"111"},
		uoms:            stringSet("11"),
		states:          []string{"locked", "unlocked"},
	},
	PlatformFan: {
		nodeDefIDs:   stringSet("FanLincMotor"),
		insteonTypes: []string{"1.46."},
		states:       []string{"off", "low", "med", "high"},
	},
	PlatformCover: {
		uoms:   stringSet("97"),
		states: []string{"open", "closed", "closing", "opening", "stopped"},
	},
	PlatformLight: {
		nodeDefIDs: stringSet(
			"BallastRelayLampSwitch",
			"BallastRelayLampSwitch_ADV",
			"DimmerLampOnly",
			"DimmerLampSwitch",
			"DimmerLampSwitch_ADV",
			"DimmerSwitchOnly",
			"DimmerSwitchOnly_ADV",
		),
		insteonTypes:    []string{"1."},
		zwaveCategories: []string{"109", "119"},
		uoms:            stringSet("51"),
		states:          []string{"on", "off", "%"},
	},
	PlatformSwitch: {
		nodeDefIDs: stringSet(
			"AlertModuleArmed",
			"AlertModuleSiren",
			"AlertModuleSiren_ADV",
			"EZIO2x4_Output",
			"EZRAIN_Output",
			"KeypadButton",
			"KeypadButton_ADV",
			"KeypadRelay",
			"KeypadRelay_ADV",
			"RelayLampOnly",
			"RelayLampOnly_ADV",
			"RelayLampSwitch",
			"RelayLampSwitch_ADV",
			"RelaySwitchOnlyPlusQuery",
			"RelaySwitchOnlyPlusQuery_ADV",
			"RemoteLinc2",
			"RemoteLinc2_ADV",
			"Siren",
			"Siren_ADV",
			"X10",
		),
		insteonTypes:    []string{"0.16.", "2.", "7.3.255.", "9.10.", "9.11.", "113."},
		zwaveCategories: []string{"121", "122", "123", "137", "141", "147"},
		uoms:            stringSet("2", "78"),
		states:          []string{"on", "off"},
	},
	PlatformClimate: {
		nodeDefIDs:      stringSet("TempLinc", "Thermostat"),
		insteonTypes:    []string{"4.8", "5."},
		zwaveCategories: []string{"140"},
		uoms:            stringSet("2"),
		states:          []string{"heating", "cooling", "idle", "fan_only", "off"},
	},
}

// Special-case constants for Insteon device families whose sub-units
// belong to a different platform than the family itself. Sub-unit ids
// are the hex-decoded last address segment.
const (
	// subnodeFanLincLight is the FanLinc's secondary light load.
	subnodeFanLincLight = 1

	// subnodeClimateCool and subnodeClimateHeat are a thermostat's
	// cool-call and heat-call contact sub-units.
	subnodeClimateCool = 2
	subnodeClimateHeat = 3

	// subnodeIOLincRelay is the IOLinc's output relay sub-unit; the
	// same module's input contact lives on a sibling sub-unit.
	subnodeIOLincRelay = 2

	// typeCategorySensorActuators is the Insteon sensor/actuator
	// family prefix (IOLinc and friends).
	typeCategorySensorActuators = "7.0."

	// typeEZIO2x4 is the Smartenit EZIO2x4 multi-IO module type prefix.
	typeEZIO2x4 = "7.3.255."
)

// subnodeEZIO2x4Sensors are the EZIO2x4 input-contact sub-units, which
// double as binary sensors alongside the module's switch outputs.
var subnodeEZIO2x4Sensors = map[int]struct{}{9: {}, 10: {}, 11: {}, 12: {}}

// Scoped filters for re-testing whether a known sensor is binary. These
// are only trustworthy once a node is already known to be a sensor.
var (
	binarySensorUOMs   = []string{"2", "78"}
	binarySensorStates = []string{"on", "off"}
)

// Auxiliary control names that never become standalone entities: the
// primary status itself, transient flags, and the dimmable-load controls
// surfaced elsewhere.
var skipAuxProps = stringSet("ST", "BUSY", "ERR", "OL", "RR")

// stringSet builds a membership set from its arguments.
func stringSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

// numericRange returns the decimal strings from lo to hi inclusive.
func numericRange(lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// sensorUOMs builds the generic-sensor UOM set: most codes from 1-96,
// minus those that identify a more specific platform.
func sensorUOMs() map[string]struct{} {
	set := stringSet("1", "79")
	for _, r := range [][2]int{{3, 10}, {12, 50}, {52, 65}, {69, 77}, {82, 96}} {
		for _, s := range numericRange(r[0], r[1]) {
			set[s] = struct{}{}
		}
	}
	return set
}
