package uom

import "strconv"

// UOM codes with dedicated decoding behaviour.
const (
	// OnOff is the boolean on/off code: raw 0 = off, 1 = on.
	OnOff = "2"

	// OnOff100 is the 0/100 on/off code: raw 0 = off, 100 = on.
	OnOff100 = "78"

	// Index is the generic enumeration code. Raw values index into a
	// per-device editor table; for Insteon dimmer/relay families it is
	// the ramp-rate index.
	Index = "25"

	// ByteLevel is the raw 8-bit level code: 0-255 representing 0-100%.
	ByteLevel = "100"

	// DoubleTemp is the half-degree temperature convention: the hub
	// sends 2x the temperature as an integer.
	DoubleTemp = "101"

	// LegacyDegrees is the v4-firmware spelling of the half-degree
	// temperature convention.
	LegacyDegrees = "degrees"

	// Percent is the plain percentage code.
	Percent = "51"

	// BarrierStatus is the garage/barrier position code.
	BarrierStatus = "97"
)

// Insteon device-family type-code prefixes for which the Index UOM on a
// ramp-rate property decodes through the ramp-rate table.
const (
	insteonDimmerPrefix = "1."
	insteonRelayPrefix  = "2."
)

// InsteonRampRates maps the 32 Insteon ramp-rate index values to seconds.
// The table is fixed hardware behaviour; index 0 is the slowest ramp.
var InsteonRampRates = map[int]float64{
	0: 540, 1: 480, 2: 420, 3: 360, 4: 300, 5: 270, 6: 240, 7: 210,
	8: 180, 9: 150, 10: 120, 11: 90, 12: 60, 13: 47, 14: 43, 15: 38.5,
	16: 34, 17: 32, 18: 30, 19: 28, 20: 26, 21: 23.5, 22: 21.5, 23: 19,
	24: 8.5, 25: 6.5, 26: 4.5, 27: 2, 28: 0.5, 29: 0.3, 30: 0.2, 31: 0.1,
}

// FriendlyUnit maps numeric UOM codes to display unit suffixes. Codes
// absent from the table render without a unit; that is expected for
// boolean and enumerated codes.
var FriendlyUnit = map[string]string{
	"1":   "A",
	"3":   "btu/h",
	"4":   "°C",
	"5":   "cm",
	"6":   "ft³",
	"7":   "ft³/min",
	"8":   "m³",
	"9":   "days",
	"10":  "days",
	"12":  "dB",
	"13":  "dB A",
	"14":  "°",
	"16":  "macroseismic",
	"17":  "°F",
	"18":  "ft",
	"19":  "h",
	"20":  "h",
	"21":  "%AH",
	"22":  "%RH",
	"23":  "inHg",
	"24":  "in/h",
	"25":  "index",
	"26":  "K",
	"27":  "keyword",
	"28":  "kg",
	"29":  "kV",
	"30":  "kW",
	"31":  "kPa",
	"32":  "km/h",
	"33":  "kWh",
	"34":  "liedu",
	"35":  "L",
	"36":  "lx",
	"37":  "mercalli",
	"38":  "m",
	"39":  "m³/h",
	"40":  "m/s",
	"41":  "mA",
	"42":  "ms",
	"43":  "mV",
	"44":  "min",
	"45":  "min",
	"46":  "mm/h",
	"47":  "months",
	"48":  "mph",
	"49":  "m/s",
	"50":  "Ω",
	"51":  "%",
	"52":  "lb",
	"53":  "pf",
	"54":  "ppm",
	"55":  "pulse count",
	"57":  "s",
	"58":  "s",
	"59":  "S/m",
	"60":  "m_b",
	"61":  "M_L",
	"62":  "M_w",
	"63":  "M_S",
	"64":  "shindo",
	"65":  "SML",
	"69":  "gal",
	"71":  "UV index",
	"72":  "V",
	"73":  "W",
	"74":  "W/m²",
	"75":  "weekday",
	"76":  "°",
	"77":  "years",
	"82":  "mm",
	"83":  "km",
	"85":  "Ω",
	"86":  "kΩ",
	"87":  "m³/m³",
	"88":  "water activity",
	"89":  "RPM",
	"90":  "Hz",
	"91":  "°",
	"92":  "° South",
	"101": "° (x2)",
	"102": "kWs",
	"103": "$",
	"104": "¢",
	"105": "in",
	"106": "mm/day",
}

// States maps enumerated UOM codes to their raw-value → label tables.
// Raw values missing from a table fall back to the raw number.
var States = map[string]map[int]string{
	"11": { // Deadbolt status
		0:   "unlocked",
		100: "locked",
		101: "unknown",
		102: "problem",
	},
	"15": { // Door lock alarm
		1:  "master code changed",
		2:  "tamper code entry limit",
		3:  "escutcheon removed",
		4:  "key/manually locked",
		5:  "locked by touch",
		6:  "key/manually unlocked",
		7:  "remote locking jammed bolt",
		8:  "remotely locked",
		9:  "remotely unlocked",
		10: "deadbolt jammed",
		11: "battery too low to operate",
		12: "critical low battery",
		13: "low battery",
		14: "automatically locked",
		15: "automatic locking jammed bolt",
		16: "remotely power cycled",
		17: "lock handling complete",
		19: "user deleted",
		20: "user added",
		21: "duplicate pin",
		22: "jammed bolt by locking with keypad",
		23: "locked by keypad",
		24: "unlocked by keypad",
		25: "keypad attempt outside schedule",
		26: "hardware failure",
		27: "factory reset",
	},
	"66": { // Thermostat heat/cool state
		0:  "idle",
		1:  "heating",
		2:  "cooling",
		3:  "fan",
		4:  "heating", // pending heat
		5:  "cooling", // pending cool
		6:  "idle",
		7:  "heating",
		8:  "heating",
		9:  "cooling",
		10: "heating",
		11: "heating",
	},
	"67": { // Thermostat mode
		0:  "off",
		1:  "heat",
		2:  "cool",
		3:  "auto",
		4:  "boost",
		5:  "resume",
		6:  "fan_only",
		7:  "furnace",
		8:  "dry",
		9:  "moist air",
		10: "auto changeover",
		11: "energy save heat",
		12: "energy save cool",
		13: "away",
		14: "auto",
		15: "auto",
		16: "auto",
	},
	"68": { // Thermostat fan mode
		0: "auto",
		1: "on",
		2: "high", // auto high
		3: "high",
		4: "medium", // auto medium
		5: "medium",
		6: "circulation",
		7: "humidity circulation",
	},
	"78": {0: "off", 100: "on"},
	"79": {0: "open", 100: "closed"},
	"80": { // Thermostat fan run state
		0: "off",
		1: "on",
		2: "on high",
		3: "on medium",
		4: "circulation",
		5: "humidity circulation",
		6: "right/left circulation",
		7: "up/down circulation",
		8: "quiet circulation",
	},
	"84": {0: "lock", 1: "unlock"}, // Secure mode
	"93": { // Power management alarm
		1:  "power applied",
		2:  "ac mains disconnected",
		3:  "ac mains reconnected",
		4:  "surge detection",
		5:  "volt drop or drift",
		6:  "over current detected",
		7:  "over voltage detected",
		8:  "over load detected",
		9:  "load error",
		10: "replace battery soon",
		11: "replace battery now",
		12: "battery is charging",
		13: "battery is fully charged",
		14: "charge battery soon",
		15: "charge battery now",
	},
	"94": { // Appliance alarm
		1:  "program started",
		2:  "program in progress",
		3:  "program completed",
		4:  "replace main filter",
		5:  "failure to set target temperature",
		6:  "supplying water",
		7:  "water supply failure",
		8:  "boiling",
		9:  "boiling failure",
		10: "washing",
		11: "washing failure",
		12: "rinsing",
		13: "rinsing failure",
		14: "draining",
		15: "draining failure",
		16: "spinning",
		17: "spinning failure",
		18: "drying",
		19: "drying failure",
		20: "fan failure",
		21: "compressor failure",
	},
	"95": { // Home health alarm
		1: "leaving bed",
		2: "sitting on bed",
		3: "lying on bed",
		4: "posture changed",
		5: "sitting on edge of bed",
	},
	"96": { // VOC level
		1: "clean",
		2: "slightly polluted",
		3: "moderately polluted",
		4: "highly polluted",
	},
	BarrierStatus: barrierStates(),
	"98": { // Insteon thermostat mode
		0: "off",
		1: "heat",
		2: "cool",
		3: "heat_cool",
		4: "fan_only",
		5: "auto", // program auto
		6: "auto", // program heat, local device only
		7: "auto", // program cool, local device only
	},
	"99": {7: "on", 8: "auto"}, // Insteon thermostat fan mode
}

// barrierStates builds the barrier status table: the fixed end states
// plus 1-99 rendered as percentage open.
func barrierStates() map[int]string {
	states := map[int]string{
		0:   "closed",
		100: "open",
		101: "unknown",
		102: "stopped",
		103: "closing",
		104: "opening",
	}
	for i := 1; i <= 99; i++ {
		states[i] = strconv.Itoa(i) + " %"
	}
	return states
}
