package classify

import (
	"strings"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

// matchFunc is a classification predicate. It inspects one node against
// the candidate platforms, appends the node to a bucket on success, and
// reports whether the node was handled. An empty single platform means
// "try every platform in NodePlatforms order"; a non-empty one restricts
// the test to that platform alone.
type matchFunc func(n *hub.Node, single Platform, b *Buckets) bool

// chainRule names a predicate so the driver loop can log which rule
// claimed a node.
type chainRule struct {
	name  string
	match matchFunc
}

// ruleChain returns the ordered rule chain, most reliable typing signal
// first. The order is itself the tie-break between rules: a node that
// would satisfy both the Insteon type rule and the UOM rule is resolved
// by the Insteon type rule alone.
func ruleChain() []chainRule {
	return []chainRule{
		{"node_def", matchNodeDef},
		{"insteon_type", matchInsteonType},
		{"zwave_category", matchZWaveCategory},
		{"uom", matchUOM},
		{"states", matchStates},
	}
}

// candidates expands the single-platform restriction.
func candidates(single Platform) []Platform {
	if single == "" {
		return NodePlatforms
	}
	return []Platform{single}
}

// matchNodeDef tests the node definition identifier against each
// platform's membership table. Node definitions only exist on 5.x+
// firmware and are the most reliable signal when present.
func matchNodeDef(n *hub.Node, single Platform, b *Buckets) bool {
	if n.NodeDefID == "" {
		return false
	}
	for _, p := range candidates(single) {
		if _, ok := nodeFilters[p].nodeDefIDs[n.NodeDefID]; ok {
			b.appendNode(p, n)
			return true
		}
	}
	return false
}

// matchInsteonType tests the dotted Insteon device type code against
// each platform's prefix table, then applies the device-family
// special cases. Only Insteon nodes carry a type code.
func matchInsteonType(n *hub.Node, single Platform, b *Buckets) bool {
	if n.Protocol != hub.ProtocolInsteon || n.TypeCode == "" {
		return false
	}
	for _, p := range candidates(single) {
		if !hasAnyPrefix(n.TypeCode, nodeFilters[p].insteonTypes) {
			continue
		}

		// Certain device families expose sub-units belonging to other
		// platforms. These overrides are unnecessary on 5.x firmware,
		// where node definitions supersede this rule entirely.
		sub := n.SubnodeID()
		switch {
		case p == PlatformFan && sub == subnodeFanLincLight:
			// FanLinc: sub-unit 1 is the light load, not the fan motor.
			b.appendNode(PlatformLight, n)

		case p == PlatformClimate && (sub == subnodeClimateCool || sub == subnodeClimateHeat):
			// Thermostat heat/cool call contacts are binary sensors,
			// not thermostat entities.
			b.appendNode(PlatformBinarySensor, n)

		case p == PlatformBinarySensor &&
			strings.HasPrefix(n.TypeCode, typeCategorySensorActuators) &&
			sub == subnodeIOLincRelay:
			// IOLinc: the relay sub-unit is also a controllable switch.
			b.appendNode(p, n)
			b.appendNode(PlatformSwitch, n)

		case p == PlatformSwitch && strings.HasPrefix(n.TypeCode, typeEZIO2x4) &&
			isEZIO2x4Sensor(sub):
			// EZIO2x4: input sub-units report as binary sensors too.
			b.appendNode(p, n)
			b.appendNode(PlatformBinarySensor, n)

		default:
			b.appendNode(p, n)
		}
		return true
	}
	return false
}

// matchZWaveCategory tests the Z-Wave device category against each
// platform's prefix table. Only Z-Wave nodes carry a category; there
// are no special cases for this protocol.
func matchZWaveCategory(n *hub.Node, single Platform, b *Buckets) bool {
	if n.Protocol != hub.ProtocolZWave || n.ZWaveCategory == "" {
		return false
	}
	for _, p := range candidates(single) {
		if hasAnyPrefix(n.ZWaveCategory, nodeFilters[p].zwaveCategories) {
			b.appendNode(p, n)
			return true
		}
	}
	return false
}

// matchUOM tests the node's unit-of-measure code against each
// platform's UOM set. On v4 firmware the first legacy state name stands
// in for the code.
func matchUOM(n *hub.Node, single Platform, b *Buckets) bool {
	nodeUOM := n.EffectiveUOM()
	if nodeUOM == "" {
		return false
	}
	for _, p := range candidates(single) {
		if _, ok := nodeFilters[p].uoms[nodeUOM]; ok {
			b.appendNode(p, n)
			return true
		}
	}
	return false
}

// matchUOMIn is the scoped form of matchUOM: the caller supplies the
// UOM allow-list instead of the platform tables. Used when re-testing
// binary-sensor-ness of a node already known to be a sensor.
func matchUOMIn(n *hub.Node, single Platform, allow []string, b *Buckets) bool {
	nodeUOM := n.EffectiveUOM()
	if nodeUOM == "" {
		return false
	}
	for _, u := range allow {
		if nodeUOM == u {
			b.appendNode(single, n)
			return true
		}
	}
	return false
}

// matchStates tests a v4-firmware state-name list for exact set
// equality against each platform's registered state set. Comparison is
// case-insensitive; only nodes that report a state list qualify.
func matchStates(n *hub.Node, single Platform, b *Buckets) bool {
	if len(n.StateNames) == 0 {
		return false
	}
	for _, p := range candidates(single) {
		if len(nodeFilters[p].states) == 0 {
			continue
		}
		if stateSetsEqual(n.StateNames, nodeFilters[p].states) {
			b.appendNode(p, n)
			return true
		}
	}
	return false
}

// matchStatesIn is the scoped form of matchStates with a caller-supplied
// state list.
func matchStatesIn(n *hub.Node, single Platform, states []string, b *Buckets) bool {
	if len(n.StateNames) == 0 {
		return false
	}
	if stateSetsEqual(n.StateNames, states) {
		b.appendNode(single, n)
		return true
	}
	return false
}

// hasAnyPrefix reports whether s starts with any of the prefixes.
func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// stateSetsEqual compares two state-name lists as case-insensitive
// sets. Duplicates collapse; order is irrelevant.
func stateSetsEqual(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[strings.ToLower(s)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[strings.ToLower(s)] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for s := range setA {
		if _, ok := setB[s]; !ok {
			return false
		}
	}
	return true
}

// isEZIO2x4Sensor reports whether a sub-unit id is one of the EZIO2x4
// input contacts.
func isEZIO2x4Sensor(sub int) bool {
	_, ok := subnodeEZIO2x4Sensors[sub]
	return ok
}
