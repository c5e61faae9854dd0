// Package classify sorts a hub entity snapshot into target platform
// buckets and is the heart of the bridge.
//
// A hub reports five overlapping, sometimes contradictory typing signals
// per node: a symbolic node definition (5.x+ firmware), an Insteon dotted
// device type code, a Z-Wave numeric category, a unit-of-measure code, and
// a legacy list of human-readable state names (v4 firmware). The
// classifier evaluates these as an explicit ordered rule chain, most
// reliable signal first, and the first matching rule wins. Within a rule,
// candidate platforms are tried in one fixed priority order; there is no
// scoring.
//
// A handful of Insteon device families expose sub-units that belong to a
// different platform than their parent family (a FanLinc's light load, a
// thermostat's heat/cool call contacts, an IOLinc's relay, an EZIO2x4's
// inputs). These are handled by literal special-case overrides inside the
// Insteon type rule; see filters.go for the constants.
//
// # Classification pass
//
//	c := classify.New(classify.Options{
//	    IgnoreString:   "{IGNORE ME}",
//	    SensorString:   "sensor",
//	    VariableString: "BR.",
//	})
//	buckets := c.Classify(snapshot)
//	for _, node := range buckets.Nodes[classify.PlatformLight] {
//	    ...
//	}
//
// The pass is single-threaded, side-effect free, and deterministic: the
// same snapshot and options always produce identical bucket contents and
// ordering. Each pass writes into its own fresh Buckets value, so
// concurrent passes over different snapshots share no state.
//
// Nodes no rule can place fall back to the sensor bucket rather than being
// dropped: a device the user can see on the hub must never silently vanish
// from the bridge. This lenient policy is deliberate; see DESIGN.md.
package classify
