package classify

import (
	"testing"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

func f(v float64) *float64 { return &v }

// snapshotOf wraps node entries into a minimal snapshot.
func snapshotOf(entries ...hub.NodeEntry) *hub.Snapshot {
	return &hub.Snapshot{HubID: "00:21:b9:00:00:01", Nodes: entries}
}

// classifyOne runs a default-options pass over a single node and
// returns the buckets.
func classifyOne(t *testing.T, n hub.Node) *Buckets {
	t.Helper()
	c := New(Options{IgnoreString: "{IGNORE ME}", SensorString: "sensor"})
	return c.Classify(snapshotOf(hub.NodeEntry{Path: "Main/" + n.Name, Node: n}))
}

// platformsContaining returns every platform whose bucket holds the
// address.
func platformsContaining(b *Buckets, address string) []Platform {
	var out []Platform
	for _, p := range NodePlatforms {
		for _, n := range b.Nodes[p] {
			if n.Address == address {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func TestClassifyNodeDefRule(t *testing.T) {
	tests := []struct {
		name string
		node hub.Node
		want Platform
	}{
		{
			"door lock by node def",
			hub.Node{Address: "ZW002_1", Name: "Front Door", Protocol: hub.ProtocolZWave,
				NodeDefID: "DoorLock", UOM: "51"}, // UOM must be irrelevant
			PlatformLock,
		},
		{
			"dimmer by node def",
			hub.Node{Address: "11 22 33 1", Name: "Hall Light", Protocol: hub.ProtocolInsteon,
				NodeDefID: "DimmerLampSwitch"},
			PlatformLight,
		},
		{
			"keypad button by node def",
			hub.Node{Address: "11 22 33 4", Name: "Keypad B", Protocol: hub.ProtocolInsteon,
				NodeDefID: "KeypadButton_ADV"},
			PlatformSwitch,
		},
		{
			"binary input by node def",
			hub.Node{Address: "n001_di1", Name: "Door Contact", Protocol: hub.ProtocolNodeServer,
				NodeDefID: "BinaryAlarm"},
			PlatformBinarySensor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classifyOne(t, tt.node)
			got := platformsContaining(b, tt.node.Address)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("classified into %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestClassifyInsteonTypeRule(t *testing.T) {
	tests := []struct {
		name string
		node hub.Node
		want []Platform
	}{
		{
			// Fan-family device on the fan motor sub-unit.
			"fanlinc motor",
			hub.Node{Address: "12 A3 B4 2", Name: "Bedroom Fan", Protocol: hub.ProtocolInsteon,
				TypeCode: "1.46.1.0"},
			[]Platform{PlatformFan},
		},
		{
			// Same family, sub-unit 1: the secondary light load.
			"fanlinc light subnode",
			hub.Node{Address: "12 A3 B4 1", Name: "Bedroom Fan Light", Protocol: hub.ProtocolInsteon,
				TypeCode: "1.46.1.0"},
			[]Platform{PlatformLight},
		},
		{
			"thermostat primary",
			hub.Node{Address: "AA BB CC 1", Name: "Upstairs Thermostat", Protocol: hub.ProtocolInsteon,
				TypeCode: "5.11.1.0"},
			[]Platform{PlatformClimate},
		},
		{
			"thermostat cool call contact",
			hub.Node{Address: "AA BB CC 2", Name: "Upstairs Cool Control", Protocol: hub.ProtocolInsteon,
				TypeCode: "5.11.1.0"},
			[]Platform{PlatformBinarySensor},
		},
		{
			"thermostat heat call contact",
			hub.Node{Address: "AA BB CC 3", Name: "Upstairs Heat Control", Protocol: hub.ProtocolInsteon,
				TypeCode: "5.11.1.0"},
			[]Platform{PlatformBinarySensor},
		},
		{
			"iolinc input contact",
			hub.Node{Address: "33 44 55 1", Name: "Garage Door Contact", Protocol: hub.ProtocolInsteon,
				TypeCode: "7.0.0.0"},
			[]Platform{PlatformBinarySensor},
		},
		{
			// IOLinc relay sub-unit registers as both input and switch.
			"iolinc relay subnode",
			hub.Node{Address: "33 44 55 2", Name: "Garage Door Relay", Protocol: hub.ProtocolInsteon,
				TypeCode: "7.0.0.0"},
			[]Platform{PlatformBinarySensor, PlatformSwitch},
		},
		{
			"ezio2x4 output",
			hub.Node{Address: "66 77 88 1", Name: "EZIO Out 1", Protocol: hub.ProtocolInsteon,
				TypeCode: "7.3.255.0"},
			[]Platform{PlatformSwitch},
		},
		{
			// EZIO2x4 input sub-units double as binary sensors.
			"ezio2x4 input subnode",
			hub.Node{Address: "66 77 88 9", Name: "EZIO In 1", Protocol: hub.ProtocolInsteon,
				TypeCode: "7.3.255.0"},
			[]Platform{PlatformBinarySensor, PlatformSwitch},
		},
		{
			"relay switch",
			hub.Node{Address: "99 88 77 1", Name: "Outlet", Protocol: hub.ProtocolInsteon,
				TypeCode: "2.12.0.0"},
			[]Platform{PlatformSwitch},
		},
		{
			"plain dimmer",
			hub.Node{Address: "99 88 66 1", Name: "Dimmer", Protocol: hub.ProtocolInsteon,
				TypeCode: "1.32.1.0"},
			[]Platform{PlatformLight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classifyOne(t, tt.node)
			got := platformsContaining(b, tt.node.Address)
			if len(got) != len(tt.want) {
				t.Fatalf("classified into %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("classified into %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestClassifyInsteonTypeRequiresProtocol(t *testing.T) {
	// A type code on a non-Insteon node must not satisfy the Insteon
	// rule; with no other metadata the node takes the sensor fallback.
	n := hub.Node{Address: "zw42_1", Name: "Oddball", Protocol: hub.ProtocolZWave,
		TypeCode: "1.46.1.0"}
	b := classifyOne(t, n)
	got := platformsContaining(b, n.Address)
	if len(got) != 1 || got[0] != PlatformSensor {
		t.Errorf("classified into %v, want sensor fallback", got)
	}
}

func TestClassifyZWaveCategoryRule(t *testing.T) {
	tests := []struct {
		name string
		node hub.Node
		want Platform
	}{
		{
			"zwave lock",
			hub.Node{Address: "ZW003_1", Name: "Back Door", Protocol: hub.ProtocolZWave,
				ZWaveCategory: "111"},
			PlatformLock,
		},
		{
			"zwave thermostat",
			hub.Node{Address: "ZW004_1", Name: "HVAC", Protocol: hub.ProtocolZWave,
				ZWaveCategory: "140"},
			PlatformClimate,
		},
		{
			"zwave motion sensor in range",
			hub.Node{Address: "ZW005_1", Name: "Hall Motion", Protocol: hub.ProtocolZWave,
				ZWaveCategory: "155"},
			PlatformBinarySensor,
		},
		{
			"zwave dimmable light",
			hub.Node{Address: "ZW006_1", Name: "Lamp Module", Protocol: hub.ProtocolZWave,
				ZWaveCategory: "109"},
			PlatformLight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classifyOne(t, tt.node)
			got := platformsContaining(b, tt.node.Address)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("classified into %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestClassifyUOMRule(t *testing.T) {
	tests := []struct {
		name string
		node hub.Node
		want Platform
	}{
		{
			"barrier uom is cover",
			hub.Node{Address: "GD1", Name: "Garage", Protocol: hub.ProtocolNodeServer, UOM: "97"},
			PlatformCover,
		},
		{
			"deadbolt uom is lock",
			hub.Node{Address: "LK1", Name: "Deadbolt", Protocol: hub.ProtocolNodeServer, UOM: "11"},
			PlatformLock,
		},
		{
			"percent uom is light",
			hub.Node{Address: "LT1", Name: "Dim Level", Protocol: hub.ProtocolNodeServer, UOM: "51"},
			PlatformLight,
		},
		{
			"measurement uom is sensor",
			hub.Node{Address: "SN1", Name: "Wattage", Protocol: hub.ProtocolNodeServer, UOM: "73"},
			PlatformSensor,
		},
		{
			// "2" is registered to sensor? No: binary_sensor has no
			// UOM table, sensor excludes 2; switch claims it first.
			"on/off uom is switch",
			hub.Node{Address: "SW1", Name: "Relay", Protocol: hub.ProtocolNodeServer, UOM: "2"},
			PlatformSwitch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classifyOne(t, tt.node)
			got := platformsContaining(b, tt.node.Address)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("classified into %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestClassifyStateListRule(t *testing.T) {
	tests := []struct {
		name string
		node hub.Node
		want Platform
	}{
		{
			"lock state list",
			hub.Node{Address: "V4LK", Name: "Old Lock", Protocol: hub.ProtocolInsteon,
				StateNames: []string{"locked", "unlocked"}},
			PlatformLock,
		},
		{
			"fan state list",
			hub.Node{Address: "V4FN", Name: "Old Fan", Protocol: hub.ProtocolInsteon,
				StateNames: []string{"off", "low", "med", "high"}},
			PlatformFan,
		},
		{
			"cover state list case-insensitive",
			hub.Node{Address: "V4CV", Name: "Old Blind", Protocol: hub.ProtocolInsteon,
				StateNames: []string{"Open", "Closed", "Closing", "Opening", "Stopped"}},
			PlatformCover,
		},
		{
			"light state list",
			hub.Node{Address: "V4LT", Name: "Old Dimmer", Protocol: hub.ProtocolInsteon,
				StateNames: []string{"on", "off", "%"}},
			PlatformLight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classifyOne(t, tt.node)
			got := platformsContaining(b, tt.node.Address)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("classified into %v, want [%v]", got, tt.want)
			}
		})
	}

	t.Run("subset does not match", func(t *testing.T) {
		// Exact set equality: a strict subset of the fan states is not
		// a fan. Falls through to the sensor fallback.
		n := hub.Node{Address: "V4NO", Name: "Mystery", Protocol: hub.ProtocolInsteon,
			StateNames: []string{"off", "low"}}
		b := classifyOne(t, n)
		got := platformsContaining(b, n.Address)
		if len(got) != 1 || got[0] != PlatformSensor {
			t.Errorf("classified into %v, want sensor fallback", got)
		}
	})
}

func TestClassifyRuleOrderPrecedence(t *testing.T) {
	// Node definition beats Insteon type: a fan-family type code with a
	// switch node definition is a switch.
	n := hub.Node{Address: "11 22 33 1", Name: "Relabelled", Protocol: hub.ProtocolInsteon,
		NodeDefID: "RelayLampSwitch", TypeCode: "1.46.1.0"}
	b := classifyOne(t, n)
	got := platformsContaining(b, n.Address)
	if len(got) != 1 || got[0] != PlatformSwitch {
		t.Errorf("classified into %v, want [switch] (node def wins)", got)
	}

	// Insteon type beats UOM: a thermostat family code with a cover UOM
	// is climate.
	n2 := hub.Node{Address: "44 55 66 1", Name: "Stat", Protocol: hub.ProtocolInsteon,
		TypeCode: "5.3.1.0", UOM: "97"}
	b2 := classifyOne(t, n2)
	got2 := platformsContaining(b2, n2.Address)
	if len(got2) != 1 || got2[0] != PlatformClimate {
		t.Errorf("classified into %v, want [climate] (insteon type wins)", got2)
	}
}

func TestClassifyIgnorePrecedence(t *testing.T) {
	tests := []struct {
		name string
		path string
		node hub.Node
	}{
		{
			"ignore in name",
			"Main/Spare Dimmer",
			hub.Node{Address: "77 88 99 1", Name: "Spare Dimmer {IGNORE ME}",
				Protocol: hub.ProtocolInsteon, TypeCode: "1.32.1.0"},
		},
		{
			"ignore in path",
			"Attic {IGNORE ME}/Old Switch",
			hub.Node{Address: "77 88 99 2", Name: "Old Switch",
				Protocol: hub.ProtocolInsteon, TypeCode: "2.12.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{IgnoreString: "{IGNORE ME}"})
			b := c.Classify(snapshotOf(hub.NodeEntry{Path: tt.path, Node: tt.node}))
			if got := platformsContaining(b, tt.node.Address); len(got) != 0 {
				t.Errorf("ignored node classified into %v, want no buckets", got)
			}
			if len(b.Devices) != 0 {
				t.Errorf("ignored node produced device info")
			}
		})
	}
}

func TestClassifySensorOverride(t *testing.T) {
	tests := []struct {
		name string
		node hub.Node
		want Platform
	}{
		{
			// Would be a switch via the type rule; the override caps it
			// at binary_sensor because its UOM is on/off.
			"override with on/off uom",
			hub.Node{Address: "AB CD EF 1", Name: "Closet Door sensor",
				Protocol: hub.ProtocolInsteon, TypeCode: "2.12.0.0", UOM: "2"},
			PlatformBinarySensor,
		},
		{
			"override with on/off state list",
			hub.Node{Address: "AB CD EF 2", Name: "Mail sensor",
				Protocol: hub.ProtocolInsteon, StateNames: []string{"on", "off"}},
			PlatformBinarySensor,
		},
		{
			// Nothing marks it binary, so it is a plain sensor even
			// though the type rule would have said light.
			"override without binary signals",
			hub.Node{Address: "AB CD EF 3", Name: "Lux sensor",
				Protocol: hub.ProtocolInsteon, TypeCode: "1.32.1.0", UOM: "36"},
			PlatformSensor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classifyOne(t, tt.node)
			got := platformsContaining(b, tt.node.Address)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("classified into %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestClassifyGroups(t *testing.T) {
	snap := snapshotOf()
	snap.Groups = []hub.Group{
		{Address: "10001", Name: "Movie Scene", Members: []string{"11 22 33 1"}},
		{Address: "10002", Name: "All Off {IGNORE ME}"},
	}

	c := New(Options{IgnoreString: "{IGNORE ME}"})
	b := c.Classify(snap)

	if len(b.Groups) != 1 || b.Groups[0].Address != "10001" {
		t.Fatalf("Groups = %+v, want only 10001", b.Groups)
	}
	// Groups never reach the node buckets.
	for _, p := range NodePlatforms {
		if len(b.Nodes[p]) != 0 {
			t.Errorf("group leaked into %s bucket", p)
		}
	}
}

func TestClassifyFallbackToSensor(t *testing.T) {
	// No metadata at all: lenient policy routes to sensor, never drops.
	n := hub.Node{Address: "n002_anon", Name: "Plugin Point", Protocol: hub.ProtocolNodeServer}
	b := classifyOne(t, n)
	got := platformsContaining(b, n.Address)
	if len(got) != 1 || got[0] != PlatformSensor {
		t.Errorf("classified into %v, want sensor fallback", got)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	snap := snapshotOf(
		hub.NodeEntry{Path: "A/Fan", Node: hub.Node{Address: "12 A3 B4 2", Name: "Fan",
			Protocol: hub.ProtocolInsteon, TypeCode: "1.46.1.0",
			AuxProperties: map[string]hub.NodeProperty{
				"CLITEMP": {Control: "CLITEMP", UOM: "17", Value: f(144)},
				"BATLVL":  {Control: "BATLVL", UOM: "51", Value: f(80)},
				"DON":     {Control: "DON", UOM: "2", Value: f(1)},
			}}},
		hub.NodeEntry{Path: "A/Lock", Node: hub.Node{Address: "ZW002_1", Name: "Lock",
			Protocol: hub.ProtocolZWave, NodeDefID: "DoorLock"}},
		hub.NodeEntry{Path: "A/Mystery", Node: hub.Node{Address: "n003_x", Name: "Mystery",
			Protocol: hub.ProtocolNodeServer}},
	)
	snap.Groups = []hub.Group{{Address: "20001", Name: "Scene"}}

	c := New(Options{IgnoreString: "{IGNORE ME}", SensorString: "sensor"})
	first := c.Classify(snap)
	second := c.Classify(snap)

	for _, p := range NodePlatforms {
		if len(first.Nodes[p]) != len(second.Nodes[p]) {
			t.Fatalf("%s bucket size differs between passes", p)
		}
		for i := range first.Nodes[p] {
			if first.Nodes[p][i].Address != second.Nodes[p][i].Address {
				t.Errorf("%s bucket order differs at %d", p, i)
			}
		}
	}
	for _, p := range []Platform{PlatformSensor, PlatformBinarySensor} {
		if len(first.AuxProperties[p]) != len(second.AuxProperties[p]) {
			t.Fatalf("%s aux bucket size differs between passes", p)
		}
		for i := range first.AuxProperties[p] {
			if first.AuxProperties[p][i].Control != second.AuxProperties[p][i].Control {
				t.Errorf("%s aux bucket order differs at %d", p, i)
			}
		}
	}
	if first.PassID == second.PassID {
		t.Errorf("passes share a pass id")
	}
}

func TestClassifyExclusivity(t *testing.T) {
	// None of these hit a special case, so each must land in exactly
	// one bucket.
	snap := snapshotOf(
		hub.NodeEntry{Path: "A/L", Node: hub.Node{Address: "11 11 11 1", Name: "L",
			Protocol: hub.ProtocolInsteon, TypeCode: "1.32.1.0"}},
		hub.NodeEntry{Path: "A/S", Node: hub.Node{Address: "22 22 22 1", Name: "S",
			Protocol: hub.ProtocolInsteon, TypeCode: "2.12.0.0"}},
		hub.NodeEntry{Path: "A/K", Node: hub.Node{Address: "ZW009_1", Name: "K",
			Protocol: hub.ProtocolZWave, ZWaveCategory: "111"}},
		hub.NodeEntry{Path: "A/U", Node: hub.Node{Address: "n004_u", Name: "U",
			Protocol: hub.ProtocolNodeServer, UOM: "73"}},
	)

	c := New(Options{})
	b := c.Classify(snap)

	for _, entry := range snap.Nodes {
		if got := platformsContaining(b, entry.Node.Address); len(got) != 1 {
			t.Errorf("node %s in %v, want exactly one bucket", entry.Node.Address, got)
		}
	}
}

func TestClassifyAuxProperties(t *testing.T) {
	n := hub.Node{
		Address: "11 22 33 1", Name: "Thermo", Protocol: hub.ProtocolInsteon,
		TypeCode: "5.11.1.0",
		AuxProperties: map[string]hub.NodeProperty{
			"CLIHUM":  {Control: "CLIHUM", UOM: "22", Value: f(45)},
			"CLITEMP": {Control: "CLITEMP", UOM: "17", Value: f(144)},
			"DON":     {Control: "DON", UOM: "2", Value: f(1)},
			"ST":      {Control: "ST", UOM: "17", Value: f(140)},
			"RR":      {Control: "RR", UOM: "25", Value: f(28)},
			"OL":      {Control: "OL", UOM: "100", Value: f(255)},
			"ERR":     {Control: "ERR", UOM: "2", Value: f(0)},
			"BUSY":    {Control: "BUSY", UOM: "2", Value: f(0)},
		},
	}
	b := classifyOne(t, n)

	var sensorControls, binaryControls []string
	for _, nc := range b.AuxProperties[PlatformSensor] {
		sensorControls = append(sensorControls, nc.Control)
	}
	for _, nc := range b.AuxProperties[PlatformBinarySensor] {
		binaryControls = append(binaryControls, nc.Control)
	}

	wantSensor := []string{"CLIHUM", "CLITEMP"}
	wantBinary := []string{"DON"}
	if len(sensorControls) != len(wantSensor) {
		t.Fatalf("sensor aux = %v, want %v", sensorControls, wantSensor)
	}
	for i := range wantSensor {
		if sensorControls[i] != wantSensor[i] {
			t.Errorf("sensor aux = %v, want %v", sensorControls, wantSensor)
		}
	}
	if len(binaryControls) != 1 || binaryControls[0] != wantBinary[0] {
		t.Errorf("binary aux = %v, want %v", binaryControls, wantBinary)
	}
}

func TestClassifyDeviceInfo(t *testing.T) {
	n := hub.Node{Address: "12 A3 B4 1", Name: "Bedroom Fan", Protocol: hub.ProtocolInsteon,
		NodeDefID: "FanLincMotor", TypeCode: "1.46.1.0"}
	b := classifyOne(t, n)

	info, ok := b.Devices["12 A3 B4 1"]
	if !ok {
		t.Fatal("root node produced no device info")
	}
	if info.Identifier != "00:21:b9:00:00:01_12 A3 B4 1" {
		t.Errorf("Identifier = %q", info.Identifier)
	}
	if info.Manufacturer != "Insteon" {
		t.Errorf("Manufacturer = %q, want Insteon", info.Manufacturer)
	}
	if info.Model != "12 A3 B4: FanLincMotor (1.46.1.0)" {
		t.Errorf("Model = %q", info.Model)
	}

	// Sub-units of a device are not roots and add no device entry.
	sub := hub.Node{Address: "12 A3 B4 2", Name: "Fan Motor", Protocol: hub.ProtocolInsteon,
		TypeCode: "1.46.1.0", ParentAddress: "12 A3 B4 1"}
	b2 := classifyOne(t, sub)
	if _, ok := b2.Devices[sub.Address]; ok {
		t.Error("sub-unit produced device info")
	}
}

func TestParsePlatform(t *testing.T) {
	if _, err := ParsePlatform("light"); err != nil {
		t.Errorf("ParsePlatform(light) error = %v", err)
	}
	if _, err := ParsePlatform("toaster"); err == nil {
		t.Error("ParsePlatform(toaster) accepted an unknown platform")
	}
}
