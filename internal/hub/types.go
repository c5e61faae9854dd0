package hub

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Protocol identifies the transport family an entity belongs to.
type Protocol string

// Protocols reported by the hub.
const (
	// ProtocolInsteon is the primary wired/powerline protocol. Insteon
	// nodes carry a dotted numeric device type code.
	ProtocolInsteon Protocol = "insteon"

	// ProtocolZWave is the mesh wireless protocol. Z-Wave nodes carry a
	// numeric device category.
	ProtocolZWave Protocol = "zwave"

	// ProtocolGroup marks scene/collection entities.
	ProtocolGroup Protocol = "group"

	// ProtocolNodeServer marks nodes provided by third-party node server
	// plugins. They self-describe through node definitions only.
	ProtocolNodeServer Protocol = "node_server"

	// ProtocolFolder marks organisational folders in the node tree. They
	// are never devices.
	ProtocolFolder Protocol = "folder"
)

// AddressDelimiter separates the segments of a hub address. The last
// segment of an Insteon address encodes the sub-unit index in hex
// (e.g. "2B 41 F0 1" is sub-unit 1 of device "2B 41 F0").
const AddressDelimiter = " "

// ValueUnknown is the sentinel the hub reports for a point whose status
// has never been observed. It is distinct from a nil Status, which means
// the field was absent from the wire payload entirely; both decode to an
// unknown semantic value.
var ValueUnknown = math.Inf(-1)

// NodeProperty is a single auxiliary control value on a node, such as
// ramp rate, on level, or battery level.
type NodeProperty struct {
	// Control is the hub control name (e.g. "ST", "RR", "OL", "BATLVL").
	Control string `json:"control"`

	// Value is the raw numeric value, nil if never reported.
	Value *float64 `json:"value"`

	// UOM is the unit-of-measure code for this property, "" if absent.
	UOM string `json:"uom,omitempty"`

	// Precision is the decimal-shift digit string, "" or "0" for none.
	Precision string `json:"precision,omitempty"`

	// Formatted is the hub's own formatted rendering, if provided.
	Formatted string `json:"formatted,omitempty"`
}

// Node is a physical or virtual device point in the hub tree.
//
// All typing metadata is optional: which fields are populated depends on
// the firmware generation and protocol. The zero value of each optional
// field ("" or nil) means "not reported"; there is no runtime attribute
// probing anywhere downstream, only nil/empty checks on typed fields.
type Node struct {
	// Address is the hierarchical hub identifier.
	Address string `json:"address"`

	// Name is the user-assigned label.
	Name string `json:"name"`

	// Protocol is the transport family of this node.
	Protocol Protocol `json:"protocol"`

	// NodeDefID is the symbolic node definition identifier. Only present
	// on 5.x+ firmware; it is the most reliable typing signal.
	NodeDefID string `json:"node_def_id,omitempty"`

	// TypeCode is the dotted numeric Insteon device type (e.g. "1.46.1.0").
	// Only present for Insteon nodes.
	TypeCode string `json:"type_code,omitempty"`

	// ZWaveCategory is the numeric Z-Wave device category string. Only
	// present for Z-Wave nodes.
	ZWaveCategory string `json:"zwave_category,omitempty"`

	// UOM is the single numeric unit-of-measure code, "" if absent.
	// Mutually exclusive with StateNames.
	UOM string `json:"uom,omitempty"`

	// StateNames is the legacy v4-firmware enumeration of human-readable
	// states (e.g. ["locked","unlocked"]), nil if absent.
	StateNames []string `json:"state_names,omitempty"`

	// Precision is the decimal-shift digit string for Status, "" or "0"
	// for integer values.
	Precision string `json:"precision,omitempty"`

	// Status is the raw numeric status; nil means unknown.
	Status *float64 `json:"status"`

	// AuxProperties maps control names to auxiliary property values.
	AuxProperties map[string]NodeProperty `json:"aux_properties,omitempty"`

	// ParentAddress is the address of the parent node, "" for roots.
	ParentAddress string `json:"parent_address,omitempty"`
}

// IsDeviceRoot reports whether this node is the primary node of a
// physical device rather than a sub-unit of one.
func (n *Node) IsDeviceRoot() bool {
	return n.ParentAddress == "" || n.ParentAddress == n.Address
}

// SubnodeID returns the sub-unit index encoded in the last address
// segment, parsed as hexadecimal. Returns -1 when the segment is not a
// valid hex number (Z-Wave and node server addresses routinely are not).
func (n *Node) SubnodeID() int {
	segs := strings.Split(n.Address, AddressDelimiter)
	id, err := strconv.ParseInt(segs[len(segs)-1], 16, 32)
	if err != nil {
		return -1
	}
	return int(id)
}

// EffectiveUOM returns the single unit-of-measure code for this node.
// On legacy v4 firmware the hub reports a list of state names instead of
// a code; the first entry stands in as the code for set-membership tests.
func (n *Node) EffectiveUOM() string {
	if n.UOM != "" {
		return n.UOM
	}
	if len(n.StateNames) > 0 {
		return n.StateNames[0]
	}
	return ""
}

// Group is a scene: a named collection of member nodes with aggregate
// on/off semantics. Groups never carry a unit of measure.
type Group struct {
	// Address is the hub identifier of the scene.
	Address string `json:"address"`

	// Name is the user-assigned label.
	Name string `json:"name"`

	// Members lists the addresses of the scene's member nodes.
	Members []string `json:"members,omitempty"`

	// AllOn reports whether every controllable member is currently on.
	AllOn bool `json:"all_on"`
}

// ProgramKind distinguishes program leaves from organisational folders in
// the program directory.
type ProgramKind string

// Program directory entry kinds.
const (
	KindProgram ProgramKind = "program"
	KindFolder  ProgramKind = "folder"
)

// Program is an automation entity. A "status" program reports a condition
// via its running state; an "actions" program is the else-branch
// counterpart used to drive commands.
type Program struct {
	// ID is the hub identifier of the program.
	ID string `json:"id"`

	// Name is the program's own name (the leaf name in the directory).
	Name string `json:"name"`

	// Kind is program or folder.
	Kind ProgramKind `json:"kind"`

	// Enabled reports whether the program is allowed to run.
	Enabled bool `json:"enabled"`

	// Running reports whether the program's "then" clause last ran true.
	Running bool `json:"running"`

	// LastRun is when the program last started, zero if never.
	LastRun time.Time `json:"last_run,omitempty"`

	// LastFinish is when the program last completed, zero if never.
	LastFinish time.Time `json:"last_finish,omitempty"`
}

// VariableType is the hub's integer variable class.
type VariableType int

// Variable classes.
const (
	VariableTypeInteger VariableType = 1
	VariableTypeState   VariableType = 2
)

// Variable is a user-defined numeric register on the hub.
type Variable struct {
	// ID is the numeric identifier within the variable type.
	ID int `json:"id"`

	// Type is the variable class (integer or state).
	Type VariableType `json:"type"`

	// Name is the user-assigned label.
	Name string `json:"name"`

	// Init is the value the register resets to on hub restart.
	Init float64 `json:"init"`

	// Value is the current value.
	Value float64 `json:"value"`

	// LastEdited is when the value last changed, zero if unknown.
	LastEdited time.Time `json:"last_edited,omitempty"`
}

// NodeEntry pairs a node with its directory path in the hub tree. Paths
// use "/" separators and include the folder hierarchy, e.g.
// "Main Floor/Kitchen/Ceiling Light".
type NodeEntry struct {
	Path string `json:"path"`
	Node Node   `json:"node"`
}

// ProgramEntry pairs a program with its directory path, e.g.
// "My Programs/switch/Garage Door/status".
type ProgramEntry struct {
	Path    string  `json:"path"`
	Program Program `json:"program"`
}

// Snapshot is an immutable capture of the hub entity tree. It is produced
// once per connection and handed to a single classification pass; a fresh
// snapshot (full reload) is required to observe tree changes.
type Snapshot struct {
	// HubID is the hub's unique identifier (its UUID).
	HubID string `json:"hub_id"`

	// Firmware is the reported firmware version string.
	Firmware string `json:"firmware,omitempty"`

	// Nodes lists every node in tree traversal order, paired with its
	// directory path. Order is preserved through classification.
	Nodes []NodeEntry `json:"nodes"`

	// Groups lists every scene.
	Groups []Group `json:"groups,omitempty"`

	// Programs lists the program directory in traversal order.
	Programs []ProgramEntry `json:"programs,omitempty"`

	// Variables lists the user-defined registers. Nil when the variable
	// subsystem is disabled or unloaded.
	Variables []Variable `json:"variables,omitempty"`

	// VariablesLoaded reports whether the variable subsystem responded.
	VariablesLoaded bool `json:"variables_loaded"`
}
