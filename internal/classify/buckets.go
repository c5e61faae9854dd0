package classify

import (
	"strings"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

// ProgramPair is a classified program entity: the status program that
// reports state plus the optional actions program that drives commands.
// Actions is nil for binary sensors, which are read-only.
type ProgramPair struct {
	Name    string
	Status  *hub.Program
	Actions *hub.Program
}

// NodeControl is an auxiliary property classified as its own entity.
type NodeControl struct {
	Node    *hub.Node
	Control string
}

// DeviceInfo describes the physical device behind a root node, used for
// discovery announcements.
type DeviceInfo struct {
	// Identifier is "<hub id>_<root address>".
	Identifier string

	// Name is the root node's user-assigned label.
	Name string

	// Manufacturer is derived from the protocol family.
	Manufacturer string

	// Model combines the device address stem with the node definition
	// and numeric type code when known.
	Model string
}

// Buckets is the immutable result of one classification pass. Slices
// preserve snapshot traversal order; a fresh Buckets is built per pass
// and never mutated afterwards.
type Buckets struct {
	// PassID uniquely identifies this classification pass, for tracing
	// one snapshot's output through logs, history rows, and metrics.
	PassID string

	// HubID is the originating hub's identifier.
	HubID string

	// Nodes holds the classified nodes per platform. Under normal
	// operation a node appears in exactly one platform; the documented
	// device-family special cases may register a node in two.
	Nodes map[Platform][]*hub.Node

	// Groups holds every scene. Scenes all belong to GroupPlatform.
	Groups []*hub.Group

	// Programs holds the classified program pairs per platform.
	Programs map[Platform][]ProgramPair

	// Variables holds the user variables admitted to PlatformNumber.
	Variables []hub.Variable

	// AuxProperties holds auxiliary controls routed to the sensor and
	// binary-sensor platforms.
	AuxProperties map[Platform][]NodeControl

	// Devices maps root node addresses to device descriptions.
	Devices map[string]DeviceInfo
}

// newBuckets builds an empty result pre-sized over the closed platform
// set, so bucket lookups never need existence checks.
func newBuckets(hubID string) *Buckets {
	b := &Buckets{
		HubID:         hubID,
		Nodes:         make(map[Platform][]*hub.Node, len(NodePlatforms)),
		Programs:      make(map[Platform][]ProgramPair, len(ProgramPlatforms)),
		AuxProperties: make(map[Platform][]NodeControl, 2),
		Devices:       make(map[string]DeviceInfo),
	}
	for _, p := range NodePlatforms {
		b.Nodes[p] = nil
	}
	for _, p := range ProgramPlatforms {
		b.Programs[p] = nil
	}
	b.AuxProperties[PlatformSensor] = nil
	b.AuxProperties[PlatformBinarySensor] = nil
	return b
}

// appendNode registers a node in a platform bucket. Nodes are only ever
// appended, never removed.
func (b *Buckets) appendNode(p Platform, n *hub.Node) {
	b.Nodes[p] = append(b.Nodes[p], n)
}

// NodeCount returns the total node bucket memberships, counting
// special-case double registrations twice.
func (b *Buckets) NodeCount() int {
	total := 0
	for _, nodes := range b.Nodes {
		total += len(nodes)
	}
	return total
}

// deviceInfo builds the device description for a root node.
func deviceInfo(hubID string, n *hub.Node) DeviceInfo {
	// The address stem (all segments but the sub-unit index) names the
	// physical device; fall back to the full address for single-segment
	// addresses.
	model := n.Address
	if i := strings.LastIndex(n.Address, hub.AddressDelimiter); i > 0 {
		model = n.Address[:i]
	}
	if n.NodeDefID != "" {
		model += ": " + n.NodeDefID
	}
	if n.TypeCode != "" {
		model += " (" + n.TypeCode + ")"
	}
	return DeviceInfo{
		Identifier:   hubID + "_" + n.Address,
		Name:         n.Name,
		Manufacturer: manufacturerName(n.Protocol),
		Model:        model,
	}
}

// manufacturerName renders a protocol family as a display name, e.g.
// "node_server" becomes "Node Server".
func manufacturerName(p hub.Protocol) string {
	words := strings.Split(string(p), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
