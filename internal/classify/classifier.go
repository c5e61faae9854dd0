package classify

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

// Logger defines the logging interface used by the Classifier.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options are the user-configurable classification knobs. All three are
// plain substrings; matching is case-sensitive, as on the hub itself.
type Options struct {
	// IgnoreString excludes any node or group whose directory path or
	// name contains it. Excluded entities receive no bucket membership
	// and are invisible to every later stage.
	IgnoreString string

	// SensorString force-designates matching nodes as sensors. Such a
	// node is re-tested for binary-sensor-ness and lands in the
	// binary_sensor or sensor bucket, never anywhere else.
	SensorString string

	// VariableString admits user variables whose name contains it to
	// the number platform. Empty admits every variable.
	VariableString string
}

// Classifier runs classification passes over hub snapshots.
//
// A Classifier is stateless between passes: each Classify call writes
// into its own fresh Buckets, so one Classifier may serve concurrent
// passes over different snapshots.
type Classifier struct {
	opts   Options
	logger Logger
}

// New creates a Classifier with the given options.
func New(opts Options) *Classifier {
	return &Classifier{opts: opts, logger: noopLogger{}}
}

// SetLogger sets the logger for the classifier.
func (c *Classifier) SetLogger(logger Logger) {
	c.logger = logger
}

// Classify runs one full classification pass over a snapshot: nodes,
// groups, auxiliary properties, programs, and variables.
//
// The pass is deterministic and side-effect free. Per-entity problems
// (malformed program folders, unresolvable references) are logged and
// isolated to that entity; the pass itself never fails.
func (c *Classifier) Classify(snap *hub.Snapshot) *Buckets {
	b := newBuckets(snap.HubID)
	b.PassID = uuid.NewString()

	c.classifyNodes(snap, b)
	c.classifyGroups(snap, b)
	c.classifyPrograms(snap, b)
	c.classifyVariables(snap, b)

	c.logger.Info("classification pass complete",
		"pass_id", b.PassID,
		"hub_id", b.HubID,
		"nodes", b.NodeCount(),
		"groups", len(b.Groups),
		"variables", len(b.Variables),
	)
	return b
}

// classifyNodes sorts every node in traversal order.
func (c *Classifier) classifyNodes(snap *hub.Snapshot, b *Buckets) {
	for i := range snap.Nodes {
		c.classifyNode(snap.Nodes[i].Path, &snap.Nodes[i].Node, b)
	}
}

// classifyNode sorts a single node. Steps are ordered: ignore check,
// root-device capture, auxiliary properties, sensor override, general
// rule chain, sensor fallback.
func (c *Classifier) classifyNode(path string, n *hub.Node, b *Buckets) {
	if n.Protocol == hub.ProtocolFolder {
		return
	}
	if c.matchesOption(c.opts.IgnoreString, path, n.Name) {
		c.logger.Debug("node ignored", "address", n.Address, "path", path)
		return
	}

	if n.IsDeviceRoot() {
		b.Devices[n.Address] = deviceInfo(b.HubID, n)
	}

	c.classifyAuxProperties(n, b)

	if c.matchesOption(c.opts.SensorString, path, n.Name) {
		// The user force-designated this node a sensor; decide only
		// whether it is binary.
		if !c.isBinarySensor(n, b) {
			b.appendNode(PlatformSensor, n)
		}
		c.logger.Debug("node classified by sensor override", "address", n.Address)
		return
	}

	for _, rule := range ruleChain() {
		if rule.match(n, "", b) {
			c.logger.Debug("node classified",
				"address", n.Address, "rule", rule.name)
			return
		}
	}

	// No rule matched. Route to the sensor bucket rather than dropping:
	// node-server points and unknown firmware quirks stay visible.
	b.appendNode(PlatformSensor, n)
	c.logger.Debug("node unclassifiable, using sensor fallback", "address", n.Address)
}

// classifyGroups routes scenes. Groups never carry a UOM and must not
// reach the UOM-based rules, so they bypass the chain entirely.
func (c *Classifier) classifyGroups(snap *hub.Snapshot, b *Buckets) {
	for i := range snap.Groups {
		g := &snap.Groups[i]
		if c.matchesOption(c.opts.IgnoreString, g.Name, g.Address) {
			continue
		}
		b.Groups = append(b.Groups, g)
	}
}

// classifyAuxProperties routes a node's auxiliary controls to the
// sensor platforms. Controls in the skip set never become entities.
// Control names are visited in sorted order so passes stay
// deterministic despite map iteration.
func (c *Classifier) classifyAuxProperties(n *hub.Node, b *Buckets) {
	if len(n.AuxProperties) == 0 {
		return
	}
	controls := make([]string, 0, len(n.AuxProperties))
	for control := range n.AuxProperties {
		if _, skip := skipAuxProps[control]; skip {
			continue
		}
		controls = append(controls, control)
	}
	sort.Strings(controls)

	for _, control := range controls {
		platform := PlatformSensor
		for _, u := range binarySensorUOMs {
			if n.AuxProperties[control].UOM == u {
				platform = PlatformBinarySensor
				break
			}
		}
		b.AuxProperties[platform] = append(b.AuxProperties[platform],
			NodeControl{Node: n, Control: control})
	}
}

// isBinarySensor decides whether a force-designated sensor node is a
// binary sensor, using the reliable rules plus the scoped UOM and state
// tests. The scoped on/off lists are only trustworthy here, in the
// context of already knowing the node is a sensor.
func (c *Classifier) isBinarySensor(n *hub.Node, b *Buckets) bool {
	if matchNodeDef(n, PlatformBinarySensor, b) {
		return true
	}
	if matchInsteonType(n, PlatformBinarySensor, b) {
		return true
	}
	if matchUOMIn(n, PlatformBinarySensor, binarySensorUOMs, b) {
		return true
	}
	if matchStatesIn(n, PlatformBinarySensor, binarySensorStates, b) {
		return true
	}
	return false
}

// matchesOption reports whether a non-empty option substring occurs in
// either the entity path or name.
func (c *Classifier) matchesOption(option, path, name string) bool {
	if option == "" {
		return false
	}
	return strings.Contains(path, option) || strings.Contains(name, option)
}
