package mqtt

import "fmt"

// Default topic tree roots. Both are configurable; these match the
// shipped config.yaml.
const (
	// DefaultTopicPrefix is the base for all bridge topics.
	// Scheme: isox/{platform}/{address}/{leaf}
	DefaultTopicPrefix = "isox"

	// DefaultDiscoveryPrefix is the base of the discovery announcement
	// tree consumed by Home Assistant style controllers.
	DefaultDiscoveryPrefix = "homeassistant"
)

// Topics builds the bridge's MQTT topic names. Using these helpers keeps
// topic naming consistent between the publisher, the LWT configuration,
// and the tests.
//
//	topics := mqtt.NewTopics("isox", "homeassistant")
//	stateTopic := topics.EntityState("light", "11 22 33 1")
//	// Returns: "isox/light/11 22 33 1/state"
type Topics struct {
	prefix    string
	discovery string
}

// NewTopics creates a topic builder for the given tree roots. Empty
// arguments fall back to the defaults.
func NewTopics(prefix, discovery string) Topics {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	if discovery == "" {
		discovery = DefaultDiscoveryPrefix
	}
	return Topics{prefix: prefix, discovery: discovery}
}

// Availability returns the bridge online/offline status topic. The LWT
// message is published here on unexpected disconnect.
//
// Example: isox/status
func (t Topics) Availability() string {
	return fmt.Sprintf("%s/status", t.prefix)
}

// EntityState returns the state topic for a classified node entity.
//
// Example: isox/light/11 22 33 1/state
func (t Topics) EntityState(platform, address string) string {
	return fmt.Sprintf("%s/%s/%s/state", t.prefix, platform, address)
}

// EntityAttributes returns the attributes topic for a classified node
// entity.
//
// Example: isox/light/11 22 33 1/attributes
func (t Topics) EntityAttributes(platform, address string) string {
	return fmt.Sprintf("%s/%s/%s/attributes", t.prefix, platform, address)
}

// AuxState returns the state topic for an auxiliary property entity.
//
// Example: isox/sensor/11 22 33 1/CLITEMP/state
func (t Topics) AuxState(platform, address, control string) string {
	return fmt.Sprintf("%s/%s/%s/%s/state", t.prefix, platform, address, control)
}

// GroupState returns the state topic for a scene.
//
// Example: isox/switch/group/10001/state
func (t Topics) GroupState(address string) string {
	return fmt.Sprintf("%s/switch/group/%s/state", t.prefix, address)
}

// ProgramState returns the state topic for a program entity.
//
// Example: isox/cover/program/0041/state
func (t Topics) ProgramState(platform, programID string) string {
	return fmt.Sprintf("%s/%s/program/%s/state", t.prefix, platform, programID)
}

// VariableState returns the state topic for a user variable entity.
//
// Example: isox/number/variable/2_14/state
func (t Topics) VariableState(variableType, variableID int) string {
	return fmt.Sprintf("%s/number/variable/%d_%d/state", t.prefix, variableType, variableID)
}

// Discovery returns the discovery config topic for an entity.
//
// Example: homeassistant/light/isox_11_22_33_1/config
func (t Topics) Discovery(platform, objectID string) string {
	return fmt.Sprintf("%s/%s/%s/config", t.discovery, platform, objectID)
}

// ControllerStatus returns the controller birth/will topic. The bridge
// subscribes here and re-announces discovery when the controller
// restarts.
//
// Example: homeassistant/status
func (t Topics) ControllerStatus() string {
	return fmt.Sprintf("%s/status", t.discovery)
}

// AllEntityStates returns a pattern matching every entity state topic.
//
// Pattern: isox/+/+/state
func (t Topics) AllEntityStates() string {
	return fmt.Sprintf("%s/+/+/state", t.prefix)
}

// AllTopics returns a pattern matching the bridge's entire topic tree.
// Use with caution, this receives all bridge traffic.
//
// Pattern: isox/#
func (t Topics) AllTopics() string {
	return fmt.Sprintf("%s/#", t.prefix)
}
