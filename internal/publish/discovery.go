package publish

import (
	"fmt"
	"strings"

	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/hub"
)

// Discovery payload strings shared with the state publisher.
const (
	payloadOn      = "on"
	payloadOff     = "off"
	payloadOnline  = "online"
	payloadOffline = "offline"
)

// discoveryDevice groups entities under one physical device in the
// controller UI.
type discoveryDevice struct {
	Identifiers  []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
}

// discoveryConfig is the retained announcement payload for one entity,
// in the Home Assistant MQTT discovery schema.
type discoveryConfig struct {
	Device              *discoveryDevice `json:"device,omitempty"`
	Name                string           `json:"name"`
	UniqueID            string           `json:"unique_id"`
	StateTopic          string           `json:"state_topic"`
	JSONAttributesTopic string           `json:"json_attributes_topic,omitempty"`
	AvailabilityTopic   string           `json:"availability_topic"`
	UnitOfMeasurement   string           `json:"unit_of_measurement,omitempty"`
	PayloadOn           string           `json:"payload_on,omitempty"`
	PayloadOff          string           `json:"payload_off,omitempty"`
}

// objectID renders a discovery object id from topic path parts. The
// controller only accepts [a-zA-Z0-9_-]; everything else (hub addresses
// contain spaces) maps to underscore.
func objectID(parts ...string) string {
	joined := strings.Join(parts, "_")
	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// deviceFor looks up the device description owning a node. Sub-units
// attach to their root's device entry.
func deviceFor(b *classify.Buckets, n *hub.Node) *discoveryDevice {
	root := n.Address
	if !n.IsDeviceRoot() {
		root = n.ParentAddress
	}
	info, ok := b.Devices[root]
	if !ok {
		return nil
	}
	return &discoveryDevice{
		Identifiers:  []string{info.Identifier},
		Manufacturer: info.Manufacturer,
		Model:        info.Model,
		Name:         info.Name,
	}
}

// nodeDiscovery builds the announcement for a classified node entity.
func (p *Publisher) nodeDiscovery(b *classify.Buckets, platform classify.Platform, n *hub.Node) discoveryConfig {
	cfg := discoveryConfig{
		Device:              deviceFor(b, n),
		Name:                n.Name,
		UniqueID:            b.HubID + "_" + n.Address,
		StateTopic:          p.topics.EntityState(string(platform), n.Address),
		JSONAttributesTopic: p.topics.EntityAttributes(string(platform), n.Address),
		AvailabilityTopic:   p.topics.Availability(),
	}
	if platform == classify.PlatformBinarySensor || platform == classify.PlatformSwitch ||
		platform == classify.PlatformLight || platform == classify.PlatformFan {
		cfg.PayloadOn = payloadOn
		cfg.PayloadOff = payloadOff
	}
	return cfg
}

// auxDiscovery builds the announcement for an auxiliary control entity.
func (p *Publisher) auxDiscovery(b *classify.Buckets, platform classify.Platform, nc classify.NodeControl) discoveryConfig {
	prop := nc.Node.AuxProperties[nc.Control]
	value := p.norm.Normalize(prop.Value, prop.UOM, prop.Precision, nc.Node.TypeCode)
	cfg := discoveryConfig{
		Device:            deviceFor(b, nc.Node),
		Name:              nc.Node.Name + " " + nc.Control,
		UniqueID:          b.HubID + "_" + nc.Node.Address + "_" + nc.Control,
		StateTopic:        p.topics.AuxState(string(platform), nc.Node.Address, nc.Control),
		AvailabilityTopic: p.topics.Availability(),
		UnitOfMeasurement: value.Unit,
	}
	if platform == classify.PlatformBinarySensor {
		cfg.PayloadOn = payloadOn
		cfg.PayloadOff = payloadOff
	}
	return cfg
}

// groupDiscovery builds the announcement for a scene entity.
func (p *Publisher) groupDiscovery(b *classify.Buckets, g *hub.Group) discoveryConfig {
	return discoveryConfig{
		Name:              g.Name,
		UniqueID:          b.HubID + "_grp_" + g.Address,
		StateTopic:        p.topics.GroupState(g.Address),
		AvailabilityTopic: p.topics.Availability(),
		PayloadOn:         payloadOn,
		PayloadOff:        payloadOff,
	}
}

// programDiscovery builds the announcement for a program pair entity.
func (p *Publisher) programDiscovery(b *classify.Buckets, platform classify.Platform, pair classify.ProgramPair) discoveryConfig {
	return discoveryConfig{
		Name:              pair.Name,
		UniqueID:          b.HubID + "_prog_" + pair.Status.ID,
		StateTopic:        p.topics.ProgramState(string(platform), pair.Status.ID),
		AvailabilityTopic: p.topics.Availability(),
		PayloadOn:         payloadOn,
		PayloadOff:        payloadOff,
	}
}

// variableDiscovery builds the announcement for a user variable entity.
func (p *Publisher) variableDiscovery(b *classify.Buckets, v hub.Variable) discoveryConfig {
	return discoveryConfig{
		Name:              v.Name,
		UniqueID:          fmt.Sprintf("%s_var_%d_%d", b.HubID, int(v.Type), v.ID),
		StateTopic:        p.topics.VariableState(int(v.Type), v.ID),
		AvailabilityTopic: p.topics.Availability(),
	}
}
