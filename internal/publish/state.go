package publish

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/hub"
	"github.com/nerrad567/isox-bridge/internal/uom"
)

// entityAttributes is the JSON attributes payload accompanying a node's
// state topic.
type entityAttributes struct {
	HubAddress string `json:"hub_address"`
	PassID     string `json:"pass_id"`
	Kind       string `json:"kind"`
	Unit       string `json:"unit,omitempty"`
}

// publishStates publishes the normalized state of every entity in the
// pass and feeds the history and metrics sinks. Returns attempted and
// failed publish counts.
func (p *Publisher) publishStates(ctx context.Context, b *classify.Buckets) (attempted, failed int) {
	now := time.Now().UTC()

	send := func(topic string, value uom.Value, platform classify.Platform, address, control string) {
		attempted++
		if err := p.broker.Publish(topic, []byte(statePayload(value)), p.qos, true); err != nil {
			p.logger.Warn("state publish failed", "topic", topic, "error", err)
			failed++
			return
		}
		p.record(ctx, b, value, platform, address, control, now)
	}

	for _, platform := range classify.NodePlatforms {
		for _, n := range b.Nodes[platform] {
			value := p.norm.Normalize(n.Status, n.EffectiveUOM(), n.Precision, n.TypeCode)
			send(p.topics.EntityState(string(platform), n.Address), value, platform, n.Address, "")
			p.publishAttributes(b, platform, n, value)
		}
	}
	for _, platform := range []classify.Platform{classify.PlatformBinarySensor, classify.PlatformSensor} {
		for _, nc := range b.AuxProperties[platform] {
			prop := nc.Node.AuxProperties[nc.Control]
			value := p.norm.Normalize(prop.Value, prop.UOM, prop.Precision, nc.Node.TypeCode)
			send(p.topics.AuxState(string(platform), nc.Node.Address, nc.Control),
				value, platform, nc.Node.Address, nc.Control)
		}
	}
	for _, g := range b.Groups {
		send(p.topics.GroupState(g.Address), uom.Boolean(g.AllOn),
			classify.GroupPlatform, g.Address, "")
	}
	for _, platform := range classify.ProgramPlatforms {
		for _, pair := range b.Programs[platform] {
			send(p.topics.ProgramState(string(platform), pair.Status.ID),
				uom.Boolean(pair.Status.Running), platform, pair.Status.ID, "")
		}
	}
	for _, v := range b.Variables {
		send(p.topics.VariableState(int(v.Type), v.ID), uom.Number(v.Value, ""),
			classify.PlatformNumber, variableAddress(v), "")
	}
	return attempted, failed
}

// publishAttributes publishes the JSON attributes for a node entity.
// Attribute failures are logged but do not count against the pass.
func (p *Publisher) publishAttributes(b *classify.Buckets, platform classify.Platform, n *hub.Node, value uom.Value) {
	attrs := entityAttributes{
		HubAddress: n.Address,
		PassID:     b.PassID,
		Kind:       kindName(value.Kind),
		Unit:       value.Unit,
	}
	payload, err := json.Marshal(attrs)
	if err != nil {
		p.logger.Warn("encoding attributes failed", "address", n.Address, "error", err)
		return
	}
	topic := p.topics.EntityAttributes(string(platform), n.Address)
	if err := p.broker.Publish(topic, payload, p.qos, true); err != nil {
		p.logger.Warn("attributes publish failed", "topic", topic, "error", err)
	}
}

// record feeds the history and metrics sinks for one published state.
func (p *Publisher) record(ctx context.Context, b *classify.Buckets, value uom.Value, platform classify.Platform, address, control string, now time.Time) {
	if p.history != nil {
		row := StateRow{
			PassID:     b.PassID,
			HubID:      b.HubID,
			Platform:   string(platform),
			Address:    address,
			Control:    control,
			Kind:       kindName(value.Kind),
			State:      statePayload(value),
			Unit:       value.Unit,
			RecordedAt: now,
		}
		if err := p.history.RecordEntityState(ctx, row); err != nil {
			p.logger.Warn("history record failed", "address", address, "error", err)
		}
	}
	if p.metrics != nil {
		if v, ok := metricValue(value); ok {
			p.metrics.WriteEntityMetric(b.PassID, string(platform), address, control, v)
		}
	}
}

// statePayload renders a normalized value as a state topic payload.
// Units stay out of the payload; they live in the discovery config.
func statePayload(v uom.Value) string {
	switch v.Kind {
	case uom.KindBool:
		if v.Bool {
			return payloadOn
		}
		return payloadOff
	case uom.KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case uom.KindLabel:
		return v.Label
	default:
		return "unknown"
	}
}

// metricValue maps a normalized value to a telemetry float. Labels and
// unknowns carry no numeric signal and are skipped.
func metricValue(v uom.Value) (float64, bool) {
	switch v.Kind {
	case uom.KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case uom.KindNumber:
		return v.Number, true
	default:
		return 0, false
	}
}

// kindName renders a value kind for history rows and attribute payloads.
func kindName(k uom.Kind) string {
	switch k {
	case uom.KindBool:
		return "bool"
	case uom.KindNumber:
		return "number"
	case uom.KindLabel:
		return "label"
	default:
		return "unknown"
	}
}

// variableAddress renders the synthetic address of a variable entity,
// matching its state topic segment.
func variableAddress(v hub.Variable) string {
	return strconv.Itoa(int(v.Type)) + "_" + strconv.Itoa(v.ID)
}
