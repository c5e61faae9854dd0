package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/isox-bridge/internal/uom"
)

// Broker is the subset of the MQTT client the Publisher needs.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// HistoryRecorder persists one normalized state row per entity per pass.
type HistoryRecorder interface {
	RecordEntityState(ctx context.Context, row StateRow) error
}

// MetricsWriter receives numeric telemetry. Satisfied by the InfluxDB
// client; writes are fire-and-forget.
type MetricsWriter interface {
	WriteEntityMetric(passID, platform, address, control string, value float64)
	WritePassSummary(passID, hubID string, counts map[string]int)
}

// Logger defines the logging interface used by the Publisher.
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

// Publisher delivers classification pass output over MQTT and into the
// optional history and metrics sinks.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
//   - The controller birth handler reads the most recent pass under a lock.
type Publisher struct {
	broker Broker
	topics mqtt.Topics
	norm   uom.Normalizer
	qos    byte

	history HistoryRecorder
	metrics MetricsWriter
	logger  Logger

	mu   sync.RWMutex
	last *classify.Buckets
}

// New creates a Publisher.
//
// Parameters:
//   - broker: Connected MQTT client (required)
//   - topics: Topic builder matching the broker configuration
//   - norm: Value normalizer with the configured temperature unit
//   - qos: QoS level for all publishes (0, 1, or 2)
//
// Returns:
//   - *Publisher: Ready publisher with history and metrics unset
//   - error: ErrBrokerRequired when broker is nil
func New(broker Broker, topics mqtt.Topics, norm uom.Normalizer, qos byte) (*Publisher, error) {
	if broker == nil {
		return nil, ErrBrokerRequired
	}
	return &Publisher{
		broker: broker,
		topics: topics,
		norm:   norm,
		qos:    qos,
		logger: noopLogger{},
	}, nil
}

// SetHistory sets the state history sink. Nil disables history.
func (p *Publisher) SetHistory(h HistoryRecorder) {
	p.history = h
}

// SetMetrics sets the telemetry sink. Nil disables metrics.
func (p *Publisher) SetMetrics(m MetricsWriter) {
	p.metrics = m
}

// SetLogger sets the logger for the publisher.
func (p *Publisher) SetLogger(logger Logger) {
	p.logger = logger
}

// PublishPass delivers one classification pass: discovery announcements,
// normalized states, availability, history rows, and the pass summary.
//
// Per-entity failures are logged and skipped; the pass continues. When
// any entity failed, the returned error wraps ErrPassIncomplete with the
// failure count.
func (p *Publisher) PublishPass(ctx context.Context, b *classify.Buckets) error {
	if b == nil {
		return ErrNilBuckets
	}

	p.mu.Lock()
	p.last = b
	p.mu.Unlock()

	attempted, failed := p.announceAll(b)
	sa, sf := p.publishStates(ctx, b)
	attempted += sa
	failed += sf

	attempted++
	if err := p.broker.Publish(p.topics.Availability(), []byte(payloadOnline), p.qos, true); err != nil {
		p.logger.Error("availability publish failed", "error", err)
		failed++
	}

	if p.metrics != nil {
		p.metrics.WritePassSummary(b.PassID, b.HubID, EntityCounts(b))
	}

	p.logger.Info("pass published",
		"pass_id", b.PassID,
		"hub_id", b.HubID,
		"published", attempted-failed,
		"failed", failed,
	)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d publishes failed", ErrPassIncomplete, failed, attempted)
	}
	return nil
}

// LatestPass returns the most recently published pass, nil before the
// first PublishPass call.
func (p *Publisher) LatestPass() *classify.Buckets {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// WatchControllerBirth subscribes to the controller status topic and
// re-announces the most recent pass's discovery configs when the
// controller reports online. Call once after the first PublishPass.
func (p *Publisher) WatchControllerBirth() error {
	return p.broker.Subscribe(p.topics.ControllerStatus(), p.qos,
		func(_ string, payload []byte) error {
			if string(payload) != payloadOnline {
				return nil
			}
			p.mu.RLock()
			b := p.last
			p.mu.RUnlock()
			if b == nil {
				return nil
			}
			p.logger.Info("controller online, re-announcing discovery", "pass_id", b.PassID)
			if _, failed := p.announceAll(b); failed > 0 {
				return fmt.Errorf("%w: %d discovery re-announcements failed", ErrPassIncomplete, failed)
			}
			return nil
		})
}

// announceAll publishes a retained discovery config for every entity in
// the pass. Returns attempted and failed counts.
func (p *Publisher) announceAll(b *classify.Buckets) (attempted, failed int) {
	announce := func(topic string, cfg discoveryConfig) {
		attempted++
		if err := p.announce(topic, cfg); err != nil {
			p.logger.Warn("discovery announce failed", "topic", topic, "error", err)
			failed++
		}
	}

	for _, platform := range classify.NodePlatforms {
		for _, n := range b.Nodes[platform] {
			topic := p.topics.Discovery(string(platform), objectID(b.HubID, n.Address))
			announce(topic, p.nodeDiscovery(b, platform, n))
		}
	}
	for _, platform := range []classify.Platform{classify.PlatformBinarySensor, classify.PlatformSensor} {
		for _, nc := range b.AuxProperties[platform] {
			topic := p.topics.Discovery(string(platform), objectID(b.HubID, nc.Node.Address, nc.Control))
			announce(topic, p.auxDiscovery(b, platform, nc))
		}
	}
	for _, g := range b.Groups {
		topic := p.topics.Discovery(string(classify.GroupPlatform), objectID(b.HubID, "grp", g.Address))
		announce(topic, p.groupDiscovery(b, g))
	}
	for _, platform := range classify.ProgramPlatforms {
		for _, pair := range b.Programs[platform] {
			topic := p.topics.Discovery(string(platform), objectID(b.HubID, "prog", pair.Status.ID))
			announce(topic, p.programDiscovery(b, platform, pair))
		}
	}
	for _, v := range b.Variables {
		topic := p.topics.Discovery(string(classify.PlatformNumber),
			objectID(b.HubID, "var", strconv.Itoa(int(v.Type)), strconv.Itoa(v.ID)))
		announce(topic, p.variableDiscovery(b, v))
	}
	return attempted, failed
}

// announce marshals and publishes one retained discovery config.
func (p *Publisher) announce(topic string, cfg discoveryConfig) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding discovery config: %w", err)
	}
	return p.broker.Publish(topic, payload, p.qos, true)
}

// EntityCounts tallies pass entities per platform name, counting nodes,
// auxiliary controls, scenes, programs, and variables. Used for the pass
// summary metric and the API summary endpoint.
func EntityCounts(b *classify.Buckets) map[string]int {
	counts := make(map[string]int)
	for platform, nodes := range b.Nodes {
		counts[string(platform)] += len(nodes)
	}
	for platform, controls := range b.AuxProperties {
		counts[string(platform)] += len(controls)
	}
	counts[string(classify.GroupPlatform)] += len(b.Groups)
	for platform, pairs := range b.Programs {
		counts[string(platform)] += len(pairs)
	}
	counts[string(classify.PlatformNumber)] += len(b.Variables)

	for platform, n := range counts {
		if n == 0 {
			delete(counts, platform)
		}
	}
	return counts
}
