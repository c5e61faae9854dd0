// Package mqtt provides MQTT client connectivity for the ISOX Bridge.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The bridge uses MQTT to announce classified hub entities and publish
// their normalized state. A Home Assistant style controller consumes the
// discovery announcements and subscribes to the state topics.
//
//	Hub Snapshot → Classifier → Publisher ↔ MQTT Broker ↔ Controller
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Publish entity state
//	topic := client.Topics().EntityState("light", "11 22 33 1")
//	client.Publish(topic, []byte("on"), 1, true)
//
//	// Re-announce discovery when the controller restarts
//	client.Subscribe(client.Topics().ControllerStatus(), 1, onControllerStatus)
package mqtt
