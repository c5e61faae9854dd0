package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteEntityMetric writes a single numeric entity state to InfluxDB.
//
// This is the primary method for recording normalized hub telemetry.
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - passID: Classification pass that produced the value
//   - platform: Entity platform (e.g., "sensor", "light")
//   - address: Hub address of the node
//   - control: Auxiliary control name, "" for the primary status
//   - value: The normalized numeric value
//
// Example:
//
//	client.WriteEntityMetric(passID, "sensor", "11 22 33 1", "CLITEMP", 21.5)
func (c *Client) WriteEntityMetric(passID, platform, address, control string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"entity_state",
		map[string]string{
			"pass_id":  passID,
			"platform": platform,
			"address":  address,
			"control":  control,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePassSummary writes the entity counts of a classification pass.
//
// One point per pass, tagged with the hub identifier. Useful for
// spotting entity-count drift across hub firmware updates.
//
// Parameters:
//   - passID: Classification pass identifier
//   - hubID: Originating hub identifier
//   - counts: Entity count per platform name
func (c *Client) WritePassSummary(passID, hubID string, counts map[string]int) {
	if !c.IsConnected() {
		return
	}

	fields := make(map[string]interface{}, len(counts))
	for platform, n := range counts {
		fields[platform] = n
	}
	if len(fields) == 0 {
		return
	}

	point := write.NewPoint(
		"classification_pass",
		map[string]string{
			"pass_id": passID,
			"hub_id":  hubID,
		},
		fields,
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
