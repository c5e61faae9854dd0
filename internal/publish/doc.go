// Package publish pushes the output of a classification pass to the
// outside world.
//
// For every classified entity it announces a retained discovery config
// on the controller's discovery prefix, publishes the normalized state
// to the bridge topic tree, records a state history row in SQLite, and
// writes numeric values to InfluxDB.
//
// # Flow
//
//	buckets := classifier.Classify(snapshot)
//	pub, _ := publish.New(mqttClient, mqttClient.Topics(), normalizer, 1)
//	pub.SetHistory(recorder)
//	pub.SetMetrics(influxClient)
//	err := pub.PublishPass(ctx, buckets)
//
// Per-entity failures are logged and counted; a pass keeps going past
// them and PublishPass reports an aggregate error at the end.
//
// # Controller restarts
//
// WatchControllerBirth subscribes to the controller status topic and
// re-announces every discovery config from the most recent pass when
// the controller comes back online, so entities survive controller
// restarts without a bridge restart.
package publish
