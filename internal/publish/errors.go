package publish

import "errors"

// Sentinel errors for the publish package.
// Use errors.Is() to check against these.
var (
	// ErrBrokerRequired indicates New was called without a broker.
	ErrBrokerRequired = errors.New("publish: broker is required")

	// ErrNilBuckets indicates PublishPass was called with nil buckets.
	ErrNilBuckets = errors.New("publish: nil buckets")

	// ErrPassIncomplete indicates some entities in a pass failed to
	// publish. The pass still delivered everything it could.
	ErrPassIncomplete = errors.New("publish: pass incomplete")
)
