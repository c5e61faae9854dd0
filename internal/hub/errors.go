package hub

import "errors"

// Domain errors for the hub package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, hub.ErrInvalidSnapshot) {
//	    // handle malformed snapshot document
//	}
var (
	// ErrInvalidSnapshot is returned when a snapshot document cannot be
	// decoded or fails structural validation.
	ErrInvalidSnapshot = errors.New("hub: invalid snapshot")

	// ErrMissingAddress is returned when a node or group entry has no
	// address.
	ErrMissingAddress = errors.New("hub: missing address")

	// ErrDuplicateAddress is returned when two nodes share an address.
	ErrDuplicateAddress = errors.New("hub: duplicate address")
)
