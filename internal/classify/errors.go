package classify

import "errors"

// Domain errors for the classify package.
var (
	// ErrUnknownPlatform is returned when a platform string is not in
	// the closed platform set.
	ErrUnknownPlatform = errors.New("classify: unknown platform")
)
