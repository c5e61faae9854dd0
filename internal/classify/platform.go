package classify

import "fmt"

// Platform is a target category an entity is sorted into.
type Platform string

// The closed set of target platforms.
const (
	PlatformBinarySensor Platform = "binary_sensor"
	PlatformSensor       Platform = "sensor"
	PlatformLock         Platform = "lock"
	PlatformFan          Platform = "fan"
	PlatformCover        Platform = "cover"
	PlatformLight        Platform = "light"
	PlatformSwitch       Platform = "switch"
	PlatformClimate      Platform = "climate"
	PlatformNumber       Platform = "number"
)

// NodePlatforms is the fixed priority order in which node rules try
// candidate platforms. The order is significant: the first satisfying
// platform wins and evaluation stops.
var NodePlatforms = []Platform{
	PlatformBinarySensor,
	PlatformSensor,
	PlatformLock,
	PlatformFan,
	PlatformCover,
	PlatformLight,
	PlatformSwitch,
	PlatformClimate,
}

// ProgramPlatforms lists the platforms that can be backed by hub
// programs via the conventional "My Programs/<platform>/" folders.
var ProgramPlatforms = []Platform{
	PlatformBinarySensor,
	PlatformLock,
	PlatformFan,
	PlatformCover,
	PlatformSwitch,
}

// GroupPlatform is where scenes land. Hub scenes behave like switches:
// they report an aggregate on/off state and accept on/off commands.
const GroupPlatform = PlatformSwitch

// ParsePlatform validates a platform string from an external surface
// (API path, config). Returns ErrUnknownPlatform for anything outside
// the closed set.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformBinarySensor, PlatformSensor, PlatformLock, PlatformFan,
		PlatformCover, PlatformLight, PlatformSwitch, PlatformClimate,
		PlatformNumber:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
}
