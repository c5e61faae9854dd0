package classify

import (
	"strings"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

// Program directory conventions. Users opt a program into the bridge by
// placing it under "My Programs/<platform>/<entity name>/" with a
// "status" leaf and, for controllable platforms, an "actions" leaf.
const (
	programRoot = "My Programs/"
	keyStatus   = "status"
	keyActions  = "actions"
)

// classifyPrograms walks the program directory and pairs each entity's
// status program with its optional actions program, per platform.
//
// Malformed folders (a missing status leaf, a folder where a program
// should be, or a controllable platform without actions) are logged and
// that single entity is skipped. Sibling entities are unaffected.
func (c *Classifier) classifyPrograms(snap *hub.Snapshot, b *Buckets) {
	for _, platform := range ProgramPlatforms {
		folder := programRoot + string(platform) + "/"

		statuses := make(map[string]*hub.Program)
		actions := make(map[string]*hub.Program)
		var order []string

		for i := range snap.Programs {
			entry := &snap.Programs[i]
			idx := strings.Index(entry.Path, folder)
			if idx < 0 {
				continue
			}
			rel := entry.Path[idx+len(folder):]

			var leaf string
			var into map[string]*hub.Program
			switch {
			case strings.HasSuffix(rel, "/"+keyStatus):
				leaf, into = keyStatus, statuses
			case strings.HasSuffix(rel, "/"+keyActions):
				leaf, into = keyActions, actions
			default:
				continue
			}

			name := strings.TrimSuffix(rel, "/"+leaf)
			if entry.Program.Kind != hub.KindProgram {
				c.logger.Warn("program folder has wrong kind, skipping leaf",
					"platform", platform, "name", name, "leaf", leaf,
					"kind", entry.Program.Kind)
				continue
			}
			if _, seen := into[name]; !seen && leaf == keyStatus {
				order = append(order, name)
			}
			into[name] = &entry.Program
		}

		for _, name := range order {
			act := actions[name]
			if platform != PlatformBinarySensor && act == nil {
				c.logger.Warn("program entity not loaded, invalid/missing actions program",
					"platform", platform, "name", name)
				continue
			}
			b.Programs[platform] = append(b.Programs[platform], ProgramPair{
				Name:    name,
				Status:  statuses[name],
				Actions: act,
			})
		}
	}
}
