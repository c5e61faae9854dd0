package classify

import (
	"strings"

	"github.com/nerrad567/isox-bridge/internal/hub"
)

// classifyVariables admits user variables to the number platform by the
// naming convention in Options.VariableString. A disabled or unloaded
// variable subsystem yields an empty list, not an error.
func (c *Classifier) classifyVariables(snap *hub.Snapshot, b *Buckets) {
	if !snap.VariablesLoaded || len(snap.Variables) == 0 {
		return
	}
	for _, v := range snap.Variables {
		if !strings.Contains(v.Name, c.opts.VariableString) {
			continue
		}
		b.Variables = append(b.Variables, v)
	}
}
