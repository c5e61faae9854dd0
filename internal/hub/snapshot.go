package hub

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseSnapshot decodes a snapshot document from its JSON form and
// validates its structure.
//
// Validation is deliberately shallow: the classification pass tolerates
// missing optional metadata per entity, so only structural problems that
// would corrupt the whole pass (no address, duplicate addresses) are
// rejected here.
//
// Parameters:
//   - data: JSON snapshot document produced by the transport layer
//
// Returns:
//   - *Snapshot: Decoded, validated snapshot
//   - error: Wrapped ErrInvalidSnapshot on decode failure, or the
//     specific structural error (ErrMissingAddress, ErrDuplicateAddress)
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err := snap.validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoadSnapshot reads and decodes a snapshot document from a file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// validate checks structural invariants of the snapshot.
func (s *Snapshot) validate() error {
	seen := make(map[string]struct{}, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i].Node
		if n.Address == "" {
			return fmt.Errorf("%w: node %d (%q)", ErrMissingAddress, i, n.Name)
		}
		if _, dup := seen[n.Address]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateAddress, n.Address)
		}
		seen[n.Address] = struct{}{}
	}
	for i := range s.Groups {
		if s.Groups[i].Address == "" {
			return fmt.Errorf("%w: group %d (%q)", ErrMissingAddress, i, s.Groups[i].Name)
		}
	}
	return nil
}

// Node returns the node with the given address, or nil if absent.
// Lookup is linear; snapshots are classified once, not queried hot.
func (s *Snapshot) Node(address string) *Node {
	for i := range s.Nodes {
		if s.Nodes[i].Node.Address == address {
			return &s.Nodes[i].Node
		}
	}
	return nil
}
