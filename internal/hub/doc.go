// Package hub defines the in-memory entity model for a Universal Devices
// ISY/IoX building-automation hub.
//
// The hub exposes a tree of addressable entities: physical and virtual
// device points (Node), scene collections (Group), automation programs
// (Program), and user-defined numeric registers (Variable). Entities only
// partially self-describe their capabilities: older firmware reports raw
// unit-of-measure codes or lists of human-readable states, newer firmware
// reports a symbolic node definition identifier, and some device families
// report neither.
//
// A Snapshot is an immutable capture of the full entity tree, produced once
// per hub connection by the transport layer (out of scope for this module)
// and consumed by the classification pass in internal/classify. Snapshots
// can be decoded from the JSON document format with ParseSnapshot or
// LoadSnapshot.
//
// # Key Types
//
//   - Node: an addressable device point with optional typing metadata
//   - Group: a scene with aggregate on/off semantics
//   - Program: an automation entity with status and optional actions leaves
//   - Variable: a typed user-defined numeric register
//   - Snapshot: the immutable tree handed to a classification pass
//
// # Thread Safety
//
// A Snapshot and everything reachable from it is read-only after decoding.
// Sharing a Snapshot between goroutines requires no locking as long as no
// caller mutates it.
package hub
