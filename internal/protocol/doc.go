// Package protocol owns the wire contract and parsing primitives.
//
// Ownership boundary:
// - variable-length integer codec
// - cursor Reader and accumulator Writer over message bodies
// - command/raw framing, buffer-level and stream-level
package protocol
