// Package sink owns the development-side server for the chat wire protocol.
//
// Ownership boundary:
// - TCP accept loop and per-connection frame handling
// - decode-and-log of known message opcodes
// - ack replies and connection teardown
// - admin HTTP endpoint (health, metrics)
//
// The sink stands in for the real game server during development and in
// end-to-end tests. It never initiates traffic.
package sink
