// Package dones tracks, per namespace, whether a key is "done".
//
// A Dones value marks keys, unmarks them, and answers done-ness queries for
// one namespace. Two backings implement the contract: DB over a relational
// table (see internal/kstore) and File over an append-only log (see
// internal/logstore). The backing is chosen when the value is constructed
// and never switched.
//
// Marking an already-marked key and unmarking a never-marked key are
// defined no-ops of the protocol, not suppressed errors; idempotence is the
// designed property callers coordinate on.
//
// A Registry memoizes one Dones per (namespace, target) so concurrent
// callers in one process share the same value.
package dones
