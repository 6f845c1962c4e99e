// Package logstore implements the append-log key store: a flat append-only
// UTF-8 text file per namespace.
//
// Each record is one line, "DONE " or "UNDONE " followed by the canonical
// encoding of the key and a newline. Records are never rewritten or
// deleted; a key's status is the action of its last record in file order.
// Reads reconstruct state by scanning the whole file, so checking N keys
// one at a time against M records costs O(N*M); AreDone does it in one
// O(M) pass.
//
// Concurrency: each append is a single flushed write to a file opened in
// append mode, which keeps concurrent appenders safe on filesystems with
// atomic appends. Reads concurrent with writers have no atomicity or
// isolation guarantee: a reader may see a partial or stale view. This is
// an accepted property of the format, not a defect to work around.
package logstore
