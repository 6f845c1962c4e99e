// Package kstore implements the relational key store: one table per
// namespace holding at most one row per encoded key.
//
// Schema per namespace:
//
//	id          auto-increment primary key
//	name        encoded key, UNIQUE NOT NULL
//	create_time timestamp, defaults to now
//
// Existence of a row is the done marker. Add uses insert-or-ignore so
// concurrent identical inserts produce neither a duplicate row nor an
// error; Remove of a missing key affects zero rows and is not an error.
//
// Every operation acquires its own connection scope and releases it before
// returning; no connection is held between calls. Each call is
// independently atomic; there is no multi-key batch transaction.
package kstore
