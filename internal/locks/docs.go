// Package locks implements the in-memory mutual-exclusion table that prevents
// two users from dragging the same order at once.
//
// The table is intentionally process-local: locks are cheap, short-lived UX
// artifacts and losing them on restart is acceptable. Scaling the board across
// processes requires promoting this table to an external store with the same
// narrow interface (acquire/release/peek/list), which is out of scope here.
package locks
