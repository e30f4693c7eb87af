// Package audit provides the immutable Entry value object recorded for every
// movement decision on the board. The audit trail is append-only forensic and
// analytics material; querying it belongs to downstream collaborators, not to
// this core.
package audit
