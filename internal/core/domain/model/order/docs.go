// Package order provides the domain model for manufacturing orders on the
// planning board: the Order aggregate root plus the Status and Priority value
// objects.
//
// Key business rules:
//   - Orders are identified by a UUID and a unique human-readable number
//   - An order sits in exactly one queue (a work centre, or the unassigned
//     queue) at a 0-based position defining display order
//   - Status follows a fixed transition table; complete and cancelled are
//     terminal and freeze the order's placement
//   - The transition to complete stamps a completion timestamp
//
// The package follows Domain-Driven Design principles: private fields,
// constructor validation, and rich behavior so invariants cannot be bypassed.
package order
