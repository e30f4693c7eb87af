// Package workcentre provides the WorkCentre aggregate: a named queue with an
// advisory capacity and an active flag. Referential integrity towards orders
// (a work centre cannot be deleted while orders reference it) is enforced at
// the command layer together with the persistence adapter.
package workcentre
