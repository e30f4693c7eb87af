// Package kernel contains shared value objects used across the domain model.
//
// It currently provides the UUID value object, a validated wrapper around
// github.com/google/uuid that all aggregates use for identity. Keeping identity
// handling here prevents every aggregate from depending on the uuid library
// directly and gives a single place for parsing and validation rules.
package kernel
