// Package errs provides standardized error types for the planning board application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// HTTP and job boundaries use errors.Is against the sentinels to map failures
// onto the API error taxonomy without inspecting concrete types.
package errs
