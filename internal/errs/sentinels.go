// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across codec/service/cache layers.
var (
	// ErrInvalidFormat indicates a string does not parse as a coordinate.
	ErrInvalidFormat = errors.New("invalid coordinate format")

	// ErrAlreadyPresent indicates the reference is already a member of the container.
	ErrAlreadyPresent = errors.New("already present")

	// ErrNotPresent indicates the reference is not a member of the container.
	ErrNotPresent = errors.New("not present")

	// ErrContainerNotFound indicates no record exists at the requested coordinate.
	ErrContainerNotFound = errors.New("container not found")

	// ErrInvalidDate indicates a seed date does not parse as a calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrCancelled indicates the caller aborted an in-flight network operation.
	ErrCancelled = errors.New("cancelled")

	// ErrPublishFailed indicates the relay network rejected a signed record.
	ErrPublishFailed = errors.New("publish failed")

	// ErrNotAuthenticated indicates no signing identity is available.
	ErrNotAuthenticated = errors.New("not authenticated")
)
