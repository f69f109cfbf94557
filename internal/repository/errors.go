// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed due to conflicting state (e.g. reviewing a
// reservation twice).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as submitting a
// second review for the same reservation. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrArtistNotFound is returned when an artist profile does not exist.
var ErrArtistNotFound = errors.New("artist not found")

// ErrServiceNotFound is returned when a service does not exist or is
// not offered by the expected artist.
var ErrServiceNotFound = errors.New("service not found")

// ErrDraftNotFound is returned by the draft store when a wizard
// draft has expired or never existed.
var ErrDraftNotFound = errors.New("draft not found")
