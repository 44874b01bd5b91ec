// Package repository defines error types that are reused across the
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting error text.
package repository

import "errors"

// ErrSessionNotFound is returned when no locally modified seat map has
// been stored for the requested formatura. Handlers treat this as "use
// the backend allocation as-is", not as a failure.
var ErrSessionNotFound = errors.New("seat map session not found")
