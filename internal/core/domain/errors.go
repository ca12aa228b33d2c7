package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchFailed indicates a store-backed search domain could not be queried.
	// Callers see a generic message; the cause is logged.
	ErrSearchFailed = errors.New("search failed")

	// ErrStoreUnavailable indicates the relational store cannot serve requests.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotesUnavailable indicates the notes directory cannot be enumerated.
	ErrNotesUnavailable = errors.New("notes unavailable")

	// ErrPresenceUnavailable indicates the presence store is not reachable.
	ErrPresenceUnavailable = errors.New("presence store unavailable")

	// ErrCronSourceUnavailable indicates the cron job listing could not be fetched.
	ErrCronSourceUnavailable = errors.New("cron source unavailable")
)
