// Package repository defines the data access layer over MySQL.  Sentinel
// errors declared here let handlers and the assignment coordinator
// distinguish failure scenarios: not-found errors map to HTTP 404 and abort
// with no mutation, while ErrConflict signals that an operation cannot
// proceed because of existing state (an occupied table window, an entry that
// is no longer eligible) and maps to HTTP 409.
package repository

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrWaitlistNotFound    = errors.New("waitlist entry not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrConflict            = errors.New("conflict")
)
