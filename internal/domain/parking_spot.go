package domain

import "strings"

// ParkingSpot is a single unit of the shared pool. Every spot belongs to
// exactly one account at all times; the owned_account_id column is unique, so
// the ownership relation is 1:1 in both directions.
type ParkingSpot struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	IsFree            bool   `json:"isFree"`
	OwnedAccountID    int64  `json:"ownedAccountId"`
	OwnedAccountLogin string `json:"ownedAccountLogin,omitempty"`
	Version           int64  `json:"-"`

	Audit AuditFields `json:"audit"`
}

// FreeUp returns the spot in the free state. Calling it on an already free
// spot is a no-op by construction; both transitions are total.
func (s ParkingSpot) FreeUp() ParkingSpot {
	s.IsFree = true
	return s
}

// Hold returns the spot in the held state. Idempotent like FreeUp.
func (s ParkingSpot) Hold() ParkingSpot {
	s.IsFree = false
	return s
}

// Validate checks the invariants a spot must satisfy before it reaches the
// store.
func (s ParkingSpot) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "must not be empty"})
	}
	if s.OwnedAccountID == 0 {
		errs = append(errs, ValidationError{Field: "ownedAccountId", Message: "is required"})
	}
	return errs.ErrOrNil()
}
