package domain

import (
	"errors"
	"testing"
	"time"
)

func TestFreeUpAndHoldAreIdempotent(t *testing.T) {
	spot := ParkingSpot{ID: 1, Name: "A-1", IsFree: false}

	freed := spot.FreeUp()
	if !freed.IsFree {
		t.Fatalf("expected spot to be free after FreeUp")
	}
	if freed.FreeUp() != freed {
		t.Fatalf("FreeUp on a free spot must change nothing")
	}

	held := freed.Hold()
	if held.IsFree {
		t.Fatalf("expected spot to be held after Hold")
	}
	if held.Hold() != held {
		t.Fatalf("Hold on a held spot must change nothing")
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	spot := ParkingSpot{ID: 1, Name: "A-1", IsFree: false}

	_ = spot.FreeUp()
	if spot.IsFree {
		t.Fatalf("FreeUp mutated its receiver")
	}
}

func TestTransitionsOnlyTouchFreeFlag(t *testing.T) {
	spot := ParkingSpot{
		ID:             7,
		Name:           "B-2",
		OwnedAccountID: 3,
		Version:        4,
	}

	freed := spot.FreeUp()
	freed.IsFree = spot.IsFree
	if freed != spot {
		t.Fatalf("FreeUp changed a field other than IsFree")
	}
}

func TestParkingSpotValidate(t *testing.T) {
	valid := ParkingSpot{Name: "A-1", OwnedAccountID: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid spot, got %v", err)
	}

	invalid := ParkingSpot{Name: "   "}
	err := invalid.Validate()
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected name and owner failures, got %v", errs)
	}
}

func TestStampCreateAttributesBoth(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	audit := StampCreate("alice", at)
	if audit.CreatedBy != "alice" || audit.ModifiedBy != "alice" {
		t.Fatalf("unexpected attribution: %+v", audit)
	}
	if !audit.CreatedAt.Equal(at) || !audit.ModifiedAt.Equal(at) {
		t.Fatalf("unexpected timestamps: %+v", audit)
	}
}

func TestStampModifyKeepsCreation(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	modified := created.Add(time.Hour)

	audit := StampCreate("alice", created).StampModify("bob", modified)
	if audit.CreatedBy != "alice" || !audit.CreatedAt.Equal(created) {
		t.Fatalf("creation attribution must never change: %+v", audit)
	}
	if audit.ModifiedBy != "bob" || !audit.ModifiedAt.Equal(modified) {
		t.Fatalf("unexpected modification attribution: %+v", audit)
	}
}
