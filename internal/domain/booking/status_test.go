package booking

import (
	"testing"
	"time"

	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		current Status
		target  Status
		allowed bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"accepted to completed", StatusAccepted, StatusCompleted, true},
		{"accepted to accepted", StatusAccepted, StatusAccepted, false},
		{"accepted to rejected", StatusAccepted, StatusRejected, false},
		{"rejected is terminal (accept)", StatusRejected, StatusAccepted, false},
		{"rejected is terminal (complete)", StatusRejected, StatusCompleted, false},
		{"completed is terminal (accept)", StatusCompleted, StatusAccepted, false},
		{"completed is terminal (reject)", StatusCompleted, StatusRejected, false},
		{"completed is terminal (complete)", StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guard, err := Guard(tc.target)
			if err != nil {
				t.Fatalf("Guard(%s): unexpected error %v", tc.target, err)
			}

			err = guard(tc.current)
			if tc.allowed && err != nil {
				t.Fatalf("expected %s -> %s to be allowed, got %v", tc.current, tc.target, err)
			}
			if !tc.allowed {
				if err == nil {
					t.Fatalf("expected %s -> %s to be rejected", tc.current, tc.target)
				}
				if !httperr.IsKind(err, httperr.KindInvalidTransition) {
					t.Fatalf("expected invalid transition kind, got %v", err)
				}
			}
		})
	}
}

func TestGuard_RejectsUnknownTargets(t *testing.T) {
	for _, target := range []Status{StatusPending, Status("cancelled"), Status("")} {
		if _, err := Guard(target); err == nil {
			t.Fatalf("expected Guard(%q) to fail", target)
		}
	}
}

func TestDomainActions_MutateOnlyWhenAllowed(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	b := &models.Booking{Status: string(StatusPending)}
	if err := Accept(b, now); err != nil {
		t.Fatalf("accept pending: %v", err)
	}
	if b.Status != string(StatusAccepted) || !b.UpdatedAt.Equal(now) {
		t.Fatalf("accept did not mutate booking: %+v", b)
	}

	if err := Complete(b, now.Add(time.Hour)); err != nil {
		t.Fatalf("complete accepted: %v", err)
	}
	if b.Status != string(StatusCompleted) {
		t.Fatalf("expected completed, got %s", b.Status)
	}

	// Terminal: further actions must not touch the model.
	before := *b
	if err := Reject(b, now); err == nil {
		t.Fatal("expected reject on completed to fail")
	}
	if *b != before {
		t.Fatalf("failed transition mutated booking: %+v", b)
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted} {
		if !IsValid(s) {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if IsValid(Status("cancelled")) {
		t.Fatal("cancelled is not part of the machine")
	}
}
