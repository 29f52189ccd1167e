package booking

import "github.com/LocalServicesHQ/marketplace-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// ===============================
// Transition guards
// ===============================

// CanAccept / CanReject: only a pending booking may be answered.
func CanAccept(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidTransition("invalid_transition")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidTransition("invalid_transition")
	}
	return nil
}

// CanComplete: only an accepted booking may be completed. Completion is a
// provider action; rejected and completed are terminal.
func CanComplete(current Status) error {
	if current != StatusAccepted {
		return httperr.ErrInvalidTransition("invalid_transition")
	}
	return nil
}

// Guard returns the transition guard for a requested target status. Targets
// outside the machine (including pending, which is creation-only) are
// rejected outright.
func Guard(target Status) (func(Status) error, error) {
	switch target {
	case StatusAccepted:
		return CanAccept, nil
	case StatusRejected:
		return CanReject, nil
	case StatusCompleted:
		return CanComplete, nil
	}
	return nil, httperr.ErrInvalidTransition("invalid_transition")
}
