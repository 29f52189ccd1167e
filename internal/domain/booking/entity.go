package booking

import (
	"time"

	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(b *models.Booking, now time.Time) error {
	if err := CanAccept(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusAccepted)
	b.UpdatedAt = now
	return nil
}

func Reject(b *models.Booking, now time.Time) error {
	if err := CanReject(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusRejected)
	b.UpdatedAt = now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.UpdatedAt = now
	return nil
}
