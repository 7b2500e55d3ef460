package booking

import (
	"fmt"
	"time"

	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CanSelfAssign checks the preconditions for a barber claiming a
// booking. The actual claim is a conditional update in the repository;
// this exists to give precise errors before (and after) the attempt.
func CanSelfAssign(bk *models.Booking) error {
	if bk.BarberID != nil {
		return httperr.ErrConflict(
			"already_assigned",
			"This booking is already assigned to another barber.",
		)
	}
	if Status(bk.Status) != StatusPending {
		return httperr.ErrConflict(
			"invalid_state",
			"Can only assign yourself to pending bookings.",
		)
	}
	return nil
}

// ChangeStatus moves a booking along the transition table, stamping the
// cancellation/completion time for terminal states.
func ChangeStatus(bk *models.Booking, to Status, now time.Time) error {
	from := Status(bk.Status)
	if !IsValid(to) {
		return httperr.ErrValidation(
			"invalid_status",
			fmt.Sprintf("%q is not a valid booking status.", to),
		)
	}
	if !CanTransition(from, to) {
		return httperr.ErrConflict(
			"invalid_transition",
			fmt.Sprintf("Cannot change status from %s to %s.", from, to),
		)
	}

	bk.Status = string(to)
	switch to {
	case StatusCancelled:
		bk.CancelledAt = &now
	case StatusCompleted:
		bk.CompletedAt = &now
	}
	return nil
}

// Cancel is the shortcut path: legal from any non-terminal state.
func Cancel(bk *models.Booking, now time.Time) error {
	s := Status(bk.Status)
	if s == StatusCompleted || s == StatusCancelled {
		return httperr.ErrConflict(
			"invalid_state",
			"Cannot cancel this booking.",
		)
	}

	bk.Status = string(StatusCancelled)
	bk.CancelledAt = &now
	return nil
}

// Complete requires the booking to be in progress.
func Complete(bk *models.Booking, now time.Time) error {
	return ChangeStatus(bk, StatusCompleted, now)
}
