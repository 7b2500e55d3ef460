package booking

import (
	"context"
	"time"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

type CancelInput struct {
	BookingID   uint
	ActorUserID uint
	Role        string
}

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute is the cancellation shortcut: the customer or the assigned
// barber may cancel any booking that is not already finished.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}

	canCancel := in.ActorUserID == bk.CustomerID
	if !canCancel && in.Role == models.RoleBarber {
		// A barber without a profile simply is not the assigned barber.
		if barber, err := uc.repo.GetBarberByUserID(ctx, in.ActorUserID); err == nil {
			canCancel = bk.BarberID != nil && *bk.BarberID == barber.ID
		}
	}
	if !canCancel {
		return nil, httperr.ErrPermission(
			"not_allowed",
			"You cannot cancel this booking.",
		)
	}

	if err := domain.Cancel(bk, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  bk.SalonID,
		UserID:   &in.ActorUserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
