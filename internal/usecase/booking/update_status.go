package booking

import (
	"context"
	"time"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

type UpdateStatusInput struct {
	BookingID   uint
	ActorUserID uint
	Role        string
	NewStatus   string
}

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute moves a booking along the lifecycle table. The customer may
// only cancel their own booking; the assigned barber may walk any legal
// edge; everyone else is denied.
func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}

	if err := uc.authorize(ctx, bk, in); err != nil {
		return nil, err
	}

	if err := domain.ChangeStatus(bk, domain.Status(in.NewStatus), uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  bk.SalonID,
		UserID:   &in.ActorUserID,
		Action:   "booking_status_" + in.NewStatus,
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}

func (uc *UpdateBookingStatus) authorize(
	ctx context.Context,
	bk *models.Booking,
	in UpdateStatusInput,
) error {

	if in.ActorUserID == bk.CustomerID {
		if domain.Status(in.NewStatus) == domain.StatusCancelled {
			return nil
		}
		return httperr.ErrPermission(
			"not_allowed",
			"You do not have permission to update this booking status.",
		)
	}

	if in.Role == models.RoleBarber {
		barber, err := uc.repo.GetBarberByUserID(ctx, in.ActorUserID)
		if err == nil && bk.BarberID != nil && *bk.BarberID == barber.ID {
			return nil
		}
	}

	return httperr.ErrPermission(
		"not_allowed",
		"You do not have permission to update this booking status.",
	)
}
