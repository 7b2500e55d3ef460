package booking

import (
	"context"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

type SelfAssignInput struct {
	BookingID   uint
	ActorUserID uint
	Role        string
}

type SelfAssignBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSelfAssignBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SelfAssignBooking {
	return &SelfAssignBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute assigns the acting barber to a pending, unassigned booking in
// their own salon and confirms it. Assignment and confirmation are one
// conditional update; they cannot be observed apart and two racing
// barbers cannot both win.
func (uc *SelfAssignBooking) Execute(
	ctx context.Context,
	in SelfAssignInput,
) (*models.Booking, error) {

	if !policy.Allows(in.Role, policy.BookingSelfAssign) {
		return nil, httperr.ErrPermission(
			"not_a_barber",
			"Only barbers can assign themselves to bookings.",
		)
	}

	barber, err := uc.repo.GetBarberByUserID(ctx, in.ActorUserID)
	if err != nil {
		return nil, httperr.ErrValidation(
			"no_barber_profile",
			"You do not have a barber profile.",
		)
	}

	bk, err := uc.repo.GetBookingByID(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}

	if barber.SalonID == nil || *barber.SalonID != bk.SalonID {
		return nil, httperr.ErrPermission(
			"wrong_salon",
			"You can only assign yourself to bookings in your salon.",
		)
	}

	if err := domain.CanSelfAssign(bk); err != nil {
		return nil, err
	}

	claimed, err := uc.repo.ClaimBookingForBarber(ctx, bk.ID, barber.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race between the read above and the claim. Re-read
		// for the precise conflict.
		if fresh, err := uc.repo.GetBookingByID(ctx, in.BookingID); err == nil {
			if err := domain.CanSelfAssign(fresh); err != nil {
				return nil, err
			}
		}
		return nil, httperr.ErrConflict(
			"already_assigned",
			"This booking is already assigned to another barber.",
		)
	}

	bk.BarberID = &barber.ID
	bk.Status = string(domain.StatusConfirmed)

	uc.audit.Dispatch(audit.Event{
		SalonID:  bk.SalonID,
		UserID:   &in.ActorUserID,
		Action:   "booking_assigned",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
