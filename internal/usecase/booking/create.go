package booking

import (
	"context"
	"time"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

// MinLeadTime is the minimum interval between booking creation and the
// scheduled appointment.
const MinLeadTime = 30 * time.Minute

const dateTimeLayout = "2006-01-02 15:04"

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	Role       string

	SalonID   uint
	ServiceID uint

	// Ignored on purpose: the creator cannot pre-assign a barber. Still
	// validated against the salon so a bad payload fails loudly.
	BarberID *uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if !policy.Allows(in.Role, policy.BookingCreate) {
		return nil, httperr.ErrPermission(
			"not_a_customer",
			"Only customers can create bookings.",
		)
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found", "Salon not found.")
	}
	if !salon.IsActive {
		return nil, httperr.ErrValidation(
			"salon_inactive",
			"This salon is not accepting bookings.",
		)
	}

	now := uc.now()

	start, err := time.ParseInLocation(
		dateTimeLayout,
		in.Date+" "+in.Time,
		now.Location(),
	)
	if err != nil {
		return nil, httperr.ErrValidation(
			"invalid_date_or_time",
			"Invalid booking date or time.",
		)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.Before(today) {
		return nil, httperr.ErrValidation(
			"date_in_past",
			"Booking date cannot be in the past.",
		)
	}

	if start.Before(now.Add(MinLeadTime)) {
		return nil, httperr.ErrValidation(
			"too_soon",
			"Booking must be at least 30 minutes in advance.",
		)
	}

	service, err := uc.repo.GetServiceForSalon(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrNotFound(
			"service_not_found",
			"Service not found at this salon.",
		)
	}

	if in.BarberID != nil {
		barber, err := uc.repo.GetBarberByID(ctx, *in.BarberID)
		if err != nil || barber.SalonID == nil || *barber.SalonID != in.SalonID {
			return nil, httperr.ErrValidation(
				"barber_not_in_salon",
				"Selected barber does not work at this salon.",
			)
		}
	}

	bk := &models.Booking{
		CustomerID:  in.CustomerID,
		SalonID:     in.SalonID,
		BarberID:    nil, // assignment happens later, by the barber
		ServiceID:   service.ID,
		BookingDate: in.Date,
		BookingTime: in.Time,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
