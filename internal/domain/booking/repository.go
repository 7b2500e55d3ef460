package booking

import (
	"context"

	"github.com/saloonhq/saloon-backend/internal/models"
)

type Repository interface {
	// -------- Salon / Service --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetServiceForSalon(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Barber --------
	GetBarberByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Barber, error)

	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Booking --------
	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	CreateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	// ClaimBookingForBarber atomically assigns a barber to a booking
	// and confirms it, but only while the booking is still pending and
	// unassigned. Returns false when the conditional update matched no
	// row (already claimed, or no longer pending).
	ClaimBookingForBarber(
		ctx context.Context,
		bookingID uint,
		barberID uint,
	) (bool, error)
}
