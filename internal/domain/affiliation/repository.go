package affiliation

import (
	"context"

	"github.com/saloonhq/saloon-backend/internal/models"
)

type Repository interface {
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// GetOrCreateBarber returns the barber profile for a user, creating
	// an empty one when absent. The second return value reports whether
	// a new profile was created.
	GetOrCreateBarber(
		ctx context.Context,
		userID uint,
	) (*models.Barber, bool, error)

	HasPendingRequest(
		ctx context.Context,
		barberUserID uint,
		salonID uint,
	) (bool, error)

	CreateJoinRequest(
		ctx context.Context,
		req *models.BarberJoinRequest,
	) error

	GetJoinRequestByID(
		ctx context.Context,
		id uint,
	) (*models.BarberJoinRequest, error)

	UpdateJoinRequest(
		ctx context.Context,
		req *models.BarberJoinRequest,
	) error

	// ApproveAndAssign flips the request to approved and points the
	// barber at the request's salon in one transaction; the two writes
	// are never observable apart.
	ApproveAndAssign(
		ctx context.Context,
		req *models.BarberJoinRequest,
		barber *models.Barber,
	) error
}
