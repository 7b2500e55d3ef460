package booking

import (
	"context"
	"errors"

	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/models"
)

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory domain.Repository for use-case tests. The
// claim path mimics the conditional update of the real repository.
type fakeRepo struct {
	salons   map[uint]*models.Salon
	services map[uint]*models.Service
	barbers  map[uint]*models.Barber // by barber id
	bookings map[uint]*models.Booking

	nextBookingID uint

	// When set, ClaimBookingForBarber runs it just before claiming, so
	// tests can interleave a competing claim.
	beforeClaim func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:        map[uint]*models.Salon{},
		services:      map[uint]*models.Service{},
		barbers:       map[uint]*models.Barber{},
		bookings:      map[uint]*models.Booking{},
		nextBookingID: 1,
	}
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if s, ok := f.salons[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetServiceForSalon(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	if s, ok := f.services[serviceID]; ok && s.SalonID == salonID && s.IsActive {
		copied := *s
		return &copied, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBarberByUserID(_ context.Context, userID uint) (*models.Barber, error) {
	for _, b := range f.barbers {
		if b.UserID == userID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBarberByID(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := f.barbers[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	if bk, ok := f.bookings[id]; ok {
		copied := *bk
		return &copied, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) CreateBooking(_ context.Context, bk *models.Booking) error {
	bk.ID = f.nextBookingID
	f.nextBookingID++
	copied := *bk
	f.bookings[bk.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, bk *models.Booking) error {
	if _, ok := f.bookings[bk.ID]; !ok {
		return errNotFound
	}
	copied := *bk
	f.bookings[bk.ID] = &copied
	return nil
}

func (f *fakeRepo) ClaimBookingForBarber(_ context.Context, bookingID, barberID uint) (bool, error) {
	if f.beforeClaim != nil {
		hook := f.beforeClaim
		f.beforeClaim = nil
		hook()
	}

	bk, ok := f.bookings[bookingID]
	if !ok {
		return false, nil
	}
	if bk.BarberID != nil || bk.Status != string(domain.StatusPending) {
		return false, nil
	}

	id := barberID
	bk.BarberID = &id
	bk.Status = string(domain.StatusConfirmed)
	return true, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
