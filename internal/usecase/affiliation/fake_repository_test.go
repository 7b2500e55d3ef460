package affiliation

import (
	"context"
	"errors"

	domain "github.com/saloonhq/saloon-backend/internal/domain/affiliation"
	"github.com/saloonhq/saloon-backend/internal/models"
)

var errNotFound = errors.New("not found")

// fakeRepo is an in-memory domain.Repository for use-case tests.
type fakeRepo struct {
	salons   map[uint]*models.Salon
	barbers  map[uint]*models.Barber          // by user id
	requests map[uint]*models.BarberJoinRequest

	nextBarberID  uint
	nextRequestID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:        map[uint]*models.Salon{},
		barbers:       map[uint]*models.Barber{},
		requests:      map[uint]*models.BarberJoinRequest{},
		nextBarberID:  100,
		nextRequestID: 1,
	}
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if s, ok := f.salons[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetOrCreateBarber(_ context.Context, userID uint) (*models.Barber, bool, error) {
	if b, ok := f.barbers[userID]; ok {
		copied := *b
		return &copied, false, nil
	}
	b := &models.Barber{ID: f.nextBarberID, UserID: userID, IsAvailable: true}
	f.nextBarberID++
	f.barbers[userID] = b
	copied := *b
	return &copied, true, nil
}

func (f *fakeRepo) HasPendingRequest(_ context.Context, barberUserID, salonID uint) (bool, error) {
	for _, r := range f.requests {
		if r.BarberUserID == barberUserID && r.SalonID == salonID && r.Status == models.JoinRequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateJoinRequest(_ context.Context, req *models.BarberJoinRequest) error {
	req.ID = f.nextRequestID
	f.nextRequestID++
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeRepo) GetJoinRequestByID(_ context.Context, id uint) (*models.BarberJoinRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, errNotFound
	}
	copied := *r
	if s, ok := f.salons[r.SalonID]; ok {
		copied.Salon = *s
	}
	return &copied, nil
}

func (f *fakeRepo) UpdateJoinRequest(_ context.Context, req *models.BarberJoinRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return errNotFound
	}
	copied := *req
	f.requests[req.ID] = &copied
	return nil
}

func (f *fakeRepo) ApproveAndAssign(_ context.Context, req *models.BarberJoinRequest, barber *models.Barber) error {
	req.Status = models.JoinRequestApproved
	if err := f.UpdateJoinRequest(context.Background(), req); err != nil {
		return err
	}
	salonID := req.SalonID
	barber.SalonID = &salonID
	stored := *barber
	f.barbers[barber.UserID] = &stored
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
