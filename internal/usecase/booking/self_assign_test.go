package booking

import (
	"context"
	"testing"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

func assignFixture() (*fakeRepo, *SelfAssignBooking) {
	repo := newFakeRepo()
	salonID := uint(1)
	otherSalonID := uint(2)

	repo.salons[1] = &models.Salon{ID: 1, OwnerID: 10, IsActive: true}
	repo.barbers[3] = &models.Barber{ID: 3, UserID: 30, SalonID: &salonID}
	repo.barbers[4] = &models.Barber{ID: 4, UserID: 40, SalonID: &salonID}
	repo.barbers[5] = &models.Barber{ID: 5, UserID: 50, SalonID: &otherSalonID}
	repo.bookings[1] = &models.Booking{
		ID: 1, CustomerID: 20, SalonID: 1, ServiceID: 5,
		Status: string(domain.StatusPending),
	}

	return repo, NewSelfAssignBooking(repo, audit.NewDispatcher(nil))
}

func TestSelfAssignConfirmsBooking(t *testing.T) {
	repo, uc := assignFixture()

	bk, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bk.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, want confirmed", bk.Status)
	}
	if bk.BarberID == nil || *bk.BarberID != 3 {
		t.Errorf("barber_id = %v, want 3", bk.BarberID)
	}

	// Assignment and confirmation land together in the store.
	stored := repo.bookings[1]
	if stored.Status != string(domain.StatusConfirmed) || stored.BarberID == nil {
		t.Errorf("stored booking inconsistent: %+v", stored)
	}
}

func TestSelfAssignSecondBarberConflicts(t *testing.T) {
	_, uc := assignFixture()

	if _, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
	}); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 40, Role: models.RoleBarber,
	})
	if !httperr.IsBusiness(err, "already_assigned") {
		t.Fatalf("expected already_assigned, got %v", err)
	}
}

func TestSelfAssignRaceLosesCleanly(t *testing.T) {
	repo, uc := assignFixture()

	// A competing barber claims the booking between this actor's read
	// and their claim attempt.
	repo.beforeClaim = func() {
		id := uint(4)
		repo.bookings[1].BarberID = &id
		repo.bookings[1].Status = string(domain.StatusConfirmed)
	}

	_, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
	})
	if !httperr.IsBusiness(err, "already_assigned") {
		t.Fatalf("expected already_assigned after losing race, got %v", err)
	}

	if *repo.bookings[1].BarberID != 4 {
		t.Error("winning barber was overwritten")
	}
}

func TestSelfAssignWrongSalon(t *testing.T) {
	_, uc := assignFixture()

	_, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 50, Role: models.RoleBarber,
	})
	if !httperr.IsBusiness(err, "wrong_salon") {
		t.Fatalf("expected wrong_salon, got %v", err)
	}
}

func TestSelfAssignNonPendingBooking(t *testing.T) {
	repo, uc := assignFixture()
	repo.bookings[1].Status = string(domain.StatusCancelled)

	_, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
	})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestSelfAssignRequiresBarberRole(t *testing.T) {
	_, uc := assignFixture()

	_, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 20, Role: models.RoleCustomer,
	})
	if !httperr.IsBusiness(err, "not_a_barber") {
		t.Fatalf("expected not_a_barber, got %v", err)
	}
}

func TestSelfAssignWithoutProfile(t *testing.T) {
	_, uc := assignFixture()

	_, err := uc.Execute(context.Background(), SelfAssignInput{
		BookingID: 1, ActorUserID: 99, Role: models.RoleBarber,
	})
	if !httperr.IsBusiness(err, "no_barber_profile") {
		t.Fatalf("expected no_barber_profile, got %v", err)
	}
}
