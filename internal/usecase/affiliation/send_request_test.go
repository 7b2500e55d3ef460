package affiliation

import (
	"context"
	"testing"

	"github.com/saloonhq/saloon-backend/internal/audit"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

func sendFixture() (*fakeRepo, *SendJoinRequest) {
	repo := newFakeRepo()
	repo.salons[1] = &models.Salon{ID: 1, OwnerID: 10, IsActive: true}
	repo.salons[2] = &models.Salon{ID: 2, OwnerID: 11, IsActive: true}
	return repo, NewSendJoinRequest(repo, audit.NewDispatcher(nil))
}

func TestSendJoinRequestCreatesProfileLazily(t *testing.T) {
	repo, uc := sendFixture()

	// User 30 has no barber profile yet.
	req, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 1,
		Message: "I have 5 years of experience",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Status != models.JoinRequestPending {
		t.Errorf("status = %s, want pending", req.Status)
	}
	if req.BarberUserID != 30 || req.SalonID != 1 {
		t.Errorf("unexpected request fields: %+v", req)
	}

	b, ok := repo.barbers[30]
	if !ok {
		t.Fatal("barber profile was not created")
	}
	if b.SalonID != nil {
		t.Error("fresh profile must not be assigned to a salon")
	}
}

func TestSendJoinRequestDuplicatePending(t *testing.T) {
	_, uc := sendFixture()

	if _, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 1,
	}); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	_, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 1,
	})
	if !httperr.IsBusiness(err, "request_already_pending") {
		t.Fatalf("expected request_already_pending, got %v", err)
	}
}

func TestSendJoinRequestSecondSalonAllowedWhilePending(t *testing.T) {
	_, uc := sendFixture()

	if _, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 1,
	}); err != nil {
		t.Fatalf("request to salon 1: %v", err)
	}

	// A pending request elsewhere does not block requests to other salons.
	if _, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 2,
	}); err != nil {
		t.Fatalf("request to salon 2: %v", err)
	}
}

func TestSendJoinRequestAlreadyInSalon(t *testing.T) {
	repo, uc := sendFixture()
	salonID := uint(2)
	repo.barbers[30] = &models.Barber{ID: 3, UserID: 30, SalonID: &salonID}

	_, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 1,
	})
	if !httperr.IsBusiness(err, "already_in_salon") {
		t.Fatalf("expected already_in_salon, got %v", err)
	}
}

func TestSendJoinRequestUnknownSalon(t *testing.T) {
	_, uc := sendFixture()

	_, err := uc.Execute(context.Background(), SendJoinRequestInput{
		ActorUserID: 30, Role: models.RoleBarber, SalonID: 99,
	})
	if !httperr.IsBusiness(err, "salon_not_found") {
		t.Fatalf("expected salon_not_found, got %v", err)
	}
}

func TestSendJoinRequestRequiresBarberRole(t *testing.T) {
	_, uc := sendFixture()

	for _, role := range []string{models.RoleCustomer, models.RoleOwner} {
		_, err := uc.Execute(context.Background(), SendJoinRequestInput{
			ActorUserID: 30, Role: role, SalonID: 1,
		})
		if !httperr.IsBusiness(err, "not_a_barber") {
			t.Errorf("role %s: expected not_a_barber, got %v", role, err)
		}
	}
}
