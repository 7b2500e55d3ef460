package booking

import (
	"context"
	"testing"
	"time"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.salons[1] = &models.Salon{ID: 1, OwnerID: 10, IsActive: true}
	repo.salons[2] = &models.Salon{ID: 2, OwnerID: 11, IsActive: false}
	repo.services[5] = &models.Service{ID: 5, SalonID: 1, IsActive: true}

	salonID := uint(1)
	repo.barbers[3] = &models.Barber{ID: 3, UserID: 30, SalonID: &salonID}
	repo.barbers[4] = &models.Barber{ID: 4, UserID: 40}
	return repo
}

func createUC(repo *fakeRepo, now time.Time) *CreateBooking {
	uc := NewCreateBooking(repo, audit.NewDispatcher(nil))
	uc.now = func() time.Time { return now }
	return uc
}

func TestCreateBookingHappyPath(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	uc := createUC(seededRepo(), now)

	barberID := uint(3)
	bk, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20,
		Role:       models.RoleCustomer,
		SalonID:    1,
		ServiceID:  5,
		BarberID:   &barberID, // supplied, must be force-cleared
		Date:       "2025-06-11",
		Time:       "10:00",
		Notes:      "first visit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bk.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want pending", bk.Status)
	}
	if bk.BarberID != nil {
		t.Error("barber must be cleared on creation")
	}
	if bk.CustomerID != 20 || bk.SalonID != 1 || bk.ServiceID != 5 {
		t.Errorf("unexpected booking fields: %+v", bk)
	}
}

func TestCreateBookingOnlyCustomers(t *testing.T) {
	uc := createUC(seededRepo(), time.Now())

	for _, role := range []string{models.RoleBarber, models.RoleOwner} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			CustomerID: 20, Role: role, SalonID: 1, ServiceID: 5,
			Date: "2999-01-01", Time: "10:00",
		})
		if !httperr.IsBusiness(err, "not_a_customer") {
			t.Errorf("role %s: expected not_a_customer, got %v", role, err)
		}
	}
}

func TestCreateBookingLeadTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	uc := createUC(seededRepo(), now)

	// Same day, only 10 minutes ahead.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 1, ServiceID: 5,
		Date: "2025-06-10", Time: "12:10",
	})
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("expected too_soon, got %v", err)
	}

	// Exactly 30 minutes ahead is allowed.
	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 1, ServiceID: 5,
		Date: "2025-06-10", Time: "12:30",
	}); err != nil {
		t.Fatalf("30 minutes ahead: unexpected error %v", err)
	}
}

func TestCreateBookingPastDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	uc := createUC(seededRepo(), now)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 1, ServiceID: 5,
		Date: "2025-06-09", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "date_in_past") {
		t.Fatalf("expected date_in_past, got %v", err)
	}
}

func TestCreateBookingInvalidDate(t *testing.T) {
	uc := createUC(seededRepo(), time.Now())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 1, ServiceID: 5,
		Date: "11/06/2025", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Fatalf("expected invalid_date_or_time, got %v", err)
	}
}

func TestCreateBookingUnknownSalon(t *testing.T) {
	uc := createUC(seededRepo(), time.Now())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 99, ServiceID: 5,
		Date: "2999-01-01", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "salon_not_found") {
		t.Fatalf("expected salon_not_found, got %v", err)
	}
}

func TestCreateBookingInactiveSalon(t *testing.T) {
	uc := createUC(seededRepo(), time.Now())

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 2, ServiceID: 5,
		Date: "2999-01-01", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "salon_inactive") {
		t.Fatalf("expected salon_inactive, got %v", err)
	}
}

func TestCreateBookingForeignBarberRejected(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	uc := createUC(seededRepo(), now)

	// Barber 4 has no salon at all.
	barberID := uint(4)
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 1, ServiceID: 5,
		BarberID: &barberID,
		Date:     "2025-06-11", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "barber_not_in_salon") {
		t.Fatalf("expected barber_not_in_salon, got %v", err)
	}
}

func TestCreateBookingServiceFromOtherSalon(t *testing.T) {
	repo := seededRepo()
	repo.services[6] = &models.Service{ID: 6, SalonID: 2, IsActive: true}
	uc := createUC(repo, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CustomerID: 20, Role: models.RoleCustomer, SalonID: 1, ServiceID: 6,
		Date: "2025-06-11", Time: "10:00",
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}
