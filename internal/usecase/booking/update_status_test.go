package booking

import (
	"context"
	"testing"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
)

func statusFixture(status domain.Status, assignedBarber *uint) (*fakeRepo, *UpdateBookingStatus) {
	repo := newFakeRepo()
	salonID := uint(1)

	repo.salons[1] = &models.Salon{ID: 1, OwnerID: 10, IsActive: true}
	repo.barbers[3] = &models.Barber{ID: 3, UserID: 30, SalonID: &salonID}
	repo.barbers[4] = &models.Barber{ID: 4, UserID: 40, SalonID: &salonID}
	repo.bookings[1] = &models.Booking{
		ID: 1, CustomerID: 20, SalonID: 1, ServiceID: 5,
		BarberID: assignedBarber,
		Status:   string(status),
	}

	return repo, NewUpdateBookingStatus(repo, audit.NewDispatcher(nil))
}

func TestAssignedBarberWalksLifecycle(t *testing.T) {
	barberID := uint(3)
	repo, uc := statusFixture(domain.StatusConfirmed, &barberID)

	bk, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
		NewStatus: "in_progress",
	})
	if err != nil {
		t.Fatalf("confirmed -> in_progress: %v", err)
	}
	if bk.Status != "in_progress" {
		t.Errorf("status = %s, want in_progress", bk.Status)
	}

	bk, err = uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
		NewStatus: "completed",
	})
	if err != nil {
		t.Fatalf("in_progress -> completed: %v", err)
	}
	if bk.CompletedAt == nil {
		t.Error("completed_at not stamped")
	}
	if repo.bookings[1].Status != "completed" {
		t.Error("completion not persisted")
	}
}

func TestIllegalEdgeLeavesStatusUnchanged(t *testing.T) {
	barberID := uint(3)
	repo, uc := statusFixture(domain.StatusPending, &barberID)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 30, Role: models.RoleBarber,
		NewStatus: "completed",
	})
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if repo.bookings[1].Status != string(domain.StatusPending) {
		t.Error("status changed after rejected transition")
	}
}

func TestCustomerMayOnlyCancel(t *testing.T) {
	repo, uc := statusFixture(domain.StatusPending, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 20, Role: models.RoleCustomer,
		NewStatus: "confirmed",
	})
	if !httperr.IsBusiness(err, "not_allowed") {
		t.Fatalf("expected not_allowed, got %v", err)
	}

	bk, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 20, Role: models.RoleCustomer,
		NewStatus: "cancelled",
	})
	if err != nil {
		t.Fatalf("customer cancel: %v", err)
	}
	if bk.Status != "cancelled" || bk.CancelledAt == nil {
		t.Errorf("cancel not applied: %+v", bk)
	}
	_ = repo
}

func TestUnassignedBarberDenied(t *testing.T) {
	assigned := uint(3)
	_, uc := statusFixture(domain.StatusConfirmed, &assigned)

	// Barber 4 works at the salon but is not assigned to the booking.
	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 40, Role: models.RoleBarber,
		NewStatus: "in_progress",
	})
	if !httperr.IsBusiness(err, "not_allowed") {
		t.Fatalf("expected not_allowed, got %v", err)
	}
}

func TestOwnerCannotDriveStatus(t *testing.T) {
	assigned := uint(3)
	_, uc := statusFixture(domain.StatusConfirmed, &assigned)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 1, ActorUserID: 10, Role: models.RoleOwner,
		NewStatus: "in_progress",
	})
	if !httperr.IsBusiness(err, "not_allowed") {
		t.Fatalf("expected not_allowed, got %v", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	_, uc := statusFixture(domain.StatusPending, nil)

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		BookingID: 99, ActorUserID: 20, Role: models.RoleCustomer,
		NewStatus: "cancelled",
	})
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("expected booking_not_found, got %v", err)
	}
}
