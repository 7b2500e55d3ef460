package handlers

import (
	"testing"

	"github.com/saloonhq/saloon-backend/internal/models"
)

func TestBookingVisibility(t *testing.T) {
	salonID := uint(1)

	cases := []struct {
		name   string
		role   string
		barber *models.Barber
		want   bookingScope
	}{
		{"customer sees own", models.RoleCustomer, nil, scopeCustomer},
		{"owner sees their salons", models.RoleOwner, nil, scopeOwner},
		{"barber with salon sees salon", models.RoleBarber, &models.Barber{ID: 3, SalonID: &salonID}, scopeSalon},

		// The degrade-to-empty cases: a barber role without a profile
		// row, or with a profile not attached to any salon, gets an
		// empty list rather than an error.
		{"barber without profile sees nothing", models.RoleBarber, nil, scopeNone},
		{"barber without salon sees nothing", models.RoleBarber, &models.Barber{ID: 4}, scopeNone},

		{"unknown role sees nothing", "admin", nil, scopeNone},
	}

	for _, tc := range cases {
		if got := bookingVisibility(tc.role, tc.barber); got != tc.want {
			t.Errorf("%s: scope = %d, want %d", tc.name, got, tc.want)
		}
	}
}
