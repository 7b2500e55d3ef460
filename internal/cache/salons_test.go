package cache

import (
	"context"
	"testing"
	"time"

	"github.com/saloonhq/saloon-backend/internal/models"
)

type staticSource struct {
	salons []models.Salon
	calls  int
}

func (s *staticSource) ListActiveSalons(_ context.Context) ([]models.Salon, error) {
	s.calls++
	return s.salons, nil
}

func TestNilClientDelegatesToSource(t *testing.T) {
	source := &staticSource{salons: []models.Salon{{ID: 1, Name: "Corner Cuts"}}}
	c := NewSalonCache(source, nil, time.Minute)

	got, err := c.ListActiveSalons(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Corner Cuts" {
		t.Errorf("unexpected salons: %+v", got)
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1", source.calls)
	}
}

func TestNilClientInvalidateIsSafe(t *testing.T) {
	c := NewSalonCache(&staticSource{}, nil, time.Minute)

	// Handlers invalidate after every salon mutation and rating change
	// without checking whether caching is enabled.
	c.Invalidate(context.Background())

	if _, err := c.ListActiveSalons(context.Background()); err != nil {
		t.Fatalf("unexpected error after invalidate: %v", err)
	}
}
