package salon

import (
	"context"
	"sort"

	"github.com/saloonhq/saloon-backend/internal/geo"
	"github.com/saloonhq/saloon-backend/internal/models"
)

const DefaultRadiusKm = 10

type SalonSource interface {
	ListActiveSalons(ctx context.Context) ([]models.Salon, error)
}

type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type NearbySalon struct {
	models.Salon
	Distance float64 `json:"distance"`
}

type NearbySalons struct {
	source SalonSource
}

func NewNearbySalons(source SalonSource) *NearbySalons {
	return &NearbySalons{source: source}
}

// Execute scans every active salon, keeps the ones within the radius
// and returns them sorted by distance, nearest first. A full scan is
// fine at the salon counts this runs at; a spatial index is the known
// next step if that stops being true.
func (uc *NearbySalons) Execute(
	ctx context.Context,
	in NearbyInput,
) ([]NearbySalon, error) {

	// Zero means the caller did not pick a radius. A negative radius is
	// kept as supplied and matches nothing.
	radius := in.RadiusKm
	if radius == 0 {
		radius = DefaultRadiusKm
	}

	salons, err := uc.source.ListActiveSalons(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]NearbySalon, 0, len(salons))
	for _, s := range salons {
		d := geo.Haversine(in.Latitude, in.Longitude, s.Latitude, s.Longitude)
		if d <= radius {
			results = append(results, NearbySalon{
				Salon:    s,
				Distance: geo.Round2(d),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	return results, nil
}
