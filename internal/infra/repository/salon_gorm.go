package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/models"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

func (r *SalonGormRepository) ListActiveSalons(
	ctx context.Context,
) ([]models.Salon, error) {

	var salons []models.Salon
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&salons).Error; err != nil {
		return nil, err
	}
	return salons, nil
}
