package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/saloonhq/saloon-backend/internal/domain/affiliation"
	"github.com/saloonhq/saloon-backend/internal/models"
)

type AffiliationGormRepository struct {
	db *gorm.DB
}

func NewAffiliationGormRepository(db *gorm.DB) *AffiliationGormRepository {
	return &AffiliationGormRepository{db: db}
}

func (r *AffiliationGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AffiliationGormRepository) GetOrCreateBarber(
	ctx context.Context,
	userID uint,
) (*models.Barber, bool, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&barber).Error

	if err == nil {
		return &barber, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	barber = models.Barber{UserID: userID, IsAvailable: true}
	if err := r.db.WithContext(ctx).Create(&barber).Error; err != nil {
		return nil, false, err
	}
	return &barber, true, nil
}

func (r *AffiliationGormRepository) HasPendingRequest(
	ctx context.Context,
	barberUserID uint,
	salonID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BarberJoinRequest{}).
		Where(
			"barber_user_id = ? AND salon_id = ? AND status = ?",
			barberUserID, salonID, models.JoinRequestPending,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AffiliationGormRepository) CreateJoinRequest(
	ctx context.Context,
	req *models.BarberJoinRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *AffiliationGormRepository) GetJoinRequestByID(
	ctx context.Context,
	id uint,
) (*models.BarberJoinRequest, error) {

	var req models.BarberJoinRequest
	if err := r.db.WithContext(ctx).
		Preload("Salon").
		First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AffiliationGormRepository) UpdateJoinRequest(
	ctx context.Context,
	req *models.BarberJoinRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *AffiliationGormRepository) ApproveAndAssign(
	ctx context.Context,
	req *models.BarberJoinRequest,
	barber *models.Barber,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req.Status = models.JoinRequestApproved
		if err := tx.Save(req).Error; err != nil {
			return err
		}

		barber.SalonID = &req.SalonID
		return tx.Save(barber).Error
	})
}

// Compile-time check
var _ domain.Repository = (*AffiliationGormRepository)(nil)
