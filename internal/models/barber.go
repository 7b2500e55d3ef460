package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrBarberSalonTaken is returned by the BeforeSave hook when a barber
// row would end up pointing at a salon while another row for the same
// user already points at a different one.
var ErrBarberSalonTaken = errors.New("barber can only be assigned to one salon at a time")

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	// Nullable: a barber without a salon is still a valid profile.
	// Salon deletion clears the reference, it never removes the barber.
	SalonID *uint  `json:"salon_id"`
	Salon   *Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon,omitempty"`

	Specialization  string  `gorm:"size:200" json:"specialization"`
	ExperienceYears int     `gorm:"default:0" json:"experience_years"`
	Rating          float64 `gorm:"type:decimal(3,2);default:0" json:"rating"`
	IsAvailable     bool    `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave enforces the exclusive-salon invariant at write time: a
// barber may hold at most one salon assignment across all rows for the
// same user.
func (b *Barber) BeforeSave(tx *gorm.DB) error {
	if b.SalonID == nil {
		return nil
	}

	var existing Barber
	err := tx.
		Where("user_id = ? AND id <> ?", b.UserID, b.ID).
		First(&existing).Error
	if err != nil {
		return nil
	}

	if existing.SalonID != nil && *existing.SalonID != *b.SalonID {
		return ErrBarberSalonTaken
	}
	return nil
}
