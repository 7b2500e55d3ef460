package models

import "time"

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"type:text" json:"address"`

	Latitude  float64 `gorm:"type:decimal(9,6)" json:"latitude"`
	Longitude float64 `gorm:"type:decimal(9,6)" json:"longitude"`

	Phone       string `gorm:"size:15" json:"phone"`
	OpeningTime string `gorm:"size:5" json:"opening_time"`
	ClosingTime string `gorm:"size:5" json:"closing_time"`

	// Derived from reviews, never written by clients.
	Rating       float64 `gorm:"type:decimal(3,2);default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`

	CoverImage string `gorm:"size:500" json:"cover_image"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
