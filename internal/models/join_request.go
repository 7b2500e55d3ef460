package models

import "time"

const (
	JoinRequestPending  = "pending"
	JoinRequestApproved = "approved"
	JoinRequestRejected = "rejected"
)

// BarberJoinRequest is a barber's request to be affiliated with a salon,
// subject to owner approval. One row per (barber, salon) pair.
type BarberJoinRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberUserID uint `gorm:"not null;uniqueIndex:idx_join_barber_salon" json:"barber"`
	BarberUser   User `gorm:"foreignKey:BarberUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber_user"`

	SalonID uint  `gorm:"not null;uniqueIndex:idx_join_barber_salon" json:"salon"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Message string `gorm:"type:text" json:"message"`
	Status  string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
