package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodWallet = "wallet"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"not null;uniqueIndex" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	PaymentMethod string          `gorm:"size:20" json:"payment_method"`
	Status        string          `gorm:"size:20;default:'pending'" json:"status"`

	// Server-assigned on confirmation; never taken from the create payload.
	TransactionID *string `gorm:"size:100;uniqueIndex" json:"transaction_id"`

	CreatedAt time.Time `json:"payment_date"`
	UpdatedAt time.Time `json:"-"`
}
