package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/httpresp"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	BookingID     uint            `json:"booking_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.PaymentCreate) {
		httperr.Forbidden(c, "not_a_customer", "Only customers can create payments.")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, req.BookingID).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if booking.CustomerID != userID {
		httperr.Forbidden(c, "not_your_booking", "You can only pay for your own bookings.")
		return
	}

	var count int64
	h.db.Model(&models.Payment{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "payment_already_exists", "This booking already has a payment.")
		return
	}

	payment := models.Payment{
		BookingID:     booking.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentStatusPending,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment", "Could not create the payment.")
		return
	}

	httpresp.Created(c, payment)
}

// ======================================================
// CONFIRM
// ======================================================

// Confirm marks a payment completed and assigns a transaction id, using
// the supplied value or a generated TXN fallback.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID, role := mustActor(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid payment id.")
		return
	}

	var payment models.Payment
	if err := h.db.Preload("Booking").Preload("Booking.Salon").First(&payment, id).Error; err != nil {
		httperr.NotFound(c, "payment_not_found", "Payment not found.")
		return
	}

	isCustomer := payment.Booking.CustomerID == userID
	isOwner := role == models.RoleOwner && payment.Booking.Salon.OwnerID == userID
	if !isCustomer && !isOwner {
		httperr.Forbidden(c, "not_allowed", "You cannot confirm this payment.")
		return
	}

	if payment.Status == models.PaymentStatusCompleted {
		httperr.Conflict(c, "already_confirmed", "This payment is already confirmed.")
		return
	}

	var req ConfirmPaymentRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	txn := req.TransactionID
	if txn == "" {
		txn = fmt.Sprintf("TXN%d", payment.ID)
	}

	payment.Status = models.PaymentStatusCompleted
	payment.TransactionID = &txn

	if err := h.db.Save(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_confirm_payment", "Could not confirm the payment.")
		return
	}

	c.JSON(200, payment)
}

// ======================================================
// LIST
// ======================================================

// List shows customers their own payments and owners their salons'.
// Other roles get an empty set.
func (h *PaymentHandler) List(c *gin.Context) {
	userID, role := mustActor(c)

	q := h.db.Model(&models.Payment{}).Preload("Booking")

	switch role {
	case models.RoleCustomer:
		q = q.Where("booking_id IN (?)",
			h.db.Model(&models.Booking{}).Select("id").Where("customer_id = ?", userID))

	case models.RoleOwner:
		q = q.Where("booking_id IN (?)",
			h.db.Model(&models.Booking{}).Select("id").Where("salon_id IN (?)",
				h.db.Model(&models.Salon{}).Select("id").Where("owner_id = ?", userID)))

	default:
		httpresp.List(c, []models.Payment{})
		return
	}

	var payments []models.Payment
	if err := q.Order("id DESC").Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	httpresp.List(c, payments)
}
