package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/httpresp"
	"github.com/saloonhq/saloon-backend/internal/models"
	ucBooking "github.com/saloonhq/saloon-backend/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db             *gorm.DB
	createUC       *ucBooking.CreateBooking
	selfAssignUC   *ucBooking.SelfAssignBooking
	updateStatusUC *ucBooking.UpdateBookingStatus
	cancelUC       *ucBooking.CancelBooking
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	selfAssignUC *ucBooking.SelfAssignBooking,
	updateStatusUC *ucBooking.UpdateBookingStatus,
	cancelUC *ucBooking.CancelBooking,
) *BookingHandler {
	return &BookingHandler{
		db:             db,
		createUC:       createUC,
		selfAssignUC:   selfAssignUC,
		updateStatusUC: updateStatusUC,
		cancelUC:       cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SalonID     uint   `json:"salon_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	BarberID    *uint  `json:"barber_id"`
	BookingDate string `json:"booking_date" binding:"required"`
	BookingTime string `json:"booking_time" binding:"required"`
	Notes       string `json:"notes"`
}

type PatchBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID, role := mustActor(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	bk, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID: userID,
		Role:       role,
		SalonID:    req.SalonID,
		ServiceID:  req.ServiceID,
		BarberID:   req.BarberID,
		Date:       req.BookingDate,
		Time:       req.BookingTime,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_create_booking")
		return
	}

	httpresp.Created(c, bk)
}

// ======================================================
// LIST / GET
// ======================================================

// bookingScope is the visibility bucket a caller's booking list is
// filtered by.
type bookingScope int

const (
	scopeNone bookingScope = iota
	scopeCustomer
	scopeSalon
	scopeOwner
)

// bookingVisibility decides whose bookings the actor may list. A barber
// without a profile or without a salon gets an empty set, not an error.
func bookingVisibility(role string, barber *models.Barber) bookingScope {
	switch role {
	case models.RoleCustomer:
		return scopeCustomer
	case models.RoleBarber:
		if barber == nil || barber.SalonID == nil {
			return scopeNone
		}
		return scopeSalon
	case models.RoleOwner:
		return scopeOwner
	}
	return scopeNone
}

// List applies role visibility: customers see their own bookings,
// barbers see their salon's, owners see their salons'.
func (h *BookingHandler) List(c *gin.Context) {
	userID, role := mustActor(c)

	var barber *models.Barber
	if role == models.RoleBarber {
		var b models.Barber
		if err := h.db.Where("user_id = ?", userID).First(&b).Error; err == nil {
			barber = &b
		}
	}

	q := h.db.Model(&models.Booking{})

	switch bookingVisibility(role, barber) {
	case scopeCustomer:
		q = q.Where("customer_id = ?", userID)

	case scopeSalon:
		q = q.Where("salon_id = ?", *barber.SalonID)

	case scopeOwner:
		q = q.Where("salon_id IN (?)",
			h.db.Model(&models.Salon{}).Select("id").Where("owner_id = ?", userID))

	default:
		httpresp.List(c, []models.Booking{})
		return
	}

	if salonID := c.Query("salon"); salonID != "" {
		q = q.Where("salon_id = ?", salonID)
	}

	var bookings []models.Booking
	if err := q.Order("booking_date DESC, booking_time DESC").Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, role := mustActor(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var bk models.Booking
	if err := h.db.First(&bk, id).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if !h.canSee(userID, role, &bk) {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.JSON(200, bk)
}

// ======================================================
// PATCH / CANCEL / COMPLETE
// ======================================================

// Patch drives the booking lifecycle. A barber confirming a booking is
// the self-assignment claim; every other edge goes through the plain
// status transition.
func (h *BookingHandler) Patch(c *gin.Context) {
	userID, role := mustActor(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req PatchBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if role == models.RoleBarber && req.Status == string(domain.StatusConfirmed) {
		bk, err := h.selfAssignUC.Execute(c.Request.Context(), ucBooking.SelfAssignInput{
			BookingID:   id,
			ActorUserID: userID,
			Role:        role,
		})
		if err != nil {
			httperr.WriteBusiness(c, err, "failed_to_assign_booking")
			return
		}
		c.JSON(200, bk)
		return
	}

	bk, err := h.updateStatusUC.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		BookingID:   id,
		ActorUserID: userID,
		Role:        role,
		NewStatus:   req.Status,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_update_booking")
		return
	}

	c.JSON(200, bk)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, role := mustActor(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	bk, err := h.cancelUC.Execute(c.Request.Context(), ucBooking.CancelInput{
		BookingID:   id,
		ActorUserID: userID,
		Role:        role,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_cancel_booking")
		return
	}

	c.JSON(200, bk)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID, role := mustActor(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	bk, err := h.updateStatusUC.Execute(c.Request.Context(), ucBooking.UpdateStatusInput{
		BookingID:   id,
		ActorUserID: userID,
		Role:        role,
		NewStatus:   string(domain.StatusCompleted),
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_complete_booking")
		return
	}

	c.JSON(200, bk)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) canSee(userID uint, role string, bk *models.Booking) bool {
	switch role {
	case models.RoleCustomer:
		return bk.CustomerID == userID

	case models.RoleBarber:
		var barber models.Barber
		if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
			return false
		}
		return barber.SalonID != nil && *barber.SalonID == bk.SalonID

	case models.RoleOwner:
		var salon models.Salon
		if err := h.db.First(&salon, bk.SalonID).Error; err != nil {
			return false
		}
		return salon.OwnerID == userID
	}
	return false
}
