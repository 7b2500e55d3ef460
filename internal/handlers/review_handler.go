package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/cache"
	domain "github.com/saloonhq/saloon-backend/internal/domain/booking"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/httpresp"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

type ReviewHandler struct {
	db    *gorm.DB
	cache *cache.SalonCache
}

func NewReviewHandler(db *gorm.DB, salonCache *cache.SalonCache) *ReviewHandler {
	return &ReviewHandler{db: db, cache: salonCache}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// ======================================================
// CREATE
// ======================================================

// Create accepts one review per completed booking, written by the
// booking's customer. The barber is attributed from the booking, never
// from the payload, and the salon's derived rating is recomputed.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.ReviewCreate) {
		httperr.Forbidden(c, "not_a_customer", "Only customers can write reviews.")
		return
	}

	var req CreateReviewRequest
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
		httperr.Forbidden(c, "not_your_booking", "You can only review your own bookings.")
		return
	}
	if booking.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "booking_not_completed", "You can only review completed bookings.")
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "review_already_exists", "This booking already has a review.")
		return
	}

	review := models.Review{
		BookingID:  booking.ID,
		CustomerID: userID,
		SalonID:    booking.SalonID,
		BarberID:   booking.BarberID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Could not create the review.")
		return
	}

	h.recomputeSalonRating(booking.SalonID)
	if booking.BarberID != nil {
		h.recomputeBarberRating(*booking.BarberID)
	}

	// The salon row changed; nearby must not serve the old rating.
	h.cache.Invalidate(c.Request.Context())

	httpresp.Created(c, review)
}

// ======================================================
// LIST
// ======================================================

// List is public: anonymous callers see all reviews, customers their
// own, owners their salons', barbers the ones about them.
func (h *ReviewHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Review{})

	if userID, role, authed := actorFrom(c); authed {
		switch role {
		case models.RoleCustomer:
			q = q.Where("customer_id = ?", userID)

		case models.RoleOwner:
			q = q.Where("salon_id IN (?)",
				h.db.Model(&models.Salon{}).Select("id").Where("owner_id = ?", userID))

		case models.RoleBarber:
			q = q.Where("barber_id IN (?)",
				h.db.Model(&models.Barber{}).Select("id").Where("user_id = ?", userID))
		}
	}

	if salonID := c.Query("salon"); salonID != "" {
		q = q.Where("salon_id = ?", salonID)
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	httpresp.List(c, reviews)
}

// ======================================================
// DERIVED RATINGS
// ======================================================

func (h *ReviewHandler) recomputeSalonRating(salonID uint) {
	var stats struct {
		Avg   float64
		Count int64
	}
	h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("salon_id = ?", salonID).
		Scan(&stats)

	h.db.Model(&models.Salon{}).
		Where("id = ?", salonID).
		Updates(map[string]any{
			"rating":        stats.Avg,
			"total_reviews": stats.Count,
		})
}

func (h *ReviewHandler) recomputeBarberRating(barberID uint) {
	var avg float64
	h.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("barber_id = ?", barberID).
		Scan(&avg)

	h.db.Model(&models.Barber{}).
		Where("id = ?", barberID).
		Update("rating", avg)
}
