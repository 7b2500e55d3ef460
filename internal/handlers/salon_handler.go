package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/cache"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/httpresp"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
	ucSalon "github.com/saloonhq/saloon-backend/internal/usecase/salon"
)

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	db     *gorm.DB
	cache  *cache.SalonCache
	nearby *ucSalon.NearbySalons
}

func NewSalonHandler(db *gorm.DB, salonCache *cache.SalonCache, nearby *ucSalon.NearbySalons) *SalonHandler {
	return &SalonHandler{
		db:     db,
		cache:  salonCache,
		nearby: nearby,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SalonRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address" binding:"required"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Phone       string  `json:"phone"`
	OpeningTime string  `json:"opening_time"`
	ClosingTime string  `json:"closing_time"`
	CoverImage  string  `json:"cover_image"`
}

type SalonPatchRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Phone       *string  `json:"phone"`
	OpeningTime *string  `json:"opening_time"`
	ClosingTime *string  `json:"closing_time"`
	CoverImage  *string  `json:"cover_image"`
	IsActive    *bool    `json:"is_active"`
}

// ======================================================
// LIST / GET
// ======================================================

// List shows active salons to everyone; owners additionally see their
// own salons in any state.
func (h *SalonHandler) List(c *gin.Context) {
	userID, role, authed := actorFrom(c)

	q := h.db.Model(&models.Salon{})
	if authed && role == models.RoleOwner {
		q = q.Where("is_active = ? OR owner_id = ?", true, userID)
	} else {
		q = q.Where("is_active = ?", true)
	}

	var salons []models.Salon
	if err := q.Order("id ASC").Find(&salons).Error; err != nil {
		httperr.Internal(c, "failed_to_list_salons", "Could not list salons.")
		return
	}

	httpresp.List(c, salons)
}

func (h *SalonHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}

	if !salon.IsActive {
		userID, role, authed := actorFrom(c)
		if !authed || role != models.RoleOwner || salon.OwnerID != userID {
			httperr.NotFound(c, "salon_not_found", "Salon not found.")
			return
		}
	}

	c.JSON(200, salon)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *SalonHandler) Create(c *gin.Context) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.SalonManage) {
		httperr.Forbidden(c, "not_an_owner", "Only owners can create salons.")
		return
	}

	var req SalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	salon := models.Salon{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		CoverImage:  req.CoverImage,
		IsActive:    true,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_create_salon", "Could not create the salon.")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	httpresp.Created(c, salon)
}

func (h *SalonHandler) Update(c *gin.Context) {
	salon, ok := h.ownedSalon(c)
	if !ok {
		return
	}

	var req SalonPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	applySalonPatch(salon, &req)

	if err := h.db.Save(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Could not update the salon.")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.JSON(200, salon)
}

// Delete removes the salon. Barbers pointing at it are detached by the
// SET NULL constraint, never deleted.
func (h *SalonHandler) Delete(c *gin.Context) {
	salon, ok := h.ownedSalon(c)
	if !ok {
		return
	}

	if err := h.db.Delete(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_salon", "Could not delete the salon.")
		return
	}

	h.cache.Invalidate(c.Request.Context())
	c.Status(204)
}

// ======================================================
// NEARBY
// ======================================================

func (h *SalonHandler) Nearby(c *gin.Context) {
	latStr := c.Query("latitude")
	lngStr := c.Query("longitude")
	if latStr == "" || lngStr == "" {
		httperr.BadRequest(c, "missing_coordinates", "latitude and longitude are required.")
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_latitude", "latitude must be a number.")
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_longitude", "longitude must be a number.")
		return
	}

	radius := 0.0
	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_radius", "radius must be a number.")
			return
		}
	}

	results, err := h.nearby.Execute(c.Request.Context(), ucSalon.NearbyInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radius,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_search_salons", "Could not search salons.")
		return
	}

	httpresp.List(c, results)
}

// ======================================================
// HELPERS
// ======================================================

func (h *SalonHandler) ownedSalon(c *gin.Context) (*models.Salon, bool) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.SalonManage) {
		httperr.Forbidden(c, "not_an_owner", "Only owners can manage salons.")
		return nil, false
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return nil, false
	}

	var salon models.Salon
	if err := h.db.First(&salon, id).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}

	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_your_salon", "You can only manage your own salons.")
		return nil, false
	}

	return &salon, true
}

func applySalonPatch(salon *models.Salon, req *SalonPatchRequest) {
	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Description != nil {
		salon.Description = *req.Description
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Latitude != nil {
		salon.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		salon.Longitude = *req.Longitude
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.OpeningTime != nil {
		salon.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		salon.ClosingTime = *req.ClosingTime
	}
	if req.CoverImage != nil {
		salon.CoverImage = *req.CoverImage
	}
	if req.IsActive != nil {
		salon.IsActive = *req.IsActive
	}
}
