package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/httpresp"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	SalonID     uint            `json:"salon_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	DurationMin int             `json:"duration" binding:"required,min=1"`
	Image       string          `json:"image"`
}

type ServicePatchRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	DurationMin *int             `json:"duration"`
	Image       *string          `json:"image"`
	IsActive    *bool            `json:"is_active"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{}).Where("is_active = ?", true)

	if salonID := c.Query("salon"); salonID != "" {
		q = q.Where("salon_id = ?", salonID)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var service models.Service
	if err := h.db.Where("id = ? AND is_active = ?", id, true).First(&service).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	c.JSON(200, service)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.ServiceManage) {
		httperr.Forbidden(c, "not_an_owner", "Only owners can manage services.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, req.SalonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_your_salon", "You can only add services to your own salons.")
		return
	}

	service := models.Service{
		SalonID:     req.SalonID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Image:       req.Image,
		IsActive:    true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create the service.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var req ServicePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Image != nil {
		service.Image = *req.Image
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update the service.")
		return
	}

	c.JSON(200, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	if err := h.db.Delete(service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	c.Status(204)
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) ownedService(c *gin.Context) (*models.Service, bool) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.ServiceManage) {
		httperr.Forbidden(c, "not_an_owner", "Only owners can manage services.")
		return nil, false
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return nil, false
	}

	var service models.Service
	if err := h.db.Preload("Salon").First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}

	if service.Salon.OwnerID != userID {
		httperr.Forbidden(c, "not_your_salon", "You can only manage services of your own salons.")
		return nil, false
	}

	return &service, true
}
