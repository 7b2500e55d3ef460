package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/httpresp"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
	ucAffiliation "github.com/saloonhq/saloon-backend/internal/usecase/affiliation"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	db        *gorm.DB
	sendUC    *ucAffiliation.SendJoinRequest
	approveUC *ucAffiliation.ApproveJoinRequest
	rejectUC  *ucAffiliation.RejectJoinRequest
}

func NewBarberHandler(
	db *gorm.DB,
	sendUC *ucAffiliation.SendJoinRequest,
	approveUC *ucAffiliation.ApproveJoinRequest,
	rejectUC *ucAffiliation.RejectJoinRequest,
) *BarberHandler {
	return &BarberHandler{
		db:        db,
		sendUC:    sendUC,
		approveUC: approveUC,
		rejectUC:  rejectUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type JoinRequestBody struct {
	Message string `json:"message"`
}

type BarberPatchRequest struct {
	Specialization  *string `json:"specialization"`
	ExperienceYears *int    `json:"experience_years"`
	IsAvailable     *bool   `json:"is_available"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Barber{}).Preload("User")

	if salonID := c.Query("salon"); salonID != "" {
		q = q.Where("salon_id = ?", salonID)
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var barber models.Barber
	if err := h.db.Preload("User").Preload("Salon").First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	c.JSON(200, barber)
}

// UpdateMe patches the acting barber's own profile fields.
func (h *BarberHandler) UpdateMe(c *gin.Context) {
	userID, role := mustActor(c)

	if role != models.RoleBarber {
		httperr.Forbidden(c, "not_a_barber", "Only barbers have a barber profile.")
		return
	}

	var barber models.Barber
	if err := h.db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "You do not have a barber profile yet.")
		return
	}

	var req BarberPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Specialization != nil {
		barber.Specialization = *req.Specialization
	}
	if req.ExperienceYears != nil {
		barber.ExperienceYears = *req.ExperienceYears
	}
	if req.IsAvailable != nil {
		barber.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not update the profile.")
		return
	}

	c.JSON(200, barber)
}

// ======================================================
// JOIN REQUESTS
// ======================================================

func (h *BarberHandler) SendJoinRequest(c *gin.Context) {
	userID, role := mustActor(c)

	salonID, ok := parseIDParam(c, "salon_id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid salon id.")
		return
	}

	var body JoinRequestBody
	_ = c.ShouldBindJSON(&body) // message is optional

	req, err := h.sendUC.Execute(c.Request.Context(), ucAffiliation.SendJoinRequestInput{
		ActorUserID: userID,
		Role:        role,
		SalonID:     salonID,
		Message:     body.Message,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_send_request")
		return
	}

	httpresp.Created(c, req)
}

// ListJoinRequests shows pending requests for one of the owner's salons.
// The salon parameter is required.
func (h *BarberHandler) ListJoinRequests(c *gin.Context) {
	userID, role := mustActor(c)

	if !policy.Allows(role, policy.JoinRequestReview) {
		httperr.Forbidden(c, "not_an_owner", "Only owners can list join requests.")
		return
	}

	salonID := c.Query("salon")
	if salonID == "" {
		httperr.BadRequest(c, "missing_salon", "The salon parameter is required.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, "id = ?", salonID).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return
	}
	if salon.OwnerID != userID {
		httperr.Forbidden(c, "not_your_salon", "You can only list requests for your own salons.")
		return
	}

	var requests []models.BarberJoinRequest
	if err := h.db.
		Preload("BarberUser").
		Where("salon_id = ? AND status = ?", salon.ID, models.JoinRequestPending).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Could not list join requests.")
		return
	}

	httpresp.List(c, requests)
}

func (h *BarberHandler) ApproveJoinRequest(c *gin.Context) {
	userID, role := mustActor(c)

	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid request id.")
		return
	}

	barber, err := h.approveUC.Execute(c.Request.Context(), ucAffiliation.ApproveJoinRequestInput{
		ActorUserID: userID,
		Role:        role,
		RequestID:   requestID,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_approve_request")
		return
	}

	c.JSON(200, gin.H{
		"message": "Join request approved.",
		"barber":  barber,
	})
}

func (h *BarberHandler) RejectJoinRequest(c *gin.Context) {
	userID, role := mustActor(c)

	requestID, ok := parseIDParam(c, "request_id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid request id.")
		return
	}

	req, err := h.rejectUC.Execute(c.Request.Context(), ucAffiliation.RejectJoinRequestInput{
		ActorUserID: userID,
		Role:        role,
		RequestID:   requestID,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "failed_to_reject_request")
		return
	}

	c.JSON(200, gin.H{
		"message": "Join request rejected.",
		"request": req,
	})
}
