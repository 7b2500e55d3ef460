package affiliation

import (
	"context"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/affiliation"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

// ======================================================
// INPUT
// ======================================================

type SendJoinRequestInput struct {
	ActorUserID uint
	Role        string
	SalonID     uint
	Message     string
}

// ======================================================
// USE CASE
// ======================================================

type SendJoinRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSendJoinRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SendJoinRequest {
	return &SendJoinRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SendJoinRequest) Execute(
	ctx context.Context,
	in SendJoinRequestInput,
) (*models.BarberJoinRequest, error) {

	if !policy.Allows(in.Role, policy.JoinRequestSend) {
		return nil, httperr.ErrPermission(
			"not_a_barber",
			"Only barbers can send join requests.",
		)
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found", "Salon not found.")
	}

	// The profile is created lazily here: a freshly registered barber
	// has no Barber row until they first interact with a salon.
	barber, _, err := uc.repo.GetOrCreateBarber(ctx, in.ActorUserID)
	if err != nil {
		return nil, err
	}

	if barber.SalonID != nil {
		return nil, httperr.ErrConflict(
			"already_in_salon",
			"You are already assigned to a salon. Leave current salon first.",
		)
	}

	pending, err := uc.repo.HasPendingRequest(ctx, in.ActorUserID, salon.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, httperr.ErrConflict(
			"request_already_pending",
			"You already have a pending request for this salon.",
		)
	}

	req := &models.BarberJoinRequest{
		BarberUserID: in.ActorUserID,
		SalonID:      salon.ID,
		Message:      in.Message,
		Status:       models.JoinRequestPending,
	}

	if err := uc.repo.CreateJoinRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &in.ActorUserID,
		Action:   "join_request_sent",
		Entity:   "join_request",
		EntityID: &req.ID,
	})

	return req, nil
}
