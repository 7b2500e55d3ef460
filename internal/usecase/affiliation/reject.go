package affiliation

import (
	"context"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/affiliation"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

type RejectJoinRequestInput struct {
	ActorUserID uint
	Role        string
	RequestID   uint
}

type RejectJoinRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRejectJoinRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RejectJoinRequest {
	return &RejectJoinRequest{
		repo:  repo,
		audit: audit,
	}
}

// Execute rejects a join request. No side effects on the barber row.
func (uc *RejectJoinRequest) Execute(
	ctx context.Context,
	in RejectJoinRequestInput,
) (*models.BarberJoinRequest, error) {

	if !policy.Allows(in.Role, policy.JoinRequestReview) {
		return nil, httperr.ErrPermission(
			"not_an_owner",
			"Only owners can reject requests.",
		)
	}

	req, err := uc.repo.GetJoinRequestByID(ctx, in.RequestID)
	if err != nil {
		return nil, httperr.ErrNotFound("request_not_found", "Join request not found.")
	}

	if req.Salon.OwnerID != in.ActorUserID {
		return nil, httperr.ErrPermission(
			"not_your_salon",
			"You can only reject requests for your own salons.",
		)
	}

	req.Status = models.JoinRequestRejected
	if err := uc.repo.UpdateJoinRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  req.SalonID,
		UserID:   &in.ActorUserID,
		Action:   "join_request_rejected",
		Entity:   "join_request",
		EntityID: &req.ID,
	})

	return req, nil
}
