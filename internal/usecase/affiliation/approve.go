package affiliation

import (
	"context"

	"github.com/saloonhq/saloon-backend/internal/audit"
	domain "github.com/saloonhq/saloon-backend/internal/domain/affiliation"
	"github.com/saloonhq/saloon-backend/internal/httperr"
	"github.com/saloonhq/saloon-backend/internal/models"
	"github.com/saloonhq/saloon-backend/internal/policy"
)

type ApproveJoinRequestInput struct {
	ActorUserID uint
	Role        string
	RequestID   uint
}

type ApproveJoinRequest struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApproveJoinRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ApproveJoinRequest {
	return &ApproveJoinRequest{
		repo:  repo,
		audit: audit,
	}
}

// Execute approves a pending join request and assigns the barber to the
// salon in one transaction. If the barber picked up a salon elsewhere
// since the request was sent, the request flips to rejected and the
// caller gets a conflict.
func (uc *ApproveJoinRequest) Execute(
	ctx context.Context,
	in ApproveJoinRequestInput,
) (*models.Barber, error) {

	if !policy.Allows(in.Role, policy.JoinRequestReview) {
		return nil, httperr.ErrPermission(
			"not_an_owner",
			"Only owners can approve requests.",
		)
	}

	req, err := uc.repo.GetJoinRequestByID(ctx, in.RequestID)
	if err != nil {
		return nil, httperr.ErrNotFound("request_not_found", "Join request not found.")
	}

	if req.Salon.OwnerID != in.ActorUserID {
		return nil, httperr.ErrPermission(
			"not_your_salon",
			"You can only approve requests for your own salons.",
		)
	}

	if req.Status != models.JoinRequestPending {
		return nil, httperr.ErrConflict(
			"request_not_pending",
			"This request has already been handled.",
		)
	}

	barber, _, err := uc.repo.GetOrCreateBarber(ctx, req.BarberUserID)
	if err != nil {
		return nil, err
	}

	if barber.SalonID != nil {
		req.Status = models.JoinRequestRejected
		if err := uc.repo.UpdateJoinRequest(ctx, req); err != nil {
			return nil, err
		}
		return nil, httperr.ErrConflict(
			"barber_already_assigned",
			"Barber is already assigned to another salon.",
		)
	}

	if err := uc.repo.ApproveAndAssign(ctx, req, barber); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  req.SalonID,
		UserID:   &in.ActorUserID,
		Action:   "join_request_approved",
		Entity:   "join_request",
		EntityID: &req.ID,
	})

	return barber, nil
}
