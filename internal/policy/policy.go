// Package policy is the single place role-based access is decided.
// Ownership and assignment checks (does this booking belong to you, is
// this your salon) stay with the use cases; this table only answers
// whether a role may attempt an action at all.
package policy

import "github.com/saloonhq/saloon-backend/internal/models"

type Action string

const (
	BookingCreate     Action = "booking.create"
	BookingSelfAssign Action = "booking.self_assign"
	JoinRequestSend   Action = "joinrequest.send"
	JoinRequestReview Action = "joinrequest.review"
	SalonManage       Action = "salon.manage"
	ServiceManage     Action = "service.manage"
	PaymentCreate     Action = "payment.create"
	ReviewCreate      Action = "review.create"
)

var table = map[string]map[Action]bool{
	models.RoleCustomer: {
		BookingCreate: true,
		PaymentCreate: true,
		ReviewCreate:  true,
	},
	models.RoleBarber: {
		BookingSelfAssign: true,
		JoinRequestSend:   true,
	},
	models.RoleOwner: {
		JoinRequestReview: true,
		SalonManage:       true,
		ServiceManage:     true,
	},
}

func Allows(role string, action Action) bool {
	return table[role][action]
}
