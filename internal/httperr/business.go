package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Kind buckets a business failure into the four categories the API
// exposes: malformed input, state conflict, role/ownership mismatch and
// missing resource.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindPermission
	KindNotFound
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrPermission(code, message string) error {
	return BusinessError{Kind: KindPermission, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// WriteBusiness maps a use-case error onto the HTTP surface. Unknown
// errors become a 500 with the fallback code.
func WriteBusiness(c *gin.Context, err error, fallbackCode string) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, fallbackCode, "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindValidation:
		BadRequest(c, be.Code, be.Message)
	case KindConflict:
		Conflict(c, be.Code, be.Message)
	case KindPermission:
		Forbidden(c, be.Code, be.Message)
	case KindNotFound:
		NotFound(c, be.Code, be.Message)
	default:
		Internal(c, fallbackCode, "Something went wrong.")
	}
}
