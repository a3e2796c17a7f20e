package errors

import "fmt"

var (
	// Tokens
	ErrInvalidSigningMethod = fmt.Errorf("unexpected token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")

	// Auth
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// General
	ErrNotFound   = fmt.Errorf("record not found")
	ErrConflict   = fmt.Errorf("record already exists")
	ErrBadRequest = fmt.Errorf("bad request")

	// Domain
	ErrWorkshopInUse       = fmt.Errorf("workshop still has assigned orders")
	ErrCostItemInUse       = fmt.Errorf("cost item is referenced by a workshop catalog")
	ErrOrderInactive       = fmt.Errorf("order is deactivated")
	ErrTransferNotFound    = fmt.Errorf("transfer session not found")
	ErrGestureInFlight     = fmt.Errorf("another drag gesture is already being resolved")
	ErrUnresolvableTarget  = fmt.Errorf("drop target could not be resolved")
	ErrUserNotSelected     = fmt.Errorf("an operator must be selected before proceeding")
	ErrEntryBeingEdited    = fmt.Errorf("a cost entry is still being edited")
	ErrInvalidStatusChange = fmt.Errorf("invalid order status change")
)

// HttpError binds an HTTP status to a user-facing message while keeping the
// wrapped cause and structured context for logging.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
