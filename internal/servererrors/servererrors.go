package servererrors

import "errors"

// Sentinel errors shared between services and handlers. Handlers translate
// these into *ServerError values with the right status code per route.
var (
	ErrNoBearerToken         = errors.New("no token, authorization denied")
	ErrInvalidToken          = errors.New("token is not valid")
	ErrAccessDenied          = errors.New("access denied")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidOrExpiredCode  = errors.New("invalid or expired code")
	ErrProductNotFound       = errors.New("product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderMustContainItems = errors.New("order must contain items")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")
)

type ServerError struct {
	StatusCode int
	message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.message
}
