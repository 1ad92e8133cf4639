package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/menna-17/backend-craftora/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	registerUser(ctx context.Context, newUser *RegisterRequest) (*User, error)
	adminRegisterUser(ctx context.Context, newUser *AdminRegisterRequest) (*User, error)
	loginUser(ctx context.Context, credentials *LoginRequest) (string, *User, error)
	verifyToken(tokenStr string) (*auth.TokenClaims, error)
	forgotPassword(ctx context.Context, email string) (userID uuid.UUID, err error)
	resetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
	RequireRoles(h handlerutils.APIHandler, allowedRoles ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(userService servicer, middleware middleware) *handler {
	return &handler{
		service:    userService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/register",
		handlerutils.MakeHandler(
			h.registerHandler,
		),
	)

	router.Post(
		"/auth/login",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	router.Get(
		"/auth/verify",
		handlerutils.MakeHandler(
			h.verifyHandler,
		),
	)

	router.Post(
		"/auth/forgot-password",
		handlerutils.MakeHandler(
			h.forgotPasswordHandler,
		),
	)

	router.Post(
		"/auth/reset-password",
		handlerutils.MakeHandler(
			h.resetPasswordHandler,
		),
	)

	// protected routes
	router.Post(
		"/auth/admin/register",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.adminRegisterHandler,
					auth.RoleAdmin,
				),
			),
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *RegisterRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	user, err := h.service.registerUser(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserAlreadyExists):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrUserAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"user registered successfully",
		RegisteredUserResponse{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		},
	)
}

func (h *handler) adminRegisterHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *AdminRegisterRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	user, err := h.service.adminRegisterUser(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidRole):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidRole.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrUserAlreadyExists):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrUserAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		fmt.Sprintf("new %s registered successfully", user.Role),
		RegisteredUserResponse{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Role:      user.Role,
		},
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *LoginRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	token, user, err := h.service.loginUser(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidCredentials):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"login successful",
		LoginResponse{
			Token: token,
			User: RegisteredUserResponse{
				FirstName: user.FirstName,
				LastName:  user.LastName,
				Email:     user.Email,
				Role:      user.Role,
			},
		},
	)
}

func (h *handler) verifyHandler(w http.ResponseWriter, r *http.Request) error {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrNoBearerToken.Error(),
			nil,
		)
	}

	claims, err := h.service.verifyToken(
		strings.TrimPrefix(authHeader, "Bearer "),
	)
	if err != nil {
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrInvalidToken.Error(),
			nil,
		)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"token verified",
		VerifiedTokenResponse{
			UserID: claims.UserID,
			Role:   claims.Role,
		},
	)
}

func (h *handler) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *ForgotPasswordRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	userID, err := h.service.forgotPassword(ctx, payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"reset code sent",
		ForgotPasswordResponse{
			UserID: userID,
		},
	)
}

func (h *handler) resetPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *ResetPasswordRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	if err := h.service.resetPassword(ctx, payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUserNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrUserNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInvalidOrExpiredCode):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidOrExpiredCode.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"password reset successful",
		nil,
	)
}
