package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/menna-17/backend-craftora/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	getAllUsers(ctx context.Context) ([]*UserDTO, error)
	updateUser(ctx context.Context, update *UpdateUserRequest) (*UserDTO, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
	RequireRoles(h handlerutils.APIHandler, allowedRoles ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(adminService servicer, middleware middleware) *handler {
	return &handler{
		service:    adminService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/admin/users",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.getAllUsersHandler,
					auth.RoleAdmin,
				),
			),
		),
	)

	router.Patch(
		"/admin/users/{userID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.updateUserHandler,
					auth.RoleAdmin,
				),
			),
		),
	)
}

func (h *handler) getAllUsersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	users, err := h.service.getAllUsers(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all users retrieved",
		users,
	)
}

func (h *handler) updateUserHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	var payload *UpdateUserRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.UserID = userID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	user, err := h.service.updateUser(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidRole):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidRole.Error(),
				nil,
			)

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
		"user updated",
		user,
	)
}
