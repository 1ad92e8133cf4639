package cart

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/middlewares"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/menna-17/backend-craftora/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	getCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	addItem(ctx context.Context, userID uuid.UUID, item *AddItemRequest) (*CartDTO, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(cartService servicer, middleware middleware) *handler {
	return &handler{
		service:    cartService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/cart",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getCartHandler,
			),
		),
	)

	router.Post(
		"/cart",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.addItemHandler,
			),
		),
	)
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	actor, ok := middlewares.ActorFromContext(ctx)
	if !ok {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrNoBearerToken.Error(),
			nil,
		)
	}

	cart, err := h.service.getCart(ctx, actor.UserID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart retrieved",
		cart,
	)
}

func (h *handler) addItemHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	actor, ok := middlewares.ActorFromContext(ctx)
	if !ok {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrNoBearerToken.Error(),
			nil,
		)
	}

	var payload *AddItemRequest
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

	cart, err := h.service.addItem(ctx, actor.UserID, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item added to cart",
		cart,
	)
}
