package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/middlewares"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/menna-17/backend-craftora/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	placeOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error)
	getMyOrders(ctx context.Context, userID uuid.UUID) ([]*OrderDTO, error)
	getAllOrders(ctx context.Context, actor *middlewares.Actor) ([]*OrderDTO, error)
	updateStatus(ctx context.Context, actor *middlewares.Actor, orderID uuid.UUID, status string) (*Order, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
	RequireRoles(h handlerutils.APIHandler, allowedRoles ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	// guest checkout is allowed, so placement is public
	router.Post(
		"/orders",
		handlerutils.MakeHandler(
			h.placeOrderHandler,
		),
	)

	router.Get(
		"/orders",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getMyOrdersHandler,
			),
		),
	)

	router.Get(
		"/orders/all",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.getAllOrdersHandler,
					auth.RoleAdmin,
					auth.RoleSeller,
				),
			),
		),
	)

	router.Patch(
		"/orders/{orderID}/status",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.updateStatusHandler,
					auth.RoleAdmin,
					auth.RoleSeller,
				),
			),
		),
	)
}

func (h *handler) placeOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *PlaceOrderRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if len(payload.Items) == 0 {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrOrderMustContainItems.Error(),
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

	placedOrder, err := h.service.placeOrder(ctx, payload)
	if err != nil {
		var insufficientStock *servererrors.InsufficientStockError

		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.As(err, &insufficientStock):
			return servererrors.New(
				http.StatusBadRequest,
				insufficientStock.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order placed",
		placedOrder,
	)
}

func (h *handler) getMyOrdersHandler(w http.ResponseWriter, r *http.Request) error {
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

	orders, err := h.service.getMyOrders(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if orders == nil {
		orders = []*OrderDTO{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"orders retrieved",
		orders,
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	actor, ok := middlewares.ActorFromContext(ctx)
	if !ok {
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrAccessDenied.Error(),
			nil,
		)
	}

	orders, err := h.service.getAllOrders(ctx, actor)
	if err != nil {
		return err
	}

	if orders == nil {
		orders = []*OrderDTO{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all orders retrieved",
		orders,
	)
}

func (h *handler) updateStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	actor, ok := middlewares.ActorFromContext(ctx)
	if !ok {
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrAccessDenied.Error(),
			nil,
		)
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)
	}

	var payload *UpdateStatusRequest
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

	updatedOrder, err := h.service.updateStatus(
		ctx,
		actor,
		orderID,
		payload.Status,
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidStatus):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidStatus.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrOrderNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrOrderNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrAccessDenied):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrAccessDenied.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order status updated",
		updatedOrder,
	)
}
