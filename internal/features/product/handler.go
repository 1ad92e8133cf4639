package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
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
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, query *GetAllProductsRequestQuery) ([]*Product, int, error)
	getProduct(ctx context.Context, productID uuid.UUID) (*Product, error)
	getSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]*Product, error)
	updateProduct(ctx context.Context, update *UpdateProductRequest) (*Product, error)
	deleteProduct(ctx context.Context, actorID uuid.UUID, actorRole string, productID uuid.UUID) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
	RequireRoles(h handlerutils.APIHandler, allowedRoles ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/products/my-products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.getMyProductsHandler,
					auth.RoleSeller,
				),
			),
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	// protected routes
	router.Post(
		"/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.createProductHandler,
					auth.RoleAdmin,
					auth.RoleSeller,
				),
			),
		),
	)

	router.Put(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.updateProductHandler,
					auth.RoleAdmin,
					auth.RoleSeller,
				),
			),
		),
	)

	router.Delete(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.middleware.RequireRoles(
					h.deleteProductHandler,
					auth.RoleAdmin,
					auth.RoleSeller,
				),
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
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

	var payload *CreateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.SellerID = actor.UserID

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	product, err := h.service.createProduct(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		product,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queryItems := getQueryItems(
		r.URL.Query(),
	)

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	products, totalCount, err := h.service.getAllProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		GetAllProductsResponse{
			Total:    totalCount,
			Page:     queryItems.PageOpts.Page,
			Limit:    queryItems.PageOpts.Limit,
			Products: products,
		},
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	product, err := h.service.getProduct(ctx, productID)
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
		"product found",
		product,
	)
}

func (h *handler) getMyProductsHandler(w http.ResponseWriter, r *http.Request) error {
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

	products, err := h.service.getSellerProducts(ctx, actor.UserID)
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"seller products retrieved",
		products,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
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

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	var payload *UpdateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.ProductID = productID
	payload.ActorID = actor.UserID
	payload.ActorRole = actor.Role

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	product, err := h.service.updateProduct(ctx, payload)
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
		"product updated",
		product,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
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

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrProductNotFound.Error(),
			nil,
		)
	}

	err = h.service.deleteProduct(ctx, actor.UserID, actor.Role, productID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
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
		"product deleted successfully",
		nil,
	)
}

func getQueryItems(queriesParams url.Values) *GetAllProductsRequestQuery {
	query := new(GetAllProductsRequestQuery)

	query.FilterOpts.Category = queriesParams.Get("category")
	query.FilterOpts.Search = queriesParams.Get("search")

	query.PageOpts.Page = stringToUint64(
		1,
		queriesParams.Get("page"),
	)

	// limit is deliberately uncapped to match the existing API contract;
	// callers control response size.
	query.PageOpts.Limit = stringToUint64(
		20,
		queriesParams.Get("limit"),
	)

	query.FilterOpts.MinPrice = stringToFloat64(
		0.00,
		queriesParams.Get("minPrice"),
	)

	query.FilterOpts.MaxPrice = stringToFloat64(
		0.00,
		queriesParams.Get("maxPrice"),
	)

	return query
}

func stringToUint64(defaultValue uint64, field string) uint64 {
	num, err := strconv.ParseUint(field, 10, 0)
	if err != nil || num == 0 {
		return defaultValue
	}

	return num
}

func stringToFloat64(defaultValue float64, field string) float64 {
	num, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return defaultValue
	}

	return num
}
