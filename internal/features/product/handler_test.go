package product

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/middlewares"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type fakeTokenManager struct {
	claims *auth.TokenClaims
}

func (f *fakeTokenManager) ValidateToken(tokenStr string) (bool, *auth.TokenClaims, error) {
	return true, f.claims, nil
}

// sellerRequest builds a request carrying an authenticated Seller actor on
// its context, the way requests arrive after the auth middleware.
func sellerRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	mw := middlewares.NewMiddleware(&fakeTokenManager{
		claims: &auth.TokenClaims{
			UserID: uuid.New().String(),
			Role:   auth.RoleSeller,
		},
	})

	var authedReq *http.Request
	handler := mw.AuthWithContext(
		func(w http.ResponseWriter, r *http.Request) error {
			authedReq = r
			return nil
		},
	)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	if err := handler(httptest.NewRecorder(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return authedReq
}

func withProductIDParam(req *http.Request, productID uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productID", productID.String())

	return req.WithContext(
		context.WithValue(req.Context(), chi.RouteCtxKey, rctx),
	)
}

func assertBadRequest(t *testing.T, err error) {
	t.Helper()

	var srvErr *servererrors.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected *servererrors.ServerError, got %v", err)
	}
	if srvErr.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", srvErr.StatusCode, http.StatusBadRequest)
	}
}

func Test_createProductHandler_nullBody(t *testing.T) {
	h := NewHandler(nil, nil)

	req := sellerRequest(t, http.MethodPost, "/products", `null`)

	assertBadRequest(t, h.createProductHandler(httptest.NewRecorder(), req))
}

func Test_updateProductHandler_nullBody(t *testing.T) {
	h := NewHandler(nil, nil)

	req := withProductIDParam(
		sellerRequest(t, http.MethodPut, "/products/x", `null`),
		uuid.New(),
	)

	assertBadRequest(t, h.updateProductHandler(httptest.NewRecorder(), req))
}
