package order

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/menna-17/backend-craftora/internal/servererrors"
)

func placeOrderError(t *testing.T, body string) error {
	t.Helper()

	h := NewHandler(nil, nil)

	req := httptest.NewRequest(
		http.MethodPost,
		"/orders",
		strings.NewReader(body),
	)

	return h.placeOrderHandler(httptest.NewRecorder(), req)
}

func Test_placeOrderHandler_nullBody(t *testing.T) {
	err := placeOrderError(t, `null`)

	var srvErr *servererrors.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected *servererrors.ServerError, got %v", err)
	}
	if srvErr.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", srvErr.StatusCode, http.StatusBadRequest)
	}
}

func Test_placeOrderHandler_emptyBody(t *testing.T) {
	// `{}` decodes fine but carries no items
	err := placeOrderError(t, `{}`)

	var srvErr *servererrors.ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected *servererrors.ServerError, got %v", err)
	}
	if srvErr.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", srvErr.StatusCode, http.StatusBadRequest)
	}
	if srvErr.Error() != servererrors.ErrOrderMustContainItems.Error() {
		t.Errorf(
			"got message %q, want %q",
			srvErr.Error(),
			servererrors.ErrOrderMustContainItems.Error(),
		)
	}
}
