package handlerutils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testPayload struct {
	Name string `json:"name"`
}

func Test_ParseJSON(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/",
		strings.NewReader(`{"name":"Clay Mug"}`),
	)

	var payload *testPayload
	if err := ParseJSON(req, &payload); err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}

	if payload == nil || payload.Name != "Clay Mug" {
		t.Errorf("got payload %+v, want name Clay Mug", payload)
	}
}

func Test_ParseJSON_nullBody(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/",
		strings.NewReader(`null`),
	)

	// `null` is valid JSON but must not leave callers holding a nil payload
	var payload *testPayload
	if err := ParseJSON(req, &payload); err == nil {
		t.Error("expected an error for a null body")
	}
}

func Test_ParseJSON_malformedBody(t *testing.T) {
	req := httptest.NewRequest(
		http.MethodPost,
		"/",
		strings.NewReader(`{"name":`),
	)

	var payload *testPayload
	if err := ParseJSON(req, &payload); err == nil {
		t.Error("expected an error for a malformed body")
	}
}
