package handlerutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
)

// APIHandler is the signature every route handler in this codebase uses.
// Returned errors flow into the centralized error handler middleware.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

var errNullPayload = errors.New("request payload is null")

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return http.ErrBodyNotAllowed
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return err
	}

	// a body of just `null` is valid JSON and decodes without error, but
	// leaves a *T target nil; handlers dereference the payload right after
	// this call, so reject it here.
	if v := reflect.ValueOf(payload); v.Kind() == reflect.Ptr && !v.IsNil() {
		if elem := v.Elem(); elem.Kind() == reflect.Ptr && elem.IsNil() {
			return errNullPayload
		}
	}

	return nil
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(
		w,
		statusCode,
		successResponse{
			Status:  "success",
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) {
	_ = WriteJSON(
		w,
		statusCode,
		errorResponse{
			Status:  "error",
			Message: message,
			Errors:  errs,
		},
	)
}
