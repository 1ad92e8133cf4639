package contact

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/menna-17/backend-craftora/internal/validate"
	"github.com/go-chi/chi"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

type mailSender interface {
	Send(ctx context.Context, fromName, replyTo, to, subject, body string) error
}

type handler struct {
	mailer    mailSender
	recipient string
}

func NewHandler(mailer mailSender, recipient string) *handler {
	return &handler{
		mailer:    mailer,
		recipient: recipient,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/contact",
		handlerutils.MakeHandler(
			h.contactHandler,
		),
	)
}

// contactHandler relays a storefront contact message to the shop inbox. The
// visitor's address goes into reply-to so staff can answer directly.
func (h *handler) contactHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *ContactRequest
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
			http.StatusBadRequest,
			"please fill in all fields",
			err,
		)
	}

	err := h.mailer.Send(
		ctx,
		payload.Name,
		payload.Email,
		h.recipient,
		fmt.Sprintf("New message from %s", payload.Name),
		fmt.Sprintf(
			"From: %s\nEmail: %s\n\n%s",
			payload.Name,
			payload.Email,
			payload.Message,
		),
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"message sent successfully",
		nil,
	)
}
