package payment

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/servererrors"
	"github.com/menna-17/backend-craftora/internal/validate"
	"github.com/go-chi/chi"
	"github.com/stripe/stripe-go/v78"
)

// webhook bodies are signed over the raw bytes, so reads are bounded but
// never re-encoded before verification.
const maxWebhookBodyBytes = 65536

type servicer interface {
	createCheckoutSession(req *CreateCheckoutSessionRequest) (string, error)
	createPaymentIntent(amount int64) (string, error)
	verifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

type handler struct {
	service servicer
}

func NewHandler(paymentService servicer) *handler {
	return &handler{
		service: paymentService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/payment/create-checkout-session",
		handlerutils.MakeHandler(
			h.createCheckoutSessionHandler,
		),
	)

	router.Post(
		"/payment/create-payment-intent",
		handlerutils.MakeHandler(
			h.createPaymentIntentHandler,
		),
	)

	router.Post(
		"/payment/webhook",
		h.webhookHandler,
	)
}

func (h *handler) createCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) error {
	var payload *CreateCheckoutSessionRequest
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

	sessionURL, err := h.service.createCheckoutSession(payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"checkout session created",
		CreateCheckoutSessionResponse{
			URL: sessionURL,
		},
	)
}

func (h *handler) createPaymentIntentHandler(w http.ResponseWriter, r *http.Request) error {
	var payload *CreatePaymentIntentRequest
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

	clientSecret, err := h.service.createPaymentIntent(payload.Amount)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"payment intent created",
		CreatePaymentIntentResponse{
			ClientSecret: clientSecret,
		},
	)
}

// webhookHandler is deliberately not wrapped in MakeHandler: the payment
// processor expects a plain-text error body, and the request body must stay
// raw for signature verification.
func (h *handler) webhookHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	payload, err := io.ReadAll(
		io.LimitReader(r.Body, maxWebhookBodyBytes),
	)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	webhookEvent, err := h.service.verifyWebhook(
		payload,
		r.Header.Get("Stripe-Signature"),
	)
	if err != nil {
		log.Println("webhook signature verification failed:", err)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Webhook Error: %v", err)
		return
	}

	log.Println("stripe event:", webhookEvent.Type)

	handlerutils.WriteJSON(
		w,
		http.StatusOK,
		map[string]bool{"received": true},
	)
}
