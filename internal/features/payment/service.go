package payment

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v78"
	checkoutsession "github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/paymentintent"
	"github.com/stripe/stripe-go/v78/webhook"
)

type ServiceConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type service struct {
	*ServiceConfig
}

func NewService(cfg *ServiceConfig) *service {
	stripe.Key = cfg.SecretKey

	return &service{
		ServiceConfig: cfg,
	}
}

// createCheckoutSession builds a hosted checkout session from the client's
// line items. Amounts are converted to the smallest currency unit.
func (s *service) createCheckoutSession(req *CreateCheckoutSessionRequest) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("egp"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
				UnitAmount: stripe.Int64(int64(math.Round(item.Price * 100))),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(s.SuccessURL),
		CancelURL:          stripe.String(s.CancelURL),
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf(
			"failed to create checkout session: %w",
			err,
		)
	}

	return session.URL, nil
}

func (s *service) createPaymentIntent(amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf(
			"failed to create payment intent: %w",
			err,
		)
	}

	return intent.ClientSecret, nil
}

// verifyWebhook checks the signature over the raw body and returns the
// decoded event.
func (s *service) verifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(
		payload,
		signatureHeader,
		s.WebhookSecret,
	)
}
