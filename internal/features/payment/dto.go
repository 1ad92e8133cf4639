package payment

// Requests

type CheckoutItem struct {
	Title    string  `json:"title" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int64   `json:"quantity" validate:"required,min=1"`
}

type CreateCheckoutSessionRequest struct {
	Items []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

type CreatePaymentIntentRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

// Responses

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
