package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// Gateway wraps the Mercado Pago checkout flow for online payments.
// A nil gateway means online payments are disabled and only cash
// payments are accepted.
type Gateway struct {
	preferences preference.Client
	payments    payment.Client
	successURL  string
	failureURL  string
}

func NewGateway(accessToken, successURL, failureURL string) (*Gateway, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Gateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		successURL:  successURL,
		failureURL:  failureURL,
	}, nil
}

func (g *Gateway) Enabled() bool {
	return g != nil
}

type CheckoutSession struct {
	PreferenceID string
	CheckoutURL  string
}

// CreateCheckout opens a checkout preference for the given charge. The
// externalRef ties the eventual webhook notification back to our
// payment record.
func (g *Gateway) CreateCheckout(
	ctx context.Context,
	title string,
	amount float64,
	externalRef string,
) (*CheckoutSession, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     title,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		ExternalReference: externalRef,
		BackURLs: &preference.BackURLsRequest{
			Success: g.successURL,
			Failure: g.failureURL,
		},
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &CheckoutSession{
		PreferenceID: resp.ID,
		CheckoutURL:  resp.InitPoint,
	}, nil
}

// PaymentNotification is what the webhook learns about a payment event.
type PaymentNotification struct {
	ExternalReference string
	Approved          bool
}

// LookupPayment resolves a webhook notification id against the API;
// webhook bodies are untrusted, so the status always comes from here.
func (g *Gateway) LookupPayment(ctx context.Context, paymentID int) (*PaymentNotification, error) {
	resp, err := g.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &PaymentNotification{
		ExternalReference: resp.ExternalReference,
		Approved:          resp.Status == "approved",
	}, nil
}
