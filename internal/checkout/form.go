package checkout

import (
	"strings"

	"go-storefront/internal/models"
)

// Validation messages shown on the checkout form.
const (
	ErrMsgCartEmpty          = "Your cart is empty."
	ErrMsgRequiredFields     = "Please complete all required fields."
	ErrMsgAddressRequired    = "Address and city are required for courier delivery."
	ErrMsgCashPickupOnly     = "Cash payment is only available for pickup."
	ErrMsgUnknownFulfillment = "Choose pickup or courier delivery."
	ErrMsgUnknownPayment     = "Choose cash or GCash payment."
)

// ValidationError rejects a checkout before anything is written.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Form is what the shopper fills in at checkout.
type Form struct {
	CustomerName      string `json:"customer_name"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
	FulfillmentMethod string `json:"fulfillment_method"`
	PaymentMethod     string `json:"payment_method"`
	AddressLine       string `json:"address_line"`
	City              string `json:"city"`
	Notes             string `json:"notes"`
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		CustomerName:      strings.TrimSpace(f.CustomerName),
		CustomerEmail:     strings.TrimSpace(f.CustomerEmail),
		CustomerPhone:     strings.TrimSpace(f.CustomerPhone),
		FulfillmentMethod: strings.TrimSpace(f.FulfillmentMethod),
		PaymentMethod:     strings.TrimSpace(f.PaymentMethod),
		AddressLine:       strings.TrimSpace(f.AddressLine),
		City:              strings.TrimSpace(f.City),
		Notes:             strings.TrimSpace(f.Notes),
	}
}

// Validate checks required fields and the fulfillment/payment combination.
func (f Form) Validate() error {
	f = f.Normalize()

	if f.CustomerName == "" || f.CustomerEmail == "" || f.CustomerPhone == "" ||
		f.FulfillmentMethod == "" || f.PaymentMethod == "" {
		return &ValidationError{Message: ErrMsgRequiredFields}
	}

	switch f.FulfillmentMethod {
	case models.DeliveryPickup, models.DeliveryCourier:
	default:
		return &ValidationError{Message: ErrMsgUnknownFulfillment}
	}

	switch f.PaymentMethod {
	case models.PaymentCash, models.PaymentGCash:
	default:
		return &ValidationError{Message: ErrMsgUnknownPayment}
	}

	if f.FulfillmentMethod == models.DeliveryCourier && (f.AddressLine == "" || f.City == "") {
		return &ValidationError{Message: ErrMsgAddressRequired}
	}

	if f.PaymentMethod == models.PaymentCash && f.FulfillmentMethod != models.DeliveryPickup {
		return &ValidationError{Message: ErrMsgCashPickupOnly}
	}
	return nil
}

// PaymentOption is one selectable payment method.
type PaymentOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PaymentOptions lists the payment methods allowed for a fulfillment method.
func PaymentOptions(fulfillment string) []PaymentOption {
	if fulfillment == models.DeliveryPickup {
		return []PaymentOption{
			{Value: models.PaymentCash, Label: "Cash (Pickup Only)"},
			{Value: models.PaymentGCash, Label: "GCash"},
		}
	}
	return []PaymentOption{{Value: models.PaymentGCash, Label: "GCash"}}
}
