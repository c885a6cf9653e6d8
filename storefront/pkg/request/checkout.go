package request

import (
	"github.com/google/uuid"
)

type Checkout struct {
	CartItems    []CheckoutItem `json:"cartItems"`
	CustomerInfo CustomerInfo   `json:"customerInfo"`
}

// CheckoutItem lines are accepted as sent, not validated; unresolvable ones
// degrade to product-less receipt lines during pricing.
type CheckoutItem struct {
	ProductId uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
}

// CustomerInfo is accepted as free-form text. Card fields are carried opaque
// and are never validated or charged.
type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	Cvv        string `json:"cvv"`
}
