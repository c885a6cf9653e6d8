package response

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahid0mer/Nexora/storefront/pkg/request"
)

// Receipt is minted once per checkout and never persisted; it only exists in
// the response.
type Receipt struct {
	OrderId   string               `json:"orderId"`
	Timestamp time.Time            `json:"timestamp"`
	Customer  request.CustomerInfo `json:"customer"`
	Items     []ReceiptLine        `json:"items"`
	Subtotal  decimal.Decimal      `json:"subtotal"`
	Tax       decimal.Decimal      `json:"tax"`
	Total     decimal.Decimal      `json:"total"`
	Status    string               `json:"status"`
}

// ReceiptLine records the product as resolved at checkout time. Product is nil
// when the referenced product could not be resolved; such lines contribute
// nothing to the totals.
type ReceiptLine struct {
	Product  *Snapshot `json:"product"`
	Quantity int32     `json:"quantity"`
}
