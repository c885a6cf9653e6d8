package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartLine carries the product snapshot resolved at read time. Product is nil
// when the carted product no longer resolves in the catalog; such lines
// contribute nothing to the total.
type CartLine struct {
	ProductId uuid.UUID `json:"productId"`
	Quantity  int32     `json:"quantity"`
	Product   *Snapshot `json:"product"`
}
