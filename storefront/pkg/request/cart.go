package request

import (
	"math"

	"github.com/google/uuid"
)

// AddCartItem tolerates fractional quantities the way the storefront client
// sends them: the value is truncated to an integer and floored at 1.
type AddCartItem struct {
	ProductId uuid.UUID `validate:"required" json:"productId"`
	Quantity  float64   `json:"quantity"`
}

// NormalizedQuantity clamps to [1, math.MaxInt32]; converting a float64 beyond
// int32 range is undefined, so the clamp happens before the conversion.
func (r AddCartItem) NormalizedQuantity() int32 {
	if r.Quantity >= math.MaxInt32 {
		return math.MaxInt32
	}
	quantity := int32(r.Quantity)
	if quantity < 1 {
		return 1
	}
	return quantity
}

type UpdateCartItem struct {
	Quantity int32 `validate:"required" json:"quantity"`
}
