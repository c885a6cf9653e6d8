package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      Rating          `json:"rating"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int32           `json:"count"`
}

// Snapshot is the slice of a product embedded into cart lines and receipts.
type Snapshot struct {
	ID    uuid.UUID       `json:"_id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

func (p Product) Snapshot() Snapshot {
	return Snapshot{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}
