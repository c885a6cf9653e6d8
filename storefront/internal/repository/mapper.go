package repository

import (
	"github.com/shopspring/decimal"

	"github.com/shahid0mer/Nexora/storefront/pkg/response"
)

func (p Product) Response() response.Product {
	return response.Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Rating: response.Rating{
			Rate:  decimal.NewFromBigInt(p.RatingRate.Int, p.RatingRate.Exp),
			Count: p.RatingCount,
		},
		CreatedAt: p.CreatedAt.Time,
		UpdatedAt: p.UpdatedAt.Time,
	}
}
