package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/metrics"
	"github.com/shahid0mer/Nexora/storefront/internal/payment"
	"github.com/shahid0mer/Nexora/storefront/internal/store"
	productResponse "github.com/shahid0mer/Nexora/storefront/pkg/response"
)

// stubCatalog resolves products from an in-memory map. A non-nil err is
// returned for every lookup to simulate catalog outage.
type stubCatalog struct {
	products map[uuid.UUID]productResponse.Product
	err      error
}

func (s stubCatalog) FindProductById(
	_ context.Context,
	id uuid.UUID,
) (productResponse.Product, error) {
	if s.err != nil {
		return productResponse.Product{}, s.err
	}
	product, ok := s.products[id]
	if !ok {
		return productResponse.Product{}, commonErrors.ErrProductNotFound
	}
	return product, nil
}

// stubProcessor rejects every authorization with err when err is non-nil.
type stubProcessor struct {
	err error
}

func (s stubProcessor) Authorize(context.Context, payment.Details, decimal.Decimal) error {
	return s.err
}

func newTestProduct(name string, price string) productResponse.Product {
	return productResponse.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func newTestCartService(
	store *store.Store,
	catalog stubCatalog,
) CartService {
	return NewCartService(store, catalog, metrics.NewStorefrontMetrics(prometheus.NewRegistry()))
}

func newTestCheckoutService(
	catalog stubCatalog,
	cartStore *store.Store,
	processor payment.Processor,
) CheckoutService {
	return NewCheckoutService(
		catalog,
		cartStore,
		processor,
		metrics.NewStorefrontMetrics(prometheus.NewRegistry()),
	)
}
