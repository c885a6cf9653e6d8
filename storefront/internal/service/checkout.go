package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/internal/metrics"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/payment"
	"github.com/shahid0mer/Nexora/storefront/internal/store"
	"github.com/shahid0mer/Nexora/storefront/pkg/request"
	"github.com/shahid0mer/Nexora/storefront/pkg/response"
)

// TaxRate is the flat rate applied to the pre-tax subtotal.
var TaxRate = decimal.NewFromFloat(0.02)

const StatusCompleted = "completed"

type CheckoutService struct {
	catalog   ProductFinder
	store     *store.Store
	processor payment.Processor
	metrics   *metrics.StorefrontMetrics
}

func NewCheckoutService(
	catalog ProductFinder,
	store *store.Store,
	processor payment.Processor,
	metrics *metrics.StorefrontMetrics,
) CheckoutService {
	return CheckoutService{catalog: catalog, store: store, processor: processor, metrics: metrics}
}

// Checkout prices the caller-supplied snapshot, mints a receipt and clears the
// whole cart store. The snapshot is priced as of now, independent of current
// store state. A line whose product cannot be resolved, for whatever reason,
// is recorded without a product and contributes nothing to the totals; only an
// empty snapshot fails outright.
func (svc CheckoutService) Checkout(
	c context.Context,
	param request.Checkout,
) (response.Receipt, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Checkout").
		Int("cartItems", len(param.CartItems)).
		Logger()

	if len(param.CartItems) == 0 {
		err := fmt.Errorf("failed checking out with error=%w", commonErrors.ErrEmptyCart)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.Checkouts.WithLabelValues("failure").Inc()
		return response.Receipt{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "pricing snapshot").Logger()
	logger.Info().Msg("pricing snapshot")
	items := make([]response.ReceiptLine, 0, len(param.CartItems))
	subtotal := decimal.Zero
	for _, line := range param.CartItems {
		item := response.ReceiptLine{Quantity: line.Quantity}
		product, err := svc.catalog.FindProductById(c, line.ProductId)
		if err != nil {
			logger.Info().
				Str(log.KeyProductID, line.ProductId.String()).
				Err(err).
				Msg("snapshot line did not resolve, recording line without product")
			items = append(items, item)
			continue
		}
		snapshot := product.Snapshot()
		item.Product = &snapshot
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt32(line.Quantity)))
		items = append(items, item)
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(TaxRate).Round(2)
	total := subtotal.Add(tax).Round(2)
	logger = logger.With().
		Str("subtotal", subtotal.String()).
		Str("tax", tax.String()).
		Str("total", total.String()).
		Logger()
	logger.Info().Msg("priced snapshot")

	logger = logger.With().Str(log.KeyProcess, "authorizing payment").Logger()
	logger.Info().Msg("authorizing payment")
	details := payment.Details{
		CardNumber: param.CustomerInfo.CardNumber,
		ExpiryDate: param.CustomerInfo.ExpiryDate,
		Cvv:        param.CustomerInfo.Cvv,
	}
	if err := svc.processor.Authorize(c, details, total); err != nil {
		err = fmt.Errorf("failed authorizing payment with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.Checkouts.WithLabelValues("failure").Inc()
		return response.Receipt{}, err
	}
	logger.Info().Msg("authorized payment")

	logger = logger.With().Str(log.KeyProcess, "minting receipt").Logger()
	logger.Info().Msg("minting receipt")
	orderId, err := uuid.NewV7()
	if err != nil {
		err = fmt.Errorf("failed generating orderId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.Checkouts.WithLabelValues("failure").Inc()
		return response.Receipt{}, err
	}
	receipt := response.Receipt{
		OrderId:   "ORD-" + orderId.String(),
		Timestamp: time.Now().UTC(),
		Customer:  param.CustomerInfo,
		Items:     items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
		Status:    StatusCompleted,
	}
	logger = logger.With().Str(log.KeyOrderID, receipt.OrderId).Logger()
	logger.Info().Msg("minted receipt")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	svc.store.Clear()
	logger.Info().Msg("cleared cart")
	svc.metrics.Checkouts.WithLabelValues("success").Inc()

	return receipt, nil
}
