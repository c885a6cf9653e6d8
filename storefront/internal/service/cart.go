package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/internal/metrics"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/store"
	"github.com/shahid0mer/Nexora/storefront/pkg/request"
	"github.com/shahid0mer/Nexora/storefront/pkg/response"
)

// MaxLineQuantity bounds the quantity a single cart line can reach.
const MaxLineQuantity = 999

type ProductFinder interface {
	FindProductById(c context.Context, id uuid.UUID) (response.Product, error)
}

type CartService struct {
	store   *store.Store
	catalog ProductFinder
	metrics *metrics.StorefrontMetrics
}

func NewCartService(
	store *store.Store,
	catalog ProductFinder,
	metrics *metrics.StorefrontMetrics,
) CartService {
	return CartService{store: store, catalog: catalog, metrics: metrics}
}

func (svc CartService) AddItem(
	c context.Context,
	param request.AddCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	quantity := param.NormalizedQuantity()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeyProductID, param.ProductId.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving product").Logger()
	logger.Info().Msg("resolving product")
	c = logger.WithContext(c)
	_, err := svc.catalog.FindProductById(c, param.ProductId)
	if err != nil {
		err = fmt.Errorf(
			"failed resolving productId=%s with error=%w",
			param.ProductId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.CartMutations.WithLabelValues("add", "failure").Inc()
		return response.Cart{}, err
	}
	logger.Info().Msg("resolved product")

	logger = logger.With().Str(log.KeyProcess, "adding item").Logger()
	existing, _ := svc.store.Quantity(param.ProductId)
	// summed in int64 so a huge requested quantity cannot wrap past the cap
	if int64(existing)+int64(quantity) > MaxLineQuantity {
		err = fmt.Errorf(
			"quantity=%d exceeds the per-line maximum of %d with error=%w",
			int64(existing)+int64(quantity),
			MaxLineQuantity,
			commonErrors.ErrInvalidQuantity,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.CartMutations.WithLabelValues("add", "failure").Inc()
		return response.Cart{}, err
	}
	svc.store.Add(param.ProductId, quantity)
	logger.Info().Msg("added item")
	svc.metrics.CartMutations.WithLabelValues("add", "success").Inc()

	return svc.GetCart(c)
}

func (svc CartService) RemoveItem(
	c context.Context,
	productId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeyProductID, productId.String()).
		Str(log.KeyProcess, "removing item").
		Logger()

	logger.Info().Msg("removing item")
	svc.store.Remove(productId)
	logger.Info().Msg("removed item")
	svc.metrics.CartMutations.WithLabelValues("remove", "success").Inc()

	c = logger.WithContext(c)
	return svc.GetCart(c)
}

func (svc CartService) UpdateQuantity(
	c context.Context,
	productId uuid.UUID,
	quantity int32,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateQuantity").
		Str(log.KeyProductID, productId.String()).
		Int32(log.KeyQuantity, quantity).
		Str(log.KeyProcess, "updating quantity").
		Logger()

	if quantity < 1 || quantity > MaxLineQuantity {
		err := fmt.Errorf(
			"quantity=%d is out of range [1, %d] with error=%w",
			quantity,
			MaxLineQuantity,
			commonErrors.ErrInvalidQuantity,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.CartMutations.WithLabelValues("update", "failure").Inc()
		return response.Cart{}, err
	}

	logger.Info().Msg("updating quantity")
	if ok := svc.store.Replace(productId, quantity); !ok {
		err := fmt.Errorf(
			"failed updating productId=%s with error=%w",
			productId.String(),
			commonErrors.ErrCartItemNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.metrics.CartMutations.WithLabelValues("update", "failure").Inc()
		return response.Cart{}, err
	}
	logger.Info().Msg("updated quantity")
	svc.metrics.CartMutations.WithLabelValues("update", "success").Inc()

	c = logger.WithContext(c)
	return svc.GetCart(c)
}

// GetCart enriches every line with its product snapshot as of now. Lines whose
// product no longer resolves are reported with a nil product and contribute
// nothing to the total; the total is rounded to 2 decimal places.
func (svc CartService) GetCart(c context.Context) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyProcess, "enriching cart").
		Logger()

	lines := svc.store.Lines()
	items := make([]response.CartLine, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		item := response.CartLine{ProductId: line.ProductId, Quantity: line.Quantity}
		product, err := svc.catalog.FindProductById(c, line.ProductId)
		if err != nil {
			if !errors.Is(err, commonErrors.ErrProductNotFound) {
				err = fmt.Errorf(
					"failed resolving productId=%s with error=%w",
					line.ProductId.String(),
					err,
				)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			logger.Info().
				Str(log.KeyProductID, line.ProductId.String()).
				Msg("carted product no longer resolves, reporting line without product")
			items = append(items, item)
			continue
		}
		snapshot := product.Snapshot()
		item.Product = &snapshot
		total = total.Add(product.Price.Mul(decimal.NewFromInt32(line.Quantity)))
		items = append(items, item)
	}
	cart := response.Cart{Items: items, Total: total.Round(2)}
	logger = logger.With().Str(log.KeyCartTotal, cart.Total.String()).Logger()
	logger.Info().Msg("enriched cart")

	return cart, nil
}
