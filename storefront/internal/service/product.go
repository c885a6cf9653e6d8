package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/storefront/internal/cache"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/repository"
	"github.com/shahid0mer/Nexora/storefront/pkg/response"
)

type ProductQueries interface {
	FindProducts(c context.Context) ([]repository.Product, error)
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
}

type ProductService struct {
	queries  ProductQueries
	cache    *redis.Client
	cacheTtl time.Duration
}

func NewProductService(
	queries ProductQueries,
	cache *redis.Client,
	cacheTtl time.Duration,
) ProductService {
	return ProductService{queries: queries, cache: cache, cacheTtl: cacheTtl}
}

// FindProducts lists the catalog sorted by recency. The listing is served from
// redis when present; the cached copy expires after cacheTtl.
func (svc ProductService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyCacheKey, cache.KeyProductsRecent).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Trace().Msg("finding products in cache")
	jsonCache, err := svc.cache.Get(c, cache.KeyProductsRecent).Result()
	if err != nil {
		err = fmt.Errorf("failed finding products in cache with error=%w", err)
		logger.Info().Err(err).Msg(err.Error())

		logger = logger.With().Str(log.KeyProcess, "finding products in database").Logger()
		logger.Trace().Msg("finding products in database")
		rows, err := svc.queries.FindProducts(c)
		if err != nil {
			err = fmt.Errorf("failed finding products in database with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		products := make([]response.Product, 0, len(rows))
		for _, row := range rows {
			products = append(products, row.Response())
		}
		logger = logger.With().Int(log.KeyProductCount, len(products)).Logger()
		logger.Info().Msg("found products in database")

		logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
		logger.Trace().Msg("inserting products to cache")
		marshaled, err := json.Marshal(products)
		if err != nil {
			err = fmt.Errorf("failed marshaling products with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		err = svc.cache.Set(c, cache.KeyProductsRecent, marshaled, svc.cacheTtl).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting products to cache with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return products, nil
		}
		logger.Info().Msg("inserted products to cache")

		return products, nil
	}
	logger.Info().Msg("found products in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
	logger.Trace().Msg("unmarshaling cache")
	products := []response.Product{}
	err = json.Unmarshal([]byte(jsonCache), &products)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("unmarshaled cache")

	return products, nil
}

// FindProductById always reads the database so cart and checkout enrichment
// observe the current catalog state.
func (svc ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "finding product in database").
		Logger()

	logger.Trace().Msg("finding product in database")
	product, err := svc.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf(
				"failed finding productId=%s with error=%w",
				id.String(),
				commonErrors.ErrProductNotFound,
			)
			commonErrors.HandleError(err, span)
			logger.Info().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		err = fmt.Errorf("failed finding productId=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in database")

	return product.Response(), nil
}
