package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/storefront/internal/cache"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/repository"
)

type SeederQueries interface {
	CountProducts(c context.Context) (int64, error)
	InsertProduct(c context.Context, arg repository.InsertProductParams) (repository.Product, error)
}

type Seeder struct {
	queries SeederQueries
	cache   *redis.Client
	feedUrl string
	limit   int
}

func NewSeeder(queries SeederQueries, cache *redis.Client, feedUrl string, limit int) Seeder {
	return Seeder{queries: queries, cache: cache, feedUrl: feedUrl, limit: limit}
}

type feedProduct struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      feedRating      `json:"rating"`
}

type feedRating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int32           `json:"count"`
}

// Seed populates the catalog from the external feed. Seeding is skipped when
// the catalog already holds products, so repeated runs are idempotent.
func (s Seeder) Seed(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Seeder Seed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Seeder Seed").
		Str("feedUrl", s.feedUrl).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "counting products").Logger()
	logger.Info().Msg("counting products")
	count, err := s.queries.CountProducts(c)
	if err != nil {
		err = fmt.Errorf("failed counting products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if count > 0 {
		logger.Info().Msgf("catalog already has %d products, skipping seed", count)
		return nil
	}
	logger.Info().Msg("catalog is empty, fetching feed")

	logger = logger.With().Str(log.KeyProcess, "fetching feed").Logger()
	logger.Info().Msg("fetching feed")
	req, err := http.NewRequestWithContext(c, http.MethodGet, s.feedUrl, nil)
	if err != nil {
		err = fmt.Errorf("failed creating feed request with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed fetching feed with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("feed returned status code=%d", resp.StatusCode)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	feed := []feedProduct{}
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		err = fmt.Errorf("failed decoding feed with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("fetched %d products from feed", len(feed))

	if s.limit > 0 && len(feed) > s.limit {
		feed = feed[:s.limit]
	}

	logger = logger.With().Str(log.KeyProcess, "inserting products").Logger()
	logger.Info().Msgf("inserting %d products", len(feed))
	for i, fp := range feed {
		product, err := s.queries.InsertProduct(c, repository.InsertProductParams{
			ID:          uuid.New(),
			Name:        fp.Title,
			Description: fp.Description,
			Image:       fp.Image,
			Category:    fp.Category,
			Price: pgtype.Numeric{
				Exp:              fp.Price.Exponent(),
				InfinityModifier: pgtype.Finite,
				Int:              fp.Price.Coefficient(),
				NaN:              false,
				Valid:            true,
			},
			RatingRate: pgtype.Numeric{
				Exp:              fp.Rating.Rate.Exponent(),
				InfinityModifier: pgtype.Finite,
				Int:              fp.Rating.Rate.Coefficient(),
				NaN:              false,
				Valid:            true,
			},
			RatingCount: fp.Rating.Count,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting product=%s with error=%w", fp.Title, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		logger.Info().
			Str(log.KeyProductID, product.ID.String()).
			Msgf("%d. %s - $%s", i+1, fp.Title, fp.Price.String())
	}
	logger.Info().Msgf("inserted %d products", len(feed))

	logger = logger.With().Str(log.KeyProcess, "invalidating listing cache").Logger()
	logger.Info().Msg("invalidating listing cache")
	if err := s.cache.Del(c, cache.KeyProductsRecent).Err(); err != nil {
		err = fmt.Errorf("failed invalidating listing cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("invalidated listing cache")

	return nil
}
