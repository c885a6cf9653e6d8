package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shahid0mer/Nexora/internal/config"
	"github.com/shahid0mer/Nexora/internal/constants"
	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/infra"
	"github.com/shahid0mer/Nexora/internal/log"
	inOtel "github.com/shahid0mer/Nexora/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/repository"
	"github.com/shahid0mer/Nexora/storefront/internal/seeder"
)

// RunSeeder seeds the catalog once and exits. The storefront also seeds at
// startup; this command exists for populating the database ahead of time.
func RunSeeder(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunSeeder")
	defer span.End()

	cfg := config.InitConfig(c, constants.AppStorefront)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppSeeder).
		Str(log.KeyTag, "main RunSeeder").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.AppSeeder, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		err = inOtel.ShutdownOtel(c, shutdownFuncs)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "closing database").Logger()
		logger.Info().Msg("closing database")
		db.Close()
		logger.Info().Msg("closed database")
	}()
	queries := repository.New(db)
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "closing cache").Logger()
		logger.Info().Msg("closing cache")
		err = cache.Close()
		if err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("closed cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "seeding catalog").Logger()
	logger.Info().Msg("seeding catalog")
	c = logger.WithContext(c)
	catalogSeeder := seeder.NewSeeder(queries, cache, cfg.Catalog.FeedUrl, cfg.Catalog.SeedLimit)
	if err = catalogSeeder.Seed(c); err != nil {
		err = fmt.Errorf("failed seeding catalog with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("seeded catalog")
}
