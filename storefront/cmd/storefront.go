package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/shahid0mer/Nexora/internal/config"
	"github.com/shahid0mer/Nexora/internal/constants"
	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/internal/infra"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/internal/metrics"
	"github.com/shahid0mer/Nexora/internal/middleware"
	inOtel "github.com/shahid0mer/Nexora/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/controller"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/payment"
	"github.com/shahid0mer/Nexora/storefront/internal/repository"
	"github.com/shahid0mer/Nexora/storefront/internal/seeder"
	"github.com/shahid0mer/Nexora/storefront/internal/service"
	"github.com/shahid0mer/Nexora/storefront/internal/store"
)

func RunStorefront(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunStorefront")
	defer span.End()

	cfg := config.InitConfig(c, constants.AppStorefront)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.AppStorefront).
		Str(log.KeyTag, "main RunStorefront").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.AppStorefront, cfg.Otel)
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
		logger.Error().Err(err).Msg("continuing with catalog as-is")
	}
	logger.Info().Msg("seeded catalog")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	mux := mux.NewRouter()
	mux.Use(otelmux.Middleware(constants.AppStorefront), middleware.Logging, middleware.RecoverPanic)
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	storefrontMetrics := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)
	cartStore := store.New()
	productService := service.NewProductService(
		queries,
		cache,
		time.Duration(cfg.Catalog.CacheTtlSec)*time.Second,
	)
	cartService := service.NewCartService(cartStore, productService, storefrontMetrics)
	checkoutService := service.NewCheckoutService(
		productService,
		cartStore,
		payment.NoOp{},
		storefrontMetrics,
	)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "initializing controllers").Logger()
	logger.Info().Msg("initializing controllers")
	controller.AttachProductController(mux, &productService)
	controller.AttachCartController(mux, &cartService)
	controller.AttachCheckoutController(mux, &checkoutService)
	logger.Info().Msg("initialized controllers")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	server := http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext: func(net.Listener) context.Context {
			lg := logger.With().
				Reset().
				Timestamp().
				Caller().
				Stack().
				Str(log.KeyAppName, constants.AppStorefront).
				Logger()
			c = lg.WithContext(c)
			return c
		},
		Handler:      mux,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "shutting down server").Logger()
		logger.Info().Msg("shutting down server")
		err = server.Shutdown(c)
		if err != nil {
			err = fmt.Errorf("failed shutting down server with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("shutdown server")
	}()
	logger.Info().Msg("initialized server")

	go func() {
		logger = logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
			err = fmt.Errorf("encounter error=%w while running server", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())

			c = logger.WithContext(c)
			if err := inOtel.ShutdownOtel(c, shutdownFuncs); err != nil {
				err = fmt.Errorf("failed shutting down otel with error=%w", err)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
			}
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
}
