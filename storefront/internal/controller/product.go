package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	commonHttp "github.com/shahid0mer/Nexora/internal/http"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/service"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(mux *mux.Router, service *service.ProductService) {
	controller := ProductController{service: service}

	mux.HandleFunc("/products", controller.FindProducts).Methods(http.MethodGet)
}

func (t ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	c = logger.WithContext(c)
	products, err := t.service.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusInternalServerError, err.Error())
		return
	}
	logger = logger.With().Int(log.KeyProductCount, len(products)).Logger()
	logger.Info().Msg("found products")

	commonHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]string{}, products)
}
