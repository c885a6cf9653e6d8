package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	commonHttp "github.com/shahid0mer/Nexora/internal/http"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/service"
	"github.com/shahid0mer/Nexora/storefront/pkg/request"
)

type CheckoutController struct {
	service *service.CheckoutService
}

func AttachCheckoutController(mux *mux.Router, service *service.CheckoutService) {
	controller := CheckoutController{service: service}

	mux.HandleFunc("/cart/checkout", controller.Checkout).Methods(http.MethodPost)
}

func (t CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController Checkout").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "checking out").Logger()
	logger.Info().Msg("checking out")
	c = logger.WithContext(c)
	receipt, err := t.service.Checkout(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed checking out with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode, message := http.StatusInternalServerError, err.Error()
		if errors.Is(err, commonErrors.ErrEmptyCart) {
			statusCode, message = http.StatusBadRequest, "Cart is empty"
		}
		commonHttp.WriteFailureResponse(c, w, statusCode, message)
		return
	}
	logger = logger.With().Str(log.KeyOrderID, receipt.OrderId).Logger()
	logger.Info().Msg("checked out")

	commonHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]string{}, receipt)
}
