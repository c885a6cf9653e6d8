package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	commonHttp "github.com/shahid0mer/Nexora/internal/http"
	"github.com/shahid0mer/Nexora/internal/log"
	"github.com/shahid0mer/Nexora/storefront/internal/otel"
	"github.com/shahid0mer/Nexora/storefront/internal/service"
	"github.com/shahid0mer/Nexora/storefront/pkg/request"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	mux.HandleFunc("/cart", controller.GetCart).Methods(http.MethodGet)
	mux.HandleFunc("/cart", controller.AddItem).Methods(http.MethodPost)
	mux.HandleFunc("/cart/update/{productId}", controller.UpdateItem).Methods(http.MethodPut)
	mux.HandleFunc("/cart/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
}

func statusCodeFromError(err error) int {
	switch {
	case errors.Is(err, commonErrors.ErrProductNotFound),
		errors.Is(err, commonErrors.ErrCartItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, commonErrors.ErrInvalidQuantity),
		errors.Is(err, commonErrors.ErrEmptyCart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (t CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController GetCart").
		Str(log.KeyProcess, "getting cart").
		Logger()

	logger.Info().Msg("getting cart")
	c = logger.WithContext(c)
	cart, err := t.service.GetCart(c)
	if err != nil {
		err = fmt.Errorf("failed getting cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, statusCodeFromError(err), err.Error())
		return
	}
	logger.Info().Msg("got cart")

	commonHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]string{}, cart)
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.AddCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusBadRequest, "Product ID is required")
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().
		Str(log.KeyProcess, "adding item").
		Str(log.KeyProductID, reqBody.ProductId.String()).
		Logger()
	logger.Info().Msg("adding item")
	c = logger.WithContext(c)
	cart, err := t.service.AddItem(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding item with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, statusCodeFromError(err), err.Error())
		return
	}
	logger.Info().Msg("added item")

	commonHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]string{}, map[string]interface{}{
		"message": "Item added to cart",
		"cart":    cart,
	})
}

func (t CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateItem").
		Str(log.KeyProcess, "validating productId").
		Logger()

	logger.Info().Msg("validating productId")
	pathValues := mux.Vars(r)
	productId, err := uuid.Parse(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId=%s with error=%w", pathValues["productId"], err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.UpdateCartItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "updating item").Logger()
	logger.Info().Msg("updating item")
	c = logger.WithContext(c)
	cart, err := t.service.UpdateQuantity(c, productId, reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf("failed updating item with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, statusCodeFromError(err), err.Error())
		return
	}
	logger.Info().Msg("updated item")

	commonHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]string{}, map[string]interface{}{
		"message": "Cart item updated successfully",
		"cart":    cart,
	})
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveItem").
		Str(log.KeyProcess, "validating productId").
		Logger()

	logger.Info().Msg("validating productId")
	pathValues := mux.Vars(r)
	productId, err := uuid.Parse(pathValues["productId"])
	if err != nil {
		err = fmt.Errorf("failed validating productId=%s with error=%w", pathValues["productId"], err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, http.StatusBadRequest, err.Error())
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()
	logger.Info().Msgf("validated productId=%s", productId.String())

	logger = logger.With().Str(log.KeyProcess, "removing item").Logger()
	logger.Info().Msg("removing item")
	c = logger.WithContext(c)
	cart, err := t.service.RemoveItem(c, productId)
	if err != nil {
		err = fmt.Errorf("failed removing item with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteFailureResponse(c, w, statusCodeFromError(err), err.Error())
		return
	}
	logger.Info().Msg("removed item")

	commonHttp.WriteJsonResponse(c, w, http.StatusOK, map[string]string{}, map[string]interface{}{
		"message": "Item removed from cart",
		"cart":    cart,
	})
}
