package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCartItemNotFound   = errors.New("item not found in cart")
	ErrInvalidQuantity    = errors.New("valid quantity is required")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCatalogUnavailable = errors.New("product catalog is unavailable")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
