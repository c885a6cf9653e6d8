package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/shahid0mer/Nexora/internal/constants"
)

var Tracer = otel.Tracer(constants.AppStorefront)
