package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/tgcart/internal/common/constants"
)

var (
	Tracer = otel.Tracer(constants.AppTgCart)
	Meter  = otel.Meter(constants.AppTgCart)
)
