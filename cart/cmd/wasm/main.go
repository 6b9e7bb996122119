//go:build js && wasm

package main

import (
	"context"

	"github.com/Alturino/tgcart/cart/internal/webapp"
	"github.com/Alturino/tgcart/internal/common/constants"
	"github.com/Alturino/tgcart/internal/log"
)

func main() {
	logger := log.InitLogger("", constants.EnvProduction).
		With().
		Str(log.KeyAppName, constants.AppCartWebApp).
		Str(log.KeyTag, "main").
		Logger()
	c := logger.WithContext(context.Background())

	app, err := webapp.New()
	if err != nil {
		logger.Fatal().Err(err).Msg(err.Error())
	}
	app.Start(c)
	logger.Info().Msg("cart web app started")

	select {}
}
