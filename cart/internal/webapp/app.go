//go:build js && wasm

// Package webapp hosts the cart inside the Telegram client's web view.
package webapp

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/rs/zerolog"

	"github.com/Alturino/tgcart/cart/internal/bridge"
	"github.com/Alturino/tgcart/cart/internal/service"
	"github.com/Alturino/tgcart/cart/internal/view"
	"github.com/Alturino/tgcart/internal/log"
)

const (
	AttributeProduct = "data-product"
	ElementOpenCart  = "openCart"
	ElementCloseCart = "closeCart"
	ElementClearCart = "clearCart"
)

type App struct {
	store    *service.CartStore
	document Document
	funcs    []js.Func
}

func New() (*App, error) {
	telegram, err := NewTelegramWebApp()
	if err != nil {
		return nil, err
	}
	adapter := bridge.NewAdapter(telegram)
	document := NewDocument()
	store := service.NewCartStore(
		NewLocalStorage(),
		view.NewSynchronizer(document, adapter),
		adapter,
	)
	return &App{store: store, document: document}, nil
}

// Start loads the persisted cart and binds the page's controls. The
// addToCart, openCartModal, closeCartModal and clearCart globals stay
// available for markup that calls them inline; a product element whose
// onclick already calls addToCart gets no second listener. An unreadable
// store leaves the page running on an empty cart.
func (a *App) Start(c context.Context) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "App Start").Logger()

	logger = logger.With().Str(log.KeyProcess, "starting cart store").Logger()
	logger.Info().Msg("starting cart store")
	c = logger.WithContext(c)
	if err := a.store.Start(c, bridge.DefaultLabel, bridge.DefaultColors); err != nil {
		err = fmt.Errorf("failed loading persisted cart with error=%w", err)
		logger.Warn().Err(err).Msg("continuing with an empty cart")
	} else {
		logger.Info().Msg("started cart store")
	}

	logger = logger.With().Str(log.KeyProcess, "binding page controls").Logger()
	logger.Info().Msg("binding page controls")
	for _, node := range a.document.querySelectorAll("[" + AttributeProduct + "]") {
		if handledInline(attribute(node, "onclick")) {
			continue
		}
		raw := attribute(node, AttributeProduct)
		a.listen(node, func() { a.toggle(c, raw) })
	}
	a.bindID(ElementOpenCart, func() { a.store.OpenSummary(c) })
	a.bindID(ElementCloseCart, func() { a.store.CloseSummary(c) })
	a.bindID(ElementClearCart, func() { a.clear(c) })

	a.global(GlobalAddToCart, func(args []js.Value) {
		if len(args) > 0 {
			a.toggle(c, args[0].String())
		}
	})
	a.global("openCartModal", func([]js.Value) { a.store.OpenSummary(c) })
	a.global("closeCartModal", func([]js.Value) { a.store.CloseSummary(c) })
	a.global("clearCart", func([]js.Value) { a.clear(c) })
	logger.Info().Msg("bound page controls")
}

func attribute(node js.Value, name string) string {
	v := node.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (a *App) toggle(c context.Context, raw string) {
	if _, err := a.store.ToggleJSON(c, []byte(raw)); err != nil {
		zerolog.Ctx(c).Error().Err(err).Str(log.KeyTag, "App toggle").Msg(err.Error())
	}
}

func (a *App) clear(c context.Context) {
	if err := a.store.Clear(c); err != nil {
		zerolog.Ctx(c).Error().Err(err).Str(log.KeyTag, "App clear").Msg(err.Error())
	}
}

func (a *App) bindID(id string, handler func()) {
	node := a.document.document.Call("getElementById", id)
	if node.IsNull() || node.IsUndefined() {
		return
	}
	a.listen(node, handler)
}

func (a *App) listen(node js.Value, handler func()) {
	fn := js.FuncOf(func(js.Value, []js.Value) interface{} {
		handler()
		return nil
	})
	a.funcs = append(a.funcs, fn)
	node.Call("addEventListener", "click", fn)
}

func (a *App) global(name string, handler func(args []js.Value)) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		handler(args)
		return nil
	})
	a.funcs = append(a.funcs, fn)
	js.Global().Set(name, fn)
}

// Release drops every js callback the app registered.
func (a *App) Release() {
	for _, fn := range a.funcs {
		fn.Release()
	}
	a.funcs = nil
}
