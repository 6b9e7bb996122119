//go:build js && wasm

package webapp

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/Alturino/tgcart/cart/internal/bridge"
)

// TelegramWebApp drives window.Telegram.WebApp.
type TelegramWebApp struct {
	app    js.Value
	button *mainButton
}

func NewTelegramWebApp() (*TelegramWebApp, error) {
	telegram := js.Global().Get("Telegram")
	if telegram.IsUndefined() || telegram.IsNull() {
		return nil, fmt.Errorf("window.Telegram is not loaded")
	}
	app := telegram.Get("WebApp")
	if app.IsUndefined() || app.IsNull() {
		return nil, fmt.Errorf("window.Telegram.WebApp is not loaded")
	}
	return &TelegramWebApp{app: app, button: &mainButton{button: app.Get("MainButton")}}, nil
}

func (t *TelegramWebApp) Ready() {
	t.app.Call("ready")
}

func (t *TelegramWebApp) Expand() {
	t.app.Call("expand")
}

func (t *TelegramWebApp) MainButton() bridge.MainButton {
	return t.button
}

func (t *TelegramWebApp) SendData(_ context.Context, data string) (err error) {
	defer recoverJSError(&err)
	t.app.Call("sendData", data)
	return nil
}

type mainButton struct {
	button  js.Value
	onClick js.Func
}

func (b *mainButton) SetText(text string) {
	b.button.Call("setText", text)
}

func (b *mainButton) SetColors(color string, textColor string) {
	b.button.Call("setParams", map[string]interface{}{
		"color":      color,
		"text_color": textColor,
	})
}

func (b *mainButton) Show() {
	b.button.Call("show")
}

func (b *mainButton) Hide() {
	b.button.Call("hide")
}

func (b *mainButton) OnClick(handler func()) {
	if b.onClick.Truthy() {
		b.button.Call("offClick", b.onClick)
		b.onClick.Release()
	}
	b.onClick = js.FuncOf(func(js.Value, []js.Value) interface{} {
		handler()
		return nil
	})
	b.button.Call("onClick", b.onClick)
}
