// Package bridge isolates the host platform's Web App API: viewport
// lifecycle, the main button, and the one-shot outbound message.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/tgcart/cart/pkg/response"
	inErrors "github.com/Alturino/tgcart/internal/errors"
	"github.com/Alturino/tgcart/internal/log"
	"github.com/Alturino/tgcart/internal/otel"
)

// MaxPayloadSize is the largest web_app_data message Telegram accepts.
const MaxPayloadSize = 4096

// MainButton is the host-rendered floating button.
type MainButton interface {
	SetText(text string)
	SetColors(color string, textColor string)
	Show()
	Hide()
	OnClick(handler func())
}

// WebApp is the subset of the host platform's bridge the cart uses.
type WebApp interface {
	Ready()
	Expand()
	MainButton() MainButton
	SendData(c context.Context, data string) error
}

type ButtonState int

const (
	Hidden ButtonState = iota
	Visible
)

func (s ButtonState) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

func (s ButtonState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type Colors struct {
	Color     string
	TextColor string
}

var DefaultColors = Colors{Color: "#008000", TextColor: "#FFFFFF"}

const DefaultLabel = "Order"

type Adapter struct {
	mu    sync.Mutex
	app   WebApp
	state ButtonState
}

func NewAdapter(app WebApp) *Adapter {
	return &Adapter{app: app, state: Hidden}
}

func (a *Adapter) Ready() {
	a.app.Ready()
}

func (a *Adapter) Expand() {
	a.app.Expand()
}

func (a *Adapter) ConfigureMainButton(label string, colors Colors) {
	button := a.app.MainButton()
	button.SetColors(colors.Color, colors.TextColor)
	button.SetText(label)
}

func (a *Adapter) OnMainButtonClick(handler func()) {
	a.app.MainButton().OnClick(handler)
}

func (a *Adapter) ShowMainButton() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.app.MainButton().Show()
	a.state = Visible
}

func (a *Adapter) HideMainButton() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.app.MainButton().Hide()
	a.state = Hidden
}

func (a *Adapter) MainButtonState() ButtonState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SendPayload hands the order to the host. Delivery and any
// acknowledgement belong to the host; an error here means the payload
// never left.
func (a *Adapter) SendPayload(c context.Context, payload response.Payload) error {
	c, span := otel.Tracer.Start(c, "Adapter SendPayload")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Adapter SendPayload").
		Int(log.KeyCartItemsCount, len(payload.CartItems)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marshaling payload").Logger()
	logger.Trace().Msg("marshaling payload")
	data, err := json.Marshal(payload)
	if err != nil {
		err = fmt.Errorf("failed marshaling payload with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Int(log.KeyPayloadSize, len(data)).Logger()
	logger.Trace().Msg("marshaled payload")

	if len(data) > MaxPayloadSize {
		err = fmt.Errorf("payload of %d bytes with error=%w", len(data), inErrors.ErrPayloadTooLarge)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "sending payload").Logger()
	logger.Info().Msg("sending payload")
	if err = a.app.SendData(c, string(data)); err != nil {
		err = fmt.Errorf("failed sending payload with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("sent payload")

	return nil
}
