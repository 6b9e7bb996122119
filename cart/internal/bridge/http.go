package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inErrors "github.com/Alturino/tgcart/internal/errors"
	inHttp "github.com/Alturino/tgcart/internal/http"
	"github.com/Alturino/tgcart/internal/log"
)

// WebAppData mirrors the web_app_data message a bot receives when a Web App
// calls sendData.
type WebAppData struct {
	UserID     string `json:"user_id"`
	Data       string `json:"data"`
	ButtonText string `json:"button_text"`
}

// RecordingButton keeps the main button's state in memory for hosts that
// have no real button to drive.
type RecordingButton struct {
	mu        sync.Mutex
	text      string
	color     string
	textColor string
	visible   bool
	handler   func()
}

func (b *RecordingButton) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

func (b *RecordingButton) SetColors(color string, textColor string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.color = color
	b.textColor = textColor
}

func (b *RecordingButton) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = true
}

func (b *RecordingButton) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = false
}

func (b *RecordingButton) OnClick(handler func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
}

// Click runs the registered handler, if any, and reports whether one ran.
func (b *RecordingButton) Click() bool {
	b.mu.Lock()
	handler := b.handler
	b.mu.Unlock()
	if handler == nil {
		return false
	}
	handler()
	return true
}

func (b *RecordingButton) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *RecordingButton) Colors() Colors {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Colors{Color: b.color, TextColor: b.textColor}
}

func (b *RecordingButton) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// HTTPWebApp stands in for Telegram.WebApp on the server: lifecycle calls
// are no-ops and sendData becomes a POST of WebAppData to the bot webhook.
type HTTPWebApp struct {
	client     *http.Client
	webhookURL string
	userID     string
	button     *RecordingButton
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
}

func NewHTTPWebApp(client *http.Client, webhookURL string, userID string) *HTTPWebApp {
	return &HTTPWebApp{
		client:     client,
		webhookURL: webhookURL,
		userID:     userID,
		button:     &RecordingButton{},
	}
}

func (h *HTTPWebApp) Ready()  {}
func (h *HTTPWebApp) Expand() {}

func (h *HTTPWebApp) MainButton() MainButton {
	return h.button
}

func (h *HTTPWebApp) Button() *RecordingButton {
	return h.button
}

func (h *HTTPWebApp) SendData(c context.Context, data string) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "HTTPWebApp SendData").
		Str(log.KeyUserID, h.userID).
		Str(log.KeyWebhookURL, h.webhookURL).
		Logger()

	body, err := json.Marshal(WebAppData{
		UserID:     h.userID,
		Data:       data,
		ButtonText: h.button.Text(),
	})
	if err != nil {
		return fmt.Errorf("failed marshaling web app data with error=%w", err)
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, h.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed creating webhook request with error=%w", err)
	}
	req.Header.Set(inHttp.HeaderContentType, inHttp.HeaderValueJson)
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(inHttp.HeaderRequestID, requestID)
	}

	logger.Info().Msg("posting web app data to webhook")
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed posting web app data with error=%w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded statusCode=%d with error=%w", resp.StatusCode, inErrors.ErrWebhookRejected)
	}
	logger.Info().Int(log.KeyStatusCode, resp.StatusCode).Msg("posted web app data to webhook")
	return nil
}
