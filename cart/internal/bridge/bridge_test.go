package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tgcart/cart/pkg/response"
	inErrors "github.com/Alturino/tgcart/internal/errors"
	inHttp "github.com/Alturino/tgcart/internal/http"
	"github.com/Alturino/tgcart/internal/log"
)

type fakeWebApp struct {
	ready   bool
	expand  bool
	button  RecordingButton
	sent    []string
	sendErr error
}

func (f *fakeWebApp) Ready()                 { f.ready = true }
func (f *fakeWebApp) Expand()                { f.expand = true }
func (f *fakeWebApp) MainButton() MainButton { return &f.button }
func (f *fakeWebApp) SendData(_ context.Context, data string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, data)
	return nil
}

func testPayload(items int) response.Payload {
	cart := response.Cart{}
	for i := range items {
		cart.Items = append(cart.Items, response.LineItem{
			ID:       response.NumericProductID(int64(i + 1)),
			Name:     strings.Repeat("n", 40),
			Price:    decimal.NewFromInt(5),
			Quantity: 1,
		})
	}
	cart.Recompute()
	return response.NewPayload(cart)
}

func TestAdapterLifecycleAndButton(t *testing.T) {
	app := &fakeWebApp{}
	adapter := NewAdapter(app)

	adapter.Ready()
	adapter.Expand()
	adapter.ConfigureMainButton(DefaultLabel, DefaultColors)

	assert.True(t, app.ready)
	assert.True(t, app.expand)
	assert.Equal(t, "Order", app.button.Text())
	assert.Equal(t, Colors{Color: "#008000", TextColor: "#FFFFFF"}, app.button.Colors())
	assert.Equal(t, Hidden, adapter.MainButtonState())

	adapter.ShowMainButton()
	assert.Equal(t, Visible, adapter.MainButtonState())
	assert.True(t, app.button.Visible())

	adapter.HideMainButton()
	assert.Equal(t, Hidden, adapter.MainButtonState())
	assert.False(t, app.button.Visible())

	clicked := 0
	assert.False(t, app.button.Click())
	adapter.OnMainButtonClick(func() { clicked++ })
	assert.True(t, app.button.Click())
	assert.Equal(t, 1, clicked)
}

func TestButtonStateJSON(t *testing.T) {
	out, err := json.Marshal(map[string]ButtonState{"a": Visible, "b": Hidden})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"visible","b":"hidden"}`, string(out))
}

func TestSendPayload(t *testing.T) {
	tests := []struct {
		name        string
		payload     response.Payload
		sendErr     error
		expectedErr error
		expectSent  bool
	}{
		{name: "given small payload should send it", payload: testPayload(1), expectSent: true},
		{name: "given payload over limit should refuse it", payload: testPayload(60), expectedErr: inErrors.ErrPayloadTooLarge},
		{name: "given host failure should return it", payload: testPayload(1), sendErr: io.ErrClosedPipe, expectedErr: io.ErrClosedPipe},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			app := &fakeWebApp{sendErr: test.sendErr}
			adapter := NewAdapter(app)

			err := adapter.SendPayload(context.Background(), test.payload)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				assert.Empty(t, app.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, app.sent, 1)

			decoded, err := response.DecodePayload([]byte(app.sent[0]))
			require.NoError(t, err)
			assert.Len(t, decoded.CartItems, len(test.payload.CartItems))
		})
	}
}

func TestHTTPWebAppSendData(t *testing.T) {
	var received WebAppData
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, inHttp.HeaderValueJson, r.Header.Get(inHttp.HeaderContentType))
		requestID = r.Header.Get(inHttp.HeaderRequestID)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	app := NewHTTPWebApp(NewHTTPClient(time.Second), server.URL, "42")
	adapter := NewAdapter(app)
	adapter.ConfigureMainButton(DefaultLabel, DefaultColors)

	c := log.AttachRequestIDToContext(context.Background(), "req-1")
	require.NoError(t, adapter.SendPayload(c, testPayload(1)))

	assert.Equal(t, "42", received.UserID)
	assert.Equal(t, "Order", received.ButtonText)
	assert.Equal(t, "req-1", requestID)
	payload, err := response.DecodePayload([]byte(received.Data))
	require.NoError(t, err)
	assert.Equal(t, response.NumericProductID(1), payload.CartItems[0].ID)
	assert.True(t, decimal.NewFromInt(5).Equal(payload.TotalPrice))
}

func TestHTTPWebAppRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	app := NewHTTPWebApp(NewHTTPClient(time.Second), server.URL, "42")
	err := app.SendData(context.Background(), "{}")
	assert.ErrorIs(t, err, inErrors.ErrWebhookRejected)

	server.Close()
	err = app.SendData(context.Background(), "{}")
	require.Error(t, err)
	assert.False(t, errors.Is(err, inErrors.ErrWebhookRejected))
}
