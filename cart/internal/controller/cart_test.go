package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tgcart/cart/internal/bridge"
	"github.com/Alturino/tgcart/cart/pkg/response"
	"github.com/Alturino/tgcart/internal/storage"
)

type envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Cart struct {
			CartItems    []json.RawMessage `json:"cartItems"`
			CartQuantity int               `json:"cartQuantity"`
			TotalPrice   json.Number       `json:"totalPrice"`
		} `json:"cart"`
		MainButton string `json:"mainButton"`
		Patches    []struct {
			ElementID string `json:"elementId"`
		} `json:"patches"`
	} `json:"data"`
}

type testServer struct {
	mr       *miniredis.Miniredis
	server   *httptest.Server
	received chan bridge.WebAppData
}

func newTestServer(t *testing.T, webhookStatus int) testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	received := make(chan bridge.WebAppData, 1)
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := bridge.WebAppData{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&data))
		received <- data
		w.WriteHeader(webhookStatus)
	}))
	t.Cleanup(webhook.Close)

	router := mux.NewRouter()
	AttachCartController(
		router,
		storage.NewRedis(client, time.Hour),
		bridge.NewHTTPClient(5*time.Second),
		Options{
			KeyPrefix:  "carts",
			WebhookURL: webhook.URL,
			Label:      bridge.DefaultLabel,
			Colors:     bridge.DefaultColors,
		},
	)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return testServer{mr: mr, server: server, received: received}
}

func (s testServer) do(t *testing.T, method string, path string, body string) envelope {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(t, err)

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	result := envelope{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, resp.StatusCode, result.StatusCode)
	return result
}

func TestCartController(t *testing.T) {
	s := newTestServer(t, http.StatusOK)

	result := s.do(t, http.MethodGet, "/carts/42", "")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "success", result.Status)
	assert.Empty(t, result.Data.Cart.CartItems)
	assert.Equal(t, "hidden", result.Data.MainButton)

	result = s.do(t, http.MethodPost, "/carts/42/items", `{"id":1,"name":"Tea","price":2.5}`)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "successfully added product to cart", result.Message)
	assert.Equal(t, 1, result.Data.Cart.CartQuantity)
	assert.Equal(t, "visible", result.Data.MainButton)
	assert.NotEmpty(t, result.Data.Patches)

	stored, err := s.mr.Get("carts:42:cartItems")
	require.NoError(t, err)
	assert.Contains(t, stored, `"id":1`)
	price, err := s.mr.Get("carts:42:totalPrice")
	require.NoError(t, err)
	assert.Equal(t, "2.50", price)

	result = s.do(t, http.MethodPost, "/carts/42/items", `{"id":"b2","name":"Cake","price":3}`)
	assert.Equal(t, 2, result.Data.Cart.CartQuantity)

	other := s.do(t, http.MethodGet, "/carts/7", "")
	assert.Empty(t, other.Data.Cart.CartItems)

	result = s.do(t, http.MethodGet, "/carts/42/summary", "")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	elements := map[string]bool{}
	for _, p := range result.Data.Patches {
		elements[p.ElementID] = true
	}
	assert.True(t, elements["cartModal"])
	assert.True(t, elements["tbody"])
	assert.True(t, elements["totalPriceDisplay"])

	result = s.do(t, http.MethodPost, "/carts/42/checkout", "")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "hidden", result.Data.MainButton)
	assert.Empty(t, result.Data.Cart.CartItems)

	data := <-s.received
	assert.Equal(t, "42", data.UserID)
	assert.Equal(t, bridge.DefaultLabel, data.ButtonText)
	payload, err := response.DecodePayload([]byte(data.Data))
	require.NoError(t, err)
	assert.Len(t, payload.CartItems, 2)
	assert.Equal(t, "5.50", payload.TotalPrice.StringFixed(2))

	stored, err = s.mr.Get("carts:42:cartItems")
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
}

func TestCartControllerErrors(t *testing.T) {
	testCases := []struct {
		name          string
		webhookStatus int
		method        string
		path          string
		body          string
		expected      int
	}{
		{
			name:          "malformed descriptor",
			webhookStatus: http.StatusOK,
			method:        http.MethodPost,
			path:          "/carts/42/items",
			body:          `{"name":"no id"}`,
			expected:      http.StatusBadRequest,
		},
		{
			name:          "not json",
			webhookStatus: http.StatusOK,
			method:        http.MethodPost,
			path:          "/carts/42/items",
			body:          `tea`,
			expected:      http.StatusBadRequest,
		},
		{
			name:          "checkout empty cart",
			webhookStatus: http.StatusOK,
			method:        http.MethodPost,
			path:          "/carts/42/checkout",
			expected:      http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, tc.webhookStatus)
			result := s.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.expected, result.StatusCode)
			assert.Equal(t, "failed", result.Status)
		})
	}
}

func TestCheckoutWebhookRejected(t *testing.T) {
	s := newTestServer(t, http.StatusInternalServerError)

	s.do(t, http.MethodPost, "/carts/42/items", `{"id":1,"name":"Tea","price":2.5}`)

	result := s.do(t, http.MethodPost, "/carts/42/checkout", "")
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	<-s.received

	result = s.do(t, http.MethodGet, "/carts/42", "")
	assert.Len(t, result.Data.Cart.CartItems, 1)
	assert.Equal(t, "visible", result.Data.MainButton)
}

func TestCartControllerStoreDown(t *testing.T) {
	s := newTestServer(t, http.StatusOK)
	s.mr.Close()

	result := s.do(t, http.MethodGet, "/carts/42", "")
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
}
