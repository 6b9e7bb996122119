package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tgcart/cart/internal/bridge"
	"github.com/Alturino/tgcart/cart/internal/service"
	"github.com/Alturino/tgcart/cart/internal/view"
	inErrors "github.com/Alturino/tgcart/internal/errors"
	inHttp "github.com/Alturino/tgcart/internal/http"
	"github.com/Alturino/tgcart/internal/log"
	"github.com/Alturino/tgcart/internal/otel"
	"github.com/Alturino/tgcart/internal/storage"
)

const maxDescriptorSize = 16 << 10

type Options struct {
	KeyPrefix  string
	WebhookURL string
	Label      string
	Colors     bridge.Colors
}

// CartController serves one cart per Telegram user. Each request rebuilds
// the user's CartStore from the store, so nothing is shared between
// requests except the store itself.
type CartController struct {
	kv      storage.KeyValue
	client  *http.Client
	options Options
}

type session struct {
	store   *service.CartStore
	doc     *view.MemoryDocument
	adapter *bridge.Adapter
}

func AttachCartController(
	router *mux.Router,
	kv storage.KeyValue,
	client *http.Client,
	options Options,
) {
	controller := CartController{kv: kv, client: client, options: options}

	r := router.PathPrefix("/carts").Subrouter()
	r.HandleFunc("/{userId}", controller.FindCart).Methods(http.MethodGet)
	r.HandleFunc("/{userId}", controller.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/{userId}/items", controller.ToggleItem).Methods(http.MethodPost)
	r.HandleFunc("/{userId}/summary", controller.OpenSummary).Methods(http.MethodGet)
	r.HandleFunc("/{userId}/checkout", controller.Checkout).Methods(http.MethodPost)
}

func (t CartController) open(c context.Context, userID string) (session, error) {
	app := bridge.NewHTTPWebApp(t.client, t.options.WebhookURL, userID)
	adapter := bridge.NewAdapter(app)
	doc := view.NewPatchRecorder()
	kv := storage.Namespace(t.kv, fmt.Sprintf("%s:%s", t.options.KeyPrefix, userID))
	store := service.NewCartStore(kv, view.NewSynchronizer(doc, adapter), adapter)

	if err := store.Start(c, t.options.Label, t.options.Colors); err != nil {
		return session{}, err
	}
	return session{store: store, doc: doc, adapter: adapter}, nil
}

func (s session) data() map[string]interface{} {
	return map[string]interface{}{
		"cart":       s.store.Cart(),
		"mainButton": s.adapter.MainButtonState(),
		"patches":    s.doc.Patches(),
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrInvalidProduct), errors.Is(err, inErrors.ErrEmptyUserID):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, inErrors.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, inErrors.ErrWebhookRejected):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(c context.Context, w http.ResponseWriter, err error) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": statusCode(err),
		"message":    err.Error(),
	})
}

func writeSuccess(c context.Context, w http.ResponseWriter, message string, s session) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    message,
		"data":       s.data(),
	})
}

// handle runs the shared request prologue: span, logger, user id and
// session, then hands over to fn.
func (t CartController) handle(
	w http.ResponseWriter,
	r *http.Request,
	tag string,
	fn func(c context.Context, logger zerolog.Logger, s session),
) {
	c, span := otel.Tracer.Start(r.Context(), tag)
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, tag).Logger()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		err := inErrors.ErrEmptyUserID
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userID).Logger()

	logger = logger.With().Str(log.KeyProcess, "opening cart session").Logger()
	logger.Info().Msg("opening cart session")
	c = logger.WithContext(c)
	s, err := t.open(c, userID)
	if err != nil {
		err = fmt.Errorf("failed opening cart session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeError(c, w, err)
		return
	}
	logger.Info().Msg("opened cart session")

	fn(c, logger, s)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	t.handle(w, r, "CartController FindCart", func(c context.Context, _ zerolog.Logger, s session) {
		writeSuccess(c, w, "successfully loaded cart", s)
	})
}

func (t CartController) ToggleItem(w http.ResponseWriter, r *http.Request) {
	t.handle(w, r, "CartController ToggleItem", func(c context.Context, logger zerolog.Logger, s session) {
		logger = logger.With().Str(log.KeyProcess, "reading request body").Logger()
		logger.Info().Msg("reading request body")
		body, err := io.ReadAll(io.LimitReader(r.Body, maxDescriptorSize))
		if err != nil {
			err = fmt.Errorf("failed reading request body with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			writeError(c, w, err)
			return
		}
		logger.Info().Msg("read request body")

		logger = logger.With().Str(log.KeyProcess, "toggling product").Logger()
		logger.Info().Msg("toggling product")
		c = logger.WithContext(c)
		inCart, err := s.store.ToggleJSON(c, body)
		if err != nil {
			err = fmt.Errorf("failed toggling product with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			writeError(c, w, err)
			return
		}
		logger.Info().Bool(log.KeyInCart, inCart).Msg("toggled product")

		if inCart {
			writeSuccess(c, w, "successfully added product to cart", s)
			return
		}
		writeSuccess(c, w, "successfully removed product from cart", s)
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	t.handle(w, r, "CartController ClearCart", func(c context.Context, logger zerolog.Logger, s session) {
		logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
		logger.Info().Msg("clearing cart")
		c = logger.WithContext(c)
		if err := s.store.Clear(c); err != nil {
			err = fmt.Errorf("failed clearing cart with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			writeError(c, w, err)
			return
		}
		logger.Info().Msg("cleared cart")
		writeSuccess(c, w, "successfully cleared cart", s)
	})
}

func (t CartController) OpenSummary(w http.ResponseWriter, r *http.Request) {
	t.handle(w, r, "CartController OpenSummary", func(c context.Context, _ zerolog.Logger, s session) {
		s.store.OpenSummary(c)
		writeSuccess(c, w, "successfully rendered cart summary", s)
	})
}

func (t CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	t.handle(w, r, "CartController Checkout", func(c context.Context, logger zerolog.Logger, s session) {
		logger = logger.With().Str(log.KeyProcess, "submitting cart").Logger()
		logger.Info().Msg("submitting cart")
		c = logger.WithContext(c)
		if err := s.store.Submit(c); err != nil {
			err = fmt.Errorf("failed submitting cart with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			writeError(c, w, err)
			return
		}
		logger.Info().Msg("submitted cart")
		writeSuccess(c, w, "successfully submitted cart", s)
	})
}
