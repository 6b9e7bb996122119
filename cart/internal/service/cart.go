package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/tgcart/cart/internal/bridge"
	"github.com/Alturino/tgcart/cart/internal/view"
	"github.com/Alturino/tgcart/cart/pkg/request"
	"github.com/Alturino/tgcart/cart/pkg/response"
	inErrors "github.com/Alturino/tgcart/internal/errors"
	"github.com/Alturino/tgcart/internal/log"
	"github.com/Alturino/tgcart/internal/otel"
	"github.com/Alturino/tgcart/internal/storage"
)

// Keys the cart is persisted under.
const (
	KeyCartItems  = "cartItems"
	KeyTotalPrice = "totalPrice"
)

// CartStore is the only owner and writer of the cart. Every mutation is
// written through to kv and then reflected on the view before returning.
// A CartStore is not safe for concurrent use; hosts drive it from a single
// event loop or a single request.
type CartStore struct {
	kv      storage.KeyValue
	view    *view.Synchronizer
	bridge  *bridge.Adapter
	cart    response.Cart
	metrics cartMetrics
}

func NewCartStore(
	kv storage.KeyValue,
	synchronizer *view.Synchronizer,
	adapter *bridge.Adapter,
) *CartStore {
	return &CartStore{
		kv:      kv,
		view:    synchronizer,
		bridge:  adapter,
		metrics: newCartMetrics(),
	}
}

// Cart returns a copy of the current state.
func (s *CartStore) Cart() response.Cart {
	return s.cart.Clone()
}

// Start runs the host startup sequence: viewport lifecycle, main button
// styling and click wiring, then Load.
func (s *CartStore) Start(c context.Context, label string, colors bridge.Colors) error {
	c, span := otel.Tracer.Start(c, "CartStore Start")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartStore Start").Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing host bridge").Logger()
	logger.Info().Msg("initializing host bridge")
	s.bridge.Ready()
	s.bridge.Expand()
	s.bridge.ConfigureMainButton(label, colors)
	s.bridge.OnMainButtonClick(func() {
		if err := s.Submit(c); err != nil {
			logger.Error().Err(err).Msg("main button submit failed")
		}
	})
	logger.Info().Msg("initialized host bridge")

	c = logger.WithContext(c)
	return s.Load(c)
}

// Load replaces the in-memory cart with the persisted one. Absent or
// unusable persisted data yields an empty cart without an error; only a
// failing store read is returned.
func (s *CartStore) Load(c context.Context) error {
	c, span := otel.Tracer.Start(c, "CartStore Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore Load").
		Str(log.KeyCacheKey, KeyCartItems).
		Logger()

	s.cart = response.Cart{}

	logger = logger.With().Str(log.KeyProcess, "reading persisted cart").Logger()
	logger.Trace().Msg("reading persisted cart")
	raw, err := s.kv.Get(c, KeyCartItems)
	switch {
	case errors.Is(err, inErrors.ErrNotFound):
		logger.Debug().Msg("no persisted cart, starting empty")
	case err != nil:
		err = fmt.Errorf("failed reading persisted cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.refreshAll(c)
		return err
	default:
		items, err := response.DecodeItems([]byte(raw))
		if err != nil {
			s.metrics.fallbacks.Add(c, 1)
			logger.Warn().Err(err).Msg("discarding unusable persisted cart, starting empty")
			break
		}
		s.cart.Items = items
	}
	s.cart.Recompute()

	s.refreshAll(c)
	logger.Info().Object(log.KeyCart, s.cart).Msg("loaded cart")
	return nil
}

func (s *CartStore) refreshAll(c context.Context) {
	for _, item := range s.cart.Items {
		s.view.RefreshProductControl(c, item.ID, true)
	}
	s.view.RefreshBadge(c, s.cart)
	s.view.SyncActionButton(c, s.cart)
}

// ToggleJSON decodes a catalog descriptor and toggles it.
func (s *CartStore) ToggleJSON(c context.Context, raw []byte) (bool, error) {
	product, err := request.DecodeProduct(raw)
	if err != nil {
		zerolog.Ctx(c).Warn().
			Str(log.KeyTag, "CartStore ToggleJSON").
			Err(err).
			Msg("rejecting product descriptor")
		return false, err
	}
	return s.Toggle(c, product)
}

// Toggle removes the product if it is in the cart and adds it with a
// quantity of one otherwise. It reports whether the product is in the cart
// afterwards. A persistence error is returned after the in-memory cart and
// the view have already changed.
func (s *CartStore) Toggle(c context.Context, product request.Product) (bool, error) {
	c, span := otel.Tracer.Start(c, "CartStore Toggle")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore Toggle").
		Stringer(log.KeyProductID, product.ID).
		Logger()

	if err := product.Validate(); err != nil {
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return false, err
	}

	action := "add"
	inCart := true
	if i := s.cart.IndexOf(product.ID); i >= 0 {
		s.cart.Items = slices.Delete(s.cart.Items, i, i+1)
		action = "remove"
		inCart = false
	} else {
		s.cart.Items = append(s.cart.Items, product.LineItem())
	}
	s.cart.Recompute()
	s.metrics.toggles.Add(c, 1, metric.WithAttributes(attribute.String("action", action)))

	logger = logger.With().Bool(log.KeyInCart, inCart).Object(log.KeyCart, s.cart).Logger()
	logger.Info().Msgf("toggled product action=%s", action)

	c = logger.WithContext(c)
	err := s.persist(c)
	if err != nil {
		otel.RecordError(err, span)
	}

	s.view.RefreshProductControl(c, product.ID, inCart)
	s.view.RefreshBadge(c, s.cart)
	s.view.SyncActionButton(c, s.cart)

	return inCart, err
}

// Clear empties the cart, resets every control that showed an item as in
// the cart, closes the summary and hides the main button.
func (s *CartStore) Clear(c context.Context) error {
	c, span := otel.Tracer.Start(c, "CartStore Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore Clear").
		Int(log.KeyCartItemsCount, len(s.cart.Items)).
		Logger()

	previous := s.cart.Items
	s.cart = response.Cart{}
	s.cart.Recompute()

	c = logger.WithContext(c)
	err := s.persist(c)
	if err != nil {
		otel.RecordError(err, span)
	}

	for _, item := range previous {
		s.view.RefreshProductControl(c, item.ID, false)
	}
	s.view.RefreshBadge(c, s.cart)
	s.view.CloseSummary(c)
	s.view.SyncActionButton(c, s.cart)

	logger.Info().Msg("cleared cart")
	return err
}

// Serialize returns the order as it is handed to the host platform.
func (s *CartStore) Serialize() response.Payload {
	return response.NewPayload(s.cart)
}

// Submit sends the cart to the host platform and clears it. When the send
// fails the cart is kept so the user can retry.
func (s *CartStore) Submit(c context.Context) error {
	c, span := otel.Tracer.Start(c, "CartStore Submit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore Submit").
		Object(log.KeyCart, s.cart).
		Logger()

	if s.cart.IsEmpty() {
		logger.Debug().Msg("nothing to submit")
		return inErrors.ErrEmptyCart
	}

	logger = logger.With().Str(log.KeyProcess, "sending payload").Logger()
	c = logger.WithContext(c)
	if err := s.bridge.SendPayload(c, s.Serialize()); err != nil {
		s.metrics.submits.Add(c, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		err = fmt.Errorf("failed submitting cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	s.metrics.submits.Add(c, 1, metric.WithAttributes(attribute.String("outcome", "sent")))

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	c = logger.WithContext(c)
	if err := s.Clear(c); err != nil {
		err = fmt.Errorf("submitted cart but failed clearing it with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("submitted cart")
	return nil
}

func (s *CartStore) OpenSummary(c context.Context) {
	s.view.OpenSummary(c, s.cart)
}

func (s *CartStore) CloseSummary(c context.Context) {
	s.view.CloseSummary(c)
}

func (s *CartStore) persist(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore persist").
		Str(log.KeyProcess, "persisting cart").
		Logger()

	items := s.cart.Items
	if items == nil {
		items = []response.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart items with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if err = s.kv.Set(c, KeyCartItems, string(data)); err != nil {
		err = fmt.Errorf("failed persisting cart items with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = s.kv.Set(c, KeyTotalPrice, s.cart.FormattedTotal()); err != nil {
		err = fmt.Errorf("failed persisting total price with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("persisted cart")
	return nil
}
