package response

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/tgcart/internal/common/validate"
)

// LineItem is one product in the cart. Discount is carried through to the
// submitted order but never applied to any total.
type LineItem struct {
	ID       ProductID       `json:"id"       validate:"required"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	FileID   string          `json:"file_id"`
	Price    decimal.Decimal `json:"price"    validate:"price"`
	Discount decimal.Decimal `json:"discount"`
	Quantity int             `json:"quantity" validate:"gte=1"`
}

type lineItemJSON struct {
	ID       ProductID   `json:"id"`
	Name     string      `json:"name"`
	Image    string      `json:"image"`
	FileID   string      `json:"file_id"`
	Price    json.Number `json:"price"`
	Discount json.Number `json:"discount"`
	Quantity int         `json:"quantity"`
}

// MarshalJSON writes prices as JSON numbers rather than decimal's default
// quoted strings.
func (l LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemJSON{
		ID:       l.ID,
		Name:     l.Name,
		Image:    l.Image,
		FileID:   l.FileID,
		Price:    json.Number(l.Price.String()),
		Discount: json.Number(l.Discount.String()),
		Quantity: l.Quantity,
	})
}

func (l LineItem) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("id", l.ID).
		Str("name", l.Name).
		Stringer("price", l.Price).
		Int("quantity", l.Quantity)
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the whole cart state. QuantityTotal and PriceTotal are derived
// from Items by Recompute and are never set independently.
type Cart struct {
	Items         []LineItem
	QuantityTotal int
	PriceTotal    decimal.Decimal
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) IndexOf(id ProductID) int {
	return slices.IndexFunc(c.Items, func(item LineItem) bool { return item.ID == id })
}

func (c Cart) Contains(id ProductID) bool {
	return c.IndexOf(id) >= 0
}

func (c *Cart) Recompute() {
	quantity := 0
	total := decimal.Zero
	for _, item := range c.Items {
		quantity += item.Quantity
		total = total.Add(item.LineTotal())
	}
	c.QuantityTotal = quantity
	c.PriceTotal = total
}

func (c Cart) Clone() Cart {
	c.Items = slices.Clone(c.Items)
	return c
}

// FormattedTotal is the price total with exactly two decimals, the only
// place the total is rounded.
func (c Cart) FormattedTotal() string {
	return c.PriceTotal.StringFixed(2)
}

func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(struct {
		Items         []LineItem  `json:"cartItems"`
		QuantityTotal int         `json:"cartQuantity"`
		PriceTotal    json.Number `json:"totalPrice"`
	}{
		Items:         items,
		QuantityTotal: c.QuantityTotal,
		PriceTotal:    json.Number(c.FormattedTotal()),
	})
}

func (c Cart) MarshalZerologObject(e *zerolog.Event) {
	e.Int("items", len(c.Items)).
		Int("quantity", c.QuantityTotal).
		Str("totalPrice", c.FormattedTotal())
}

// DecodeItems parses a persisted item list. Anything that breaks the
// LineItem schema or the one-item-per-id rule fails the whole list.
func DecodeItems(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed unmarshaling cart items with error=%w", err)
	}

	v := validate.New()
	seen := make(map[ProductID]struct{}, len(items))
	for i, item := range items {
		if err := v.Struct(item); err != nil {
			return nil, fmt.Errorf("failed validating cart item index=%d with error=%w", i, err)
		}
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("duplicate cart item id=%s", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return items, nil
}
