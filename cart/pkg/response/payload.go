package response

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Payload is the finalized order handed to the host platform.
type Payload struct {
	CartItems  []LineItem      `json:"cartItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func NewPayload(cart Cart) Payload {
	items := make([]LineItem, len(cart.Items))
	copy(items, cart.Items)
	return Payload{
		CartItems:  items,
		TotalPrice: cart.PriceTotal.Round(2),
	}
}

func (p Payload) MarshalJSON() ([]byte, error) {
	items := p.CartItems
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(struct {
		CartItems  []LineItem  `json:"cartItems"`
		TotalPrice json.Number `json:"totalPrice"`
	}{
		CartItems:  items,
		TotalPrice: json.Number(p.TotalPrice.StringFixed(2)),
	})
}

// DecodePayload parses a payload the way the receiving bot does, applying
// the same item schema as the persisted cart.
func DecodePayload(data []byte) (Payload, error) {
	var raw struct {
		CartItems  json.RawMessage `json:"cartItems"`
		TotalPrice decimal.Decimal `json:"totalPrice"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("failed unmarshaling payload with error=%w", err)
	}
	if len(raw.CartItems) == 0 {
		return Payload{}, fmt.Errorf("payload is missing cartItems")
	}

	items, err := DecodeItems(raw.CartItems)
	if err != nil {
		return Payload{}, err
	}
	return Payload{CartItems: items, TotalPrice: raw.TotalPrice}, nil
}
