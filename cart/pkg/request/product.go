package request

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/tgcart/cart/pkg/response"
	"github.com/Alturino/tgcart/internal/common/validate"
	inErrors "github.com/Alturino/tgcart/internal/errors"
)

// Product is the descriptor the catalog attaches to each product card.
type Product struct {
	ID             response.ProductID `json:"id"               validate:"required"`
	Name           string             `json:"name"`
	Image          string             `json:"image"`
	TelegramFileID string             `json:"telegram_file_id"`
	Price          decimal.Decimal    `json:"price"            validate:"price"`
	Discount       decimal.Decimal    `json:"discount"`
}

func (p Product) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("id", p.ID).
		Str("name", p.Name).
		Stringer("price", p.Price).
		Stringer("discount", p.Discount)
}

// LineItem builds the cart entry for a freshly added product.
func (p Product) LineItem() response.LineItem {
	return response.LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Image:    p.Image,
		FileID:   p.TelegramFileID,
		Price:    p.Price,
		Discount: p.Discount,
		Quantity: 1,
	}
}

func (p Product) Validate() error {
	if err := validate.New().Struct(p); err != nil {
		return fmt.Errorf("%w: %w", inErrors.ErrInvalidProduct, err)
	}
	return nil
}

func DecodeProduct(data []byte) (Product, error) {
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return Product{}, fmt.Errorf("%w: %w", inErrors.ErrInvalidProduct, err)
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
