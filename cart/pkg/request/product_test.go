package request

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tgcart/cart/pkg/response"
	inErrors "github.com/Alturino/tgcart/internal/errors"
)

func TestDecodeProduct(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Product
		expectedErr error
	}{
		{
			name:  "given full descriptor should decode every field",
			input: `{"id":1,"name":"A","image":"a.png","telegram_file_id":"AgAD","price":10,"discount":0}`,
			expected: Product{
				ID:             response.NumericProductID(1),
				Name:           "A",
				Image:          "a.png",
				TelegramFileID: "AgAD",
				Price:          decimal.NewFromInt(10),
				Discount:       decimal.Zero,
			},
		},
		{
			name:     "given string id and quoted price should decode",
			input:    `{"id":"sku-1","name":"A","price":"2.50"}`,
			expected: Product{ID: response.StringProductID("sku-1"), Name: "A", Price: decimal.RequireFromString("2.50")},
		},
		{name: "given malformed json should fail", input: `{"id":`, expectedErr: inErrors.ErrInvalidProduct},
		{name: "given missing id should fail", input: `{"name":"A","price":1}`, expectedErr: inErrors.ErrInvalidProduct},
		{name: "given empty string id should fail", input: `{"id":"","price":1}`, expectedErr: inErrors.ErrInvalidProduct},
		{name: "given negative price should fail", input: `{"id":1,"price":-3}`, expectedErr: inErrors.ErrInvalidProduct},
		{name: "given boolean id should fail", input: `{"id":true,"price":1}`, expectedErr: inErrors.ErrInvalidProduct},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := DecodeProduct([]byte(test.input))
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected.ID, actual.ID)
			assert.Equal(t, test.expected.Name, actual.Name)
			assert.Equal(t, test.expected.Image, actual.Image)
			assert.Equal(t, test.expected.TelegramFileID, actual.TelegramFileID)
			assert.True(t, test.expected.Price.Equal(actual.Price))
			assert.True(t, test.expected.Discount.Equal(actual.Discount))
		})
	}
}

func TestProductLineItem(t *testing.T) {
	p := Product{
		ID:             response.NumericProductID(3),
		Name:           "C",
		Image:          "c.png",
		TelegramFileID: "file-c",
		Price:          decimal.NewFromInt(7),
		Discount:       decimal.NewFromInt(1),
	}

	item := p.LineItem()

	assert.Equal(t, p.ID, item.ID)
	assert.Equal(t, "file-c", item.FileID)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, decimal.NewFromInt(1).Equal(item.Discount))
	assert.True(t, decimal.NewFromInt(7).Equal(item.LineTotal()))
}
