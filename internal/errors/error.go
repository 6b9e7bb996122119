package errors

import (
	"errors"
)

var (
	ErrInvalidProduct  = errors.New("invalid product descriptor")
	ErrPayloadTooLarge = errors.New("payload exceeds host platform limit")
	ErrNotFound        = errors.New("key not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrEmptyUserID     = errors.New("missing user id")
	ErrWebhookRejected = errors.New("webhook rejected payload")
)
