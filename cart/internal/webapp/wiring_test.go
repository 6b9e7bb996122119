package webapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandledInline(t *testing.T) {
	testCases := []struct {
		name     string
		onclick  string
		expected bool
	}{
		{name: "no onclick", onclick: "", expected: false},
		{name: "inline addToCart", onclick: `addToCart('{"id":1}')`, expected: true},
		{name: "inline window.addToCart", onclick: `window.addToCart(this.dataset.product)`, expected: true},
		{name: "unrelated handler", onclick: "openCartModal()", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, handledInline(tc.onclick))
		})
	}
}
