package webapp

import "strings"

// GlobalAddToCart is the window function inline markup calls to toggle a
// product.
const GlobalAddToCart = "addToCart"

// handledInline reports whether an element's onclick attribute already
// toggles the product through the addToCart global.
func handledInline(onclick string) bool {
	return strings.Contains(onclick, GlobalAddToCart+"(")
}
