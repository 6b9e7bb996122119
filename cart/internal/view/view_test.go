package view

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tgcart/cart/pkg/response"
)

type fakeButton struct {
	visible bool
	calls   int
}

func (b *fakeButton) ShowMainButton() { b.visible = true; b.calls++ }
func (b *fakeButton) HideMainButton() { b.visible = false; b.calls++ }

func testCart(items ...response.LineItem) response.Cart {
	cart := response.Cart{Items: items}
	cart.Recompute()
	return cart
}

func TestRefreshProductControl(t *testing.T) {
	c := context.Background()
	id := response.NumericProductID(1)
	doc := NewMemoryDocument(ProductButtonID(id))
	sync := NewSynchronizer(doc, &fakeButton{})

	sync.RefreshProductControl(c, id, true)
	el, ok := doc.Element("cart_button-1")
	require.True(t, ok)
	assert.Equal(t, LabelDelete, el.Text())
	assert.Equal(t, ColorDelete, el.Style("backgroundColor"))

	sync.RefreshProductControl(c, id, false)
	assert.Equal(t, LabelAdd, el.Text())
	assert.Equal(t, ColorAdd, el.Style("backgroundColor"))
}

func TestMissingElementsAreSkipped(t *testing.T) {
	c := context.Background()
	doc := NewMemoryDocument()
	button := &fakeButton{}
	sync := NewSynchronizer(doc, button)
	cart := testCart(response.LineItem{ID: response.NumericProductID(9), Price: decimal.NewFromInt(1), Quantity: 1})

	assert.NotPanics(t, func() {
		sync.RefreshProductControl(c, response.NumericProductID(9), true)
		sync.RefreshBadge(c, cart)
		sync.OpenSummary(c, cart)
		sync.CloseSummary(c)
	})
	assert.Empty(t, doc.Patches())

	sync.SyncActionButton(c, cart)
	assert.True(t, button.visible)
}

func TestRefreshBadge(t *testing.T) {
	c := context.Background()
	doc := NewMemoryDocument(ElementCartQuantity)
	sync := NewSynchronizer(doc, &fakeButton{})

	sync.RefreshBadge(c, testCart(
		response.LineItem{ID: response.NumericProductID(1), Price: decimal.NewFromInt(10), Quantity: 1},
		response.LineItem{ID: response.NumericProductID(2), Price: decimal.NewFromInt(5), Quantity: 1},
	))

	el, _ := doc.Element(ElementCartQuantity)
	assert.Equal(t, "2", el.Text())
}

func TestSummary(t *testing.T) {
	c := context.Background()
	doc := NewMemoryDocument(ElementSummaryBody, ElementTotalPriceDisplay, ElementCartModal)
	sync := NewSynchronizer(doc, &fakeButton{})
	cart := testCart(
		response.LineItem{ID: response.NumericProductID(1), Name: "Tea", Image: "/img/tea.png", Price: decimal.RequireFromString("2.5"), Quantity: 2},
		response.LineItem{ID: response.NumericProductID(2), Name: `<b>Cake</b>`, Image: "/img/cake.png", Price: decimal.NewFromInt(5), Quantity: 1},
	)

	sync.OpenSummary(c, cart)

	body, _ := doc.Element(ElementSummaryBody)
	assert.Equal(
		t,
		`<tr><td><img height="60px" src="/img/tea.png" alt="Tea"/></td><td>Tea</td><td>2</td><td>5</td></tr>`+
			`<tr><td><img height="60px" src="/img/cake.png" alt="&lt;b&gt;Cake&lt;/b&gt;"/></td><td>&lt;b&gt;Cake&lt;/b&gt;</td><td>1</td><td>5</td></tr>`,
		body.InnerHTML(),
	)
	total, _ := doc.Element(ElementTotalPriceDisplay)
	assert.Equal(t, "10.00", total.Text())
	modal, _ := doc.Element(ElementCartModal)
	assert.Equal(t, "0", modal.Style("top"))

	sync.CloseSummary(c)
	assert.Equal(t, "-200%", modal.Style("top"))

	sync.RefreshSummaryView(c, testCart())
	assert.Empty(t, body.InnerHTML())
	assert.Equal(t, "0.00", total.Text())
}

func TestSyncActionButton(t *testing.T) {
	c := context.Background()
	button := &fakeButton{}
	sync := NewSynchronizer(NewMemoryDocument(), button)

	sync.SyncActionButton(c, testCart(response.LineItem{ID: response.NumericProductID(1), Quantity: 1}))
	assert.True(t, button.visible)

	sync.SyncActionButton(c, testCart())
	assert.False(t, button.visible)
	assert.Equal(t, 2, button.calls)
}

func TestPatchRecorder(t *testing.T) {
	doc := NewPatchRecorder()
	sync := NewSynchronizer(doc, &fakeButton{})

	sync.RefreshProductControl(context.Background(), response.StringProductID("sku"), true)

	assert.Equal(t, []Patch{
		{ElementID: "cart_button-sku", Op: PatchText, Value: LabelDelete},
		{ElementID: "cart_button-sku", Op: PatchStyle, Property: "backgroundColor", Value: ColorDelete},
	}, doc.Patches())
}
