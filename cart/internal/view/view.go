// Package view projects cart state onto the page: per-product toggle
// buttons, the quantity badge, the summary modal, and the host's main
// button. It owns no state; every call rewrites what it touches.
package view

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Alturino/tgcart/cart/pkg/response"
	"github.com/Alturino/tgcart/internal/log"
)

const (
	ElementCartQuantity      = "cartQuantity"
	ElementCartModal         = "cartModal"
	ElementSummaryBody       = "tbody"
	ElementTotalPriceDisplay = "totalPriceDisplay"
	productButtonPrefix      = "cart_button-"

	LabelAdd    = "Add to cart"
	LabelDelete = "Delete"
	ColorAdd    = "#1677ff"
	ColorDelete = "red"

	modalShownTop  = "0"
	modalHiddenTop = "-200%"
)

// Element is a mutable node of the rendered page.
type Element interface {
	SetText(text string)
	SetStyle(property string, value string)
	SetInnerHTML(html string)
}

// Document looks elements up by id. Absent elements are normal: product
// cards are not all rendered at once.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// ActionButton is the host platform's main button.
type ActionButton interface {
	ShowMainButton()
	HideMainButton()
}

func ProductButtonID(id response.ProductID) string {
	return productButtonPrefix + id.String()
}

var summaryRows = template.Must(template.New("summaryRows").Parse(
	`{{range .}}<tr>` +
		`<td><img height="60px" src="{{.Image}}" alt="{{.Name}}"/></td>` +
		`<td>{{.Name}}</td>` +
		`<td>{{.Quantity}}</td>` +
		`<td>{{.LineTotal}}</td>` +
		`</tr>{{end}}`,
))

type Synchronizer struct {
	document Document
	button   ActionButton
}

func NewSynchronizer(document Document, button ActionButton) *Synchronizer {
	return &Synchronizer{document: document, button: button}
}

func (s *Synchronizer) element(c context.Context, id string) (Element, bool) {
	el, ok := s.document.ElementByID(id)
	if !ok {
		zerolog.Ctx(c).Trace().
			Str(log.KeyTag, "Synchronizer element").
			Str(log.KeyElementID, id).
			Msg("element not rendered, skipping")
	}
	return el, ok
}

func (s *Synchronizer) RefreshProductControl(c context.Context, id response.ProductID, inCart bool) {
	el, ok := s.element(c, ProductButtonID(id))
	if !ok {
		return
	}
	if inCart {
		el.SetText(LabelDelete)
		el.SetStyle("backgroundColor", ColorDelete)
		return
	}
	el.SetText(LabelAdd)
	el.SetStyle("backgroundColor", ColorAdd)
}

func (s *Synchronizer) RefreshBadge(c context.Context, cart response.Cart) {
	if el, ok := s.element(c, ElementCartQuantity); ok {
		el.SetText(strconv.Itoa(cart.QuantityTotal))
	}
}

// RefreshSummaryView rebuilds the whole summary table on every call.
func (s *Synchronizer) RefreshSummaryView(c context.Context, cart response.Cart) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "Synchronizer RefreshSummaryView").Logger()

	if el, ok := s.element(c, ElementSummaryBody); ok {
		var buf bytes.Buffer
		if err := summaryRows.Execute(&buf, cart.Items); err != nil {
			err = fmt.Errorf("failed rendering summary rows with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		} else {
			el.SetInnerHTML(buf.String())
		}
	}

	if el, ok := s.element(c, ElementTotalPriceDisplay); ok {
		el.SetText(cart.FormattedTotal())
	}
}

func (s *Synchronizer) OpenSummary(c context.Context, cart response.Cart) {
	s.RefreshSummaryView(c, cart)
	if el, ok := s.element(c, ElementCartModal); ok {
		el.SetStyle("top", modalShownTop)
	}
}

func (s *Synchronizer) CloseSummary(c context.Context) {
	if el, ok := s.element(c, ElementCartModal); ok {
		el.SetStyle("top", modalHiddenTop)
	}
}

func (s *Synchronizer) SyncActionButton(c context.Context, cart response.Cart) {
	if cart.IsEmpty() {
		s.button.HideMainButton()
		return
	}
	s.button.ShowMainButton()
}
