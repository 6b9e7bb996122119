//go:build js && wasm

package webapp

import (
	"syscall/js"

	"github.com/Alturino/tgcart/cart/internal/view"
)

// Document resolves elements through window.document.
type Document struct {
	document js.Value
}

func NewDocument() Document {
	return Document{document: js.Global().Get("document")}
}

func (d Document) ElementByID(id string) (view.Element, bool) {
	node := d.document.Call("getElementById", id)
	if node.IsNull() || node.IsUndefined() {
		return nil, false
	}
	return element{node: node}, true
}

func (d Document) querySelectorAll(selector string) []js.Value {
	list := d.document.Call("querySelectorAll", selector)
	nodes := make([]js.Value, list.Length())
	for i := range nodes {
		nodes[i] = list.Index(i)
	}
	return nodes
}

type element struct {
	node js.Value
}

func (e element) SetText(text string) {
	e.node.Set("textContent", text)
}

func (e element) SetStyle(property string, value string) {
	e.node.Get("style").Set(property, value)
}

func (e element) SetInnerHTML(html string) {
	e.node.Set("innerHTML", html)
}
