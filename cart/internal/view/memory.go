package view

import (
	"maps"
	"slices"
	"sync"
)

const (
	PatchText      = "text"
	PatchStyle     = "style"
	PatchInnerHTML = "innerHTML"
)

// Patch is one recorded element mutation. The server host returns these to
// the page so it can replay them.
type Patch struct {
	ElementID string `json:"elementId"`
	Op        string `json:"op"`
	Property  string `json:"property,omitempty"`
	Value     string `json:"value"`
}

// MemoryDocument is an in-process Document. It either serves a fixed set of
// elements or, as a patch recorder, materializes any element asked for.
type MemoryDocument struct {
	mu         sync.Mutex
	elements   map[string]*MemoryElement
	autoCreate bool
	patches    []Patch
}

func NewMemoryDocument(ids ...string) *MemoryDocument {
	d := &MemoryDocument{elements: make(map[string]*MemoryElement, len(ids))}
	for _, id := range ids {
		d.elements[id] = newMemoryElement(d, id)
	}
	return d
}

func NewPatchRecorder() *MemoryDocument {
	return &MemoryDocument{elements: map[string]*MemoryElement{}, autoCreate: true}
}

func (d *MemoryDocument) ElementByID(id string) (Element, bool) {
	el, ok := d.Element(id)
	if !ok {
		return nil, false
	}
	return el, true
}

func (d *MemoryDocument) Element(id string) (*MemoryElement, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	if !ok && d.autoCreate {
		el = newMemoryElement(d, id)
		d.elements[id] = el
		ok = true
	}
	return el, ok
}

func (d *MemoryDocument) Patches() []Patch {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.patches)
}

func (d *MemoryDocument) record(p Patch) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.patches = append(d.patches, p)
}

type MemoryElement struct {
	mu        sync.Mutex
	id        string
	doc       *MemoryDocument
	text      string
	innerHTML string
	style     map[string]string
}

func newMemoryElement(doc *MemoryDocument, id string) *MemoryElement {
	return &MemoryElement{id: id, doc: doc, style: map[string]string{}}
}

func (e *MemoryElement) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
	e.doc.record(Patch{ElementID: e.id, Op: PatchText, Value: text})
}

func (e *MemoryElement) SetStyle(property string, value string) {
	e.mu.Lock()
	e.style[property] = value
	e.mu.Unlock()
	e.doc.record(Patch{ElementID: e.id, Op: PatchStyle, Property: property, Value: value})
}

func (e *MemoryElement) SetInnerHTML(html string) {
	e.mu.Lock()
	e.innerHTML = html
	e.mu.Unlock()
	e.doc.record(Patch{ElementID: e.id, Op: PatchInnerHTML, Value: html})
}

func (e *MemoryElement) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *MemoryElement) InnerHTML() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.innerHTML
}

func (e *MemoryElement) Style(property string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style[property]
}

func (e *MemoryElement) Styles() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.style)
}
