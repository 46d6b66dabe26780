package page

import "sync"

// MemoryDocument is an in-memory Document. Element text may be read and
// written from several goroutines, which lets a test stand in for the
// external observer.
type MemoryDocument struct {
	mu       sync.Mutex
	elements map[string]*memoryElement
}

type memoryElement struct {
	doc  *MemoryDocument
	text string
}

// NewMemoryDocument creates a document containing empty elements with the given ids.
func NewMemoryDocument(ids ...string) *MemoryDocument {
	d := &MemoryDocument{elements: make(map[string]*memoryElement)}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add inserts an empty element. An existing element with the same id is kept.
func (d *MemoryDocument) Add(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.elements[id]; !ok {
		d.elements[id] = &memoryElement{doc: d}
	}
}

// Remove deletes an element.
func (d *MemoryDocument) Remove(id string) {
	d.mu.Lock()
	delete(d.elements, id)
	d.mu.Unlock()
}

// ElementByID implements Document.
func (d *MemoryDocument) ElementByID(id string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Text returns the text of an element, or "" if it does not exist.
func (d *MemoryDocument) Text(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[id]; ok {
		return el.text
	}
	return ""
}

// SetText replaces the text of an element if it exists.
func (d *MemoryDocument) SetText(id, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[id]; ok {
		el.text = text
	}
}

func (e *memoryElement) TextContent() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.text
}

func (e *memoryElement) SetTextContent(text string) {
	e.doc.mu.Lock()
	e.text = text
	e.doc.mu.Unlock()
}
