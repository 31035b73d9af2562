package document

import (
	"sync"

	"github.com/google/uuid"
)

// TextListener is notified after a document has been mutated.
type TextListener interface {
	OnTextChange(doc *Document, changes []TextChange)
}

// TextListenerFunc adapts a function to the TextListener interface.
type TextListenerFunc func(doc *Document, changes []TextChange)

// OnTextChange calls f.
func (f TextListenerFunc) OnTextChange(doc *Document, changes []TextChange) {
	f(doc, changes)
}

// Subscription is a registered listener.
type Subscription struct {
	id        uuid.UUID
	registrar *Registrar
}

// ID returns the subscription's identifier.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Remove unregisters the listener. Removing twice is a no-op.
func (s *Subscription) Remove() {
	if s != nil && s.registrar != nil {
		s.registrar.remove(s.id)
	}
}

// Registrar keeps the listeners of a document and notifies them in
// registration order.
type Registrar struct {
	mu        sync.RWMutex
	listeners map[uuid.UUID]TextListener
	order     []uuid.UUID
}

// NewRegistrar returns an empty registrar.
func NewRegistrar() *Registrar {
	return &Registrar{listeners: make(map[uuid.UUID]TextListener)}
}

// Add registers listener.
func (r *Registrar) Add(listener TextListener) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.listeners[id] = listener
	r.order = append(r.order, id)
	return &Subscription{id: id, registrar: r}
}

// Len returns the number of registered listeners.
func (r *Registrar) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

func (r *Registrar) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listeners[id]; !ok {
		return
	}
	delete(r.listeners, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registrar) dispatch(doc *Document, changes []TextChange) {
	// Listeners may unsubscribe while being notified.
	r.mu.RLock()
	listeners := make([]TextListener, 0, len(r.order))
	for _, id := range r.order {
		listeners = append(listeners, r.listeners[id])
	}
	r.mu.RUnlock()

	for _, l := range listeners {
		l.OnTextChange(doc, changes)
	}
}
