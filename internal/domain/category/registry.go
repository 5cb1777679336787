package category

import (
	"log/slog"
	"sort"
	"sync"

	"coupon-engine/internal/pkg/errs"
)

var ErrEmptyCategory = errs.New("handler registration requires a category")

// Registry maps a category string to its handler. Registrations happen once
// per process at startup (each consumer domain registers its own category);
// after that the map is read-only. The RWMutex still guards it so tests and
// late registrations stay race-free.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register installs a handler for a category. Re-registering overwrites the
// previous handler; that is deliberate (last registration wins) but worth a
// warning because it usually means two domains claim the same category.
func (r *Registry) Register(cat string, h Handler) error {
	if cat == "" {
		return ErrEmptyCategory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.handlers[cat]; ok {
		slog.Warn("coupon category handler overwritten",
			"category", cat,
			"previous_label", prev.Label,
			"new_label", h.Label)
	}
	r.handlers[cat] = h
	return nil
}

func (r *Registry) Lookup(cat string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[cat]
	return h, ok
}

func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]string, 0, len(r.handlers))
	for c := range r.handlers {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

func (r *Registry) Labels() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make(map[string]string, len(r.handlers))
	for c, h := range r.handlers {
		labels[c] = h.Label
	}
	return labels
}
