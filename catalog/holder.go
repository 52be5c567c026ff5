package catalog

import "sync/atomic"

// Holder publishes the current Catalog. Readers never block; a reload builds
// a complete replacement and swaps it in atomically.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder creates a Holder, optionally preloaded with c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	if c != nil {
		h.current.Store(c)
	}
	return h
}

// Load returns the current catalog, or ErrNoCatalog before the first Store.
func (h *Holder) Load() (*Catalog, error) {
	c := h.current.Load()
	if c == nil {
		return nil, ErrNoCatalog
	}
	return c, nil
}

// Store publishes c and returns the catalog it replaced, if any.
func (h *Holder) Store(c *Catalog) *Catalog {
	return h.current.Swap(c)
}
