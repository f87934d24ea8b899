package pool

import "sync"

// NewDynamic returns a Pool that grows and shrinks on demand. It is a thin
// wrapper around sync.Pool so callers depend on the narrower Pool interface
// instead of sync.Pool directly.
func NewDynamic(newFn func() interface{}) Pool {
	return &sync.Pool{New: newFn}
}
