package app

import (
	"fmt"

	"github.com/iov-one/tokenswap"
)

// Router maps operation tags to handlers.
type Router struct {
	routes map[tokenswap.Op]tokenswap.Handler
}

var _ tokenswap.Registry = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[tokenswap.Op]tokenswap.Handler),
	}
}

// Handle registers a handler for the given operation tag. Operations
// are registered once at startup; registering the same tag twice is a
// programming error and panics.
func (r *Router) Handle(op tokenswap.Op, h tokenswap.Handler) {
	if _, ok := r.routes[op]; ok {
		panic(fmt.Sprintf("re-registering operation %d", op))
	}
	r.routes[op] = h
}

// Route returns the handler registered for the operation, or nil.
func (r *Router) Route(op tokenswap.Op) tokenswap.Handler {
	return r.routes[op]
}
