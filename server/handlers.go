package server

import (
	"github.com/shravanasati/preview/request"
	"github.com/shravanasati/preview/resolve"
	"github.com/shravanasati/preview/response"
)

// Handler answers a request. A non-nil error abandons the request: nothing is
// written and the error is reported unless the client already disconnected.
type Handler func(*request.Request) (*response.Response, error)

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// NewStaticHandler serves files below root. The method is ignored; only the
// request path decides the outcome. Unresolvable paths get a bare 404.
func NewStaticHandler(root string) Handler {
	return func(r *request.Request) (*response.Response, error) {
		target, ok := resolve.Resolve(r.Path, root)
		if !ok {
			return response.NotFound(), nil
		}
		return response.FromFile(target.Path, target.ContentType)
	}
}
