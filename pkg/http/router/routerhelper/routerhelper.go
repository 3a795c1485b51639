package routerhelper

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers handlers under a shared path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{
		router: router,
		prefix: prefix,
	}
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.router.Handle(http.MethodGet, g.prefix+path, handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.router.Handle(http.MethodPost, g.prefix+path, handle)
}
