package server

import (
	"net/http"
)

// RouteHandler is a function type for HTTP handlers
type RouteHandler func(http.ResponseWriter, *http.Request)

// IDRouteHandler handles a request scoped to one resource ID
type IDRouteHandler func(http.ResponseWriter, *http.Request, string)

// MethodRouter maps HTTP methods to handlers
type MethodRouter map[string]RouteHandler

// RouteByMethod routes requests based on HTTP method with standardized error handling
func RouteByMethod(w http.ResponseWriter, r *http.Request, routes MethodRouter) {
	handler, ok := routes[r.Method]
	if !ok {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handler(w, r)
}

// RouteResourceCollection handles standard list + create pattern
// GET -> list, POST -> create
func RouteResourceCollection(w http.ResponseWriter, r *http.Request, list, create RouteHandler) {
	routes := MethodRouter{}
	if list != nil {
		routes["GET"] = list
	}
	if create != nil {
		routes["POST"] = create
	}
	RouteByMethod(w, r, routes)
}

// RouteResourceItem handles the get + update + delete pattern on one ID.
// Nil handlers mean the method is not supported for this resource.
func RouteResourceItem(w http.ResponseWriter, r *http.Request, id string, get, update, delete IDRouteHandler) {
	var handler IDRouteHandler
	switch r.Method {
	case "GET":
		handler = get
	case "PUT":
		handler = update
	case "DELETE":
		handler = delete
	}
	if handler == nil {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handler(w, r, id)
}
