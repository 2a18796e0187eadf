package routerman

import (
	"net/http"
	"sort"
	"strings"
)

// MethodRouter dispatches among routes by HTTP method. When no method
// matches it invokes the fallback route if one is set, otherwise it
// replies 405 with an automatically maintained Allow header.
type MethodRouter struct {
	handlers map[string]Route
	fallback Route
	allow    string
}

// NewMethodRouter returns an empty method router.
func NewMethodRouter() *MethodRouter {
	return &MethodRouter{handlers: make(map[string]Route)}
}

// Get returns a method router handling GET with the given handler.
func Get(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodGet, h) }

// Post returns a method router handling POST with the given handler.
func Post(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodPost, h) }

// Put returns a method router handling PUT with the given handler.
func Put(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodPut, h) }

// Delete returns a method router handling DELETE with the given handler.
func Delete(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodDelete, h) }

// Patch returns a method router handling PATCH with the given handler.
func Patch(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodPatch, h) }

// Head returns a method router handling HEAD with the given handler.
func Head(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodHead, h) }

// Options returns a method router handling OPTIONS with the given handler.
func Options(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodOptions, h) }

// Connect returns a method router handling CONNECT with the given handler.
func Connect(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodConnect, h) }

// Trace returns a method router handling TRACE with the given handler.
func Trace(h HandlerFunc) *MethodRouter { return NewMethodRouter().Method(http.MethodTrace, h) }

// Method registers a route for the given method. Re-registering a method
// overwrites the prior handler. The Allow header is recomputed eagerly on
// every mutation so dispatch never derives it per request.
func (m *MethodRouter) Method(method string, h RouteHandler) *MethodRouter {
	if method == "" {
		panic(ErrInvalidMethod)
	}
	if m.handlers == nil {
		m.handlers = make(map[string]Route)
	}
	m.handlers[strings.ToUpper(method)] = h.IntoRoute()
	m.updateAllowHeader()
	return m
}

// Fallback installs the route invoked when no method matches. A fallback
// route and the computed Allow behavior are mutually exclusive.
func (m *MethodRouter) Fallback(h RouteHandler) *MethodRouter {
	m.fallback = h.IntoRoute()
	return m
}

// Merge unions the method mappings of both routers; the other router's
// entries win on key collision. Merging two fallback-bearing routers
// panics: there is no deterministic way to choose between them. When only
// one side has a fallback, that one is adopted.
func (m *MethodRouter) Merge(other *MethodRouter) *MethodRouter {
	if m.handlers == nil && len(other.handlers) > 0 {
		m.handlers = make(map[string]Route, len(other.handlers))
	}
	for method, route := range other.handlers {
		m.handlers[method] = route
	}
	if other.fallback.valid() {
		if m.fallback.valid() {
			panic(ErrConflictingFallback)
		}
		m.fallback = other.fallback
	}
	m.updateAllowHeader()
	return m
}

// updateAllowHeader re-derives the advertised Allow value as the sorted,
// comma-joined set of registered methods. Never used once a fallback
// route is set.
func (m *MethodRouter) updateAllowHeader() {
	if m.fallback.valid() {
		return
	}
	methods := make([]string, 0, len(m.handlers))
	for method := range m.handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	m.allow = strings.Join(methods, ", ")
}

// IntoRoute converts the method router into a single dispatching route.
func (m *MethodRouter) IntoRoute() Route {
	return Route{fn: func(r *http.Request, f Formatter) *Response {
		if route, ok := m.handlers[r.Method]; ok {
			return route.invoke(r, f)
		}
		if m.fallback.valid() {
			return m.fallback.invoke(r, f)
		}
		return f.FormatError(&RouteError{Kind: RouteMethodNotAllowed, Allow: m.allow})
	}}
}
