// Package routerman is a minimal, generic HTTP routing and dispatch core
// for Go. Given an incoming request it selects a registered handler by
// path and method, extracts percent-decoded path parameters, invokes the
// handler, and converts the handler's return value into a wire response,
// uniformly recovering every routing failure (no match, method mismatch,
// malformed path parameters, trailing-slash mismatches) into a concrete
// response.
//
// # Building a router
//
// Routes are registered on a builder and frozen with Build. The built
// router is immutable and safely shared by any number of concurrent
// requests; it implements http.Handler.
//
//	router := routerman.NewRouter().
//		Route("/hello", routerman.Get(func(r *http.Request) routerman.Reply {
//			return routerman.Text("Hello, World!")
//		})).
//		Route("/items/{id}", routerman.Get(func(r *http.Request) routerman.Reply {
//			return routerman.Text(routerman.Param(r, "id"))
//		})).
//		Default(routerman.HandlerFunc(func(r *http.Request) routerman.Reply {
//			return routerman.With(routerman.Text("nothing here"), routerman.SetStatus(http.StatusNotFound))
//		})).
//		Build()
//
//	http.ListenAndServe(":8080", router)
//
// Misconfiguration (duplicate patterns, conflicting default routes,
// merging two fallback-bearing method routers) panics at build time.
// Request-time routing failures never escape: they are converted to
// responses by the formatter (404 for no match, 405 with a computed
// Allow header for method mismatches, 400 for malformed parameter
// encoding, and 308 with a corrected Location for trailing-slash
// mismatches).
//
// # Handlers and replies
//
// A handler is any func(*http.Request) Reply; the Reply is converted to a
// response with the router's formatter. Built-in replies cover plain
// text, HTML, raw bytes, bare status codes, JSON, redirects, and
// Result[T] for handlers with an error branch. With composes a reply
// with response parts:
//
//	return routerman.With(routerman.JSON(item), routerman.SetStatus(http.StatusCreated))
//
// Handlers that need the formatter directly use the raw shape
// func(*http.Request, routerman.Formatter) *routerman.Response and return
// an already-final response.
//
// # Method routing
//
// Per-method handlers for one path compose through MethodRouter; Merge
// unions two of them, with the later registration winning per method:
//
//	routerman.Get(listItems).Merge(routerman.Post(createItem))
package routerman
