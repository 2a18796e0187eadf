package routerman

import (
	"errors"
	"net/http"
	"strings"
)

// DefaultFormatter renders routing errors with their conventional status
// codes and any other error as a plain-text 500 carrying the error text.
type DefaultFormatter struct{}

// FormatError implements the Formatter interface.
func (f DefaultFormatter) FormatError(err error) *Response {
	var rerr *RouteError
	if errors.As(err, &rerr) {
		return f.formatRouteError(rerr)
	}
	return With(Text(err.Error()), SetStatus(http.StatusInternalServerError)).Reply(f)
}

func (f DefaultFormatter) formatRouteError(err *RouteError) *Response {
	switch err.Kind {
	case RouteNotFound:
		return Status(http.StatusNotFound).Reply(f)
	case RouteInvalidParamEncoding:
		return Status(http.StatusBadRequest).Reply(f)
	case RouteMethodNotAllowed:
		return With(Status(http.StatusMethodNotAllowed), SetHeader("Allow", err.Allow)).Reply(f)
	case RouteExtraTrailingSlash, RouteMissingTrailingSlash:
		// 308 keeps method and body across the redirect: this is routing
		// normalization, not a semantic move.
		return Redirect(redirectLocation(err), http.StatusPermanentRedirect).Reply(f)
	}
	return Status(http.StatusInternalServerError).Reply(f)
}

// redirectLocation computes the corrected URI for a trailing-slash
// mismatch: only the path component is rewritten, the query string is
// preserved verbatim.
func redirectLocation(err *RouteError) string {
	path := err.URL.EscapedPath()
	switch err.Kind {
	case RouteExtraTrailingSlash:
		path = strings.TrimSuffix(path, "/")
	case RouteMissingTrailingSlash:
		path += "/"
	}
	if query := err.URL.RawQuery; query != "" {
		return path + "?" + query
	}
	return path
}
