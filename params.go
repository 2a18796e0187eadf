package routerman

import (
	"context"
	"net/http"
	"net/netip"
	"net/url"
	"unicode/utf8"
)

// RouteParams is the decoded path-parameter set attached to one request.
// It lives on the request context for the duration of that request.
type RouteParams map[string]string

// Get returns the decoded value for the given parameter key, or the
// empty string when the pattern captured no such key.
func (p RouteParams) Get(key string) string {
	return p[key]
}

type paramsCtxKey struct{}

type remoteAddrCtxKey struct{}

func requestWithParams(r *http.Request, params RouteParams) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), paramsCtxKey{}, params))
}

func requestWithRemoteAddr(r *http.Request, addr netip.AddrPort) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), remoteAddrCtxKey{}, addr))
}

// Params returns the route parameters attached to the request. It panics
// when the request never went through routing: that is a programming
// contract violation, not a runtime condition.
func Params(r *http.Request) RouteParams {
	params, ok := r.Context().Value(paramsCtxKey{}).(RouteParams)
	if !ok {
		panic(ErrMissingParams)
	}
	return params
}

// Param returns one decoded route parameter by name.
func Param(r *http.Request, key string) string {
	return Params(r).Get(key)
}

// RemoteAddr returns the caller's socket address attached to the request
// before routing. It panics when the request never went through routing.
func RemoteAddr(r *http.Request) netip.AddrPort {
	addr, ok := r.Context().Value(remoteAddrCtxKey{}).(netip.AddrPort)
	if !ok {
		panic(ErrMissingRemoteAddr)
	}
	return addr
}

// decode percent-decodes every captured value independently per key. A
// single failure rejects the whole set atomically: no partially-decoded
// parameter map ever reaches a handler.
func (p rawParams) decode() (RouteParams, error) {
	decoded := make(RouteParams, len(p.keys))
	for i, key := range p.keys {
		if i >= len(p.values) {
			break
		}
		value, err := url.PathUnescape(p.values[i])
		if err != nil || !utf8.ValidString(value) {
			return nil, &RouteError{Kind: RouteInvalidParamEncoding, Key: key}
		}
		decoded[key] = value
	}
	return decoded, nil
}
