package routerman_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sync"
	"testing"

	"github.com/dmitrymomot/routerman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoParam(key string) routerman.HandlerFunc {
	return func(r *http.Request) routerman.Reply {
		return routerman.Text(routerman.Param(r, key))
	}
}

func TestRouter_RouteMatching(t *testing.T) {
	t.Parallel()

	router := routerman.NewRouter().
		Route("/", routerman.Get(func(r *http.Request) routerman.Reply {
			return routerman.Text("root")
		})).
		Route("/items/{id}", routerman.Get(echoParam("id"))).
		Route("/users/{user}/posts/{post}", routerman.Get(func(r *http.Request) routerman.Reply {
			params := routerman.Params(r)
			return routerman.Text(params.Get("user") + ":" + params.Get("post"))
		})).
		Route("/static/*", routerman.Get(echoParam("*"))).
		Build()

	tests := []struct {
		name         string
		path         string
		expectedBody string
	}{
		{"root", "/", "root"},
		{"single_param", "/items/42", "42"},
		{"nested_params", "/users/alice/posts/7", "alice:7"},
		{"catch_all", "/static/css/app.css", "css/app.css"},
		{"percent_decoded_param", "/items/a%20b", "a b"},
		{"escaped_percent_param", "/items/100%25", "100%"},
		{"doubly_escaped_param_decodes_once", "/items/a%2520b", "a%20b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRouter_TrailingSlashRedirect(t *testing.T) {
	t.Parallel()

	router := routerman.NewRouter().
		Route("/items/{id}", routerman.Get(echoParam("id"))).
		Route("/dir/", routerman.Get(func(r *http.Request) routerman.Reply {
			return routerman.Text("dir")
		})).
		Build()

	t.Run("extra_trailing_slash", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/items/42/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "/items/42", w.Header().Get("Location"))
	})

	t.Run("missing_trailing_slash", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/dir", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "/dir/", w.Header().Get("Location"))
	})

	t.Run("query_string_preserved_verbatim", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/items/42/?q=1&name=a%20b", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "/items/42?q=1&name=a%20b", w.Header().Get("Location"))
	})

	t.Run("method_preserved_by_308", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Route("/items/{id}", routerman.Post(echoParam("id"))).
			Build()

		req := httptest.NewRequest(http.MethodPost, "/items/42/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "/items/42", w.Header().Get("Location"))
	})
}

func TestRouter_DefaultRoute(t *testing.T) {
	t.Parallel()

	t.Run("default_receives_unmatched_requests", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Route("/items/{id}", routerman.Get(echoParam("id"))).
			Default(routerman.HandlerFunc(func(r *http.Request) routerman.Reply {
				return routerman.With(routerman.Text("404 Teapot-free plain text"), routerman.SetStatus(http.StatusNotFound))
			})).
			Build()

		req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "404 Teapot-free plain text", w.Body.String())
	})

	t.Run("default_gets_no_params", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Default(routerman.HandlerFunc(func(r *http.Request) routerman.Reply {
				assert.PanicsWithValue(t, routerman.ErrMissingParams, func() {
					routerman.Params(r)
				})
				return routerman.Text("default")
			})).
			Build()

		req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "default", w.Body.String())
	})

	t.Run("bare_not_found_without_default", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Route("/items/{id}", routerman.Get(echoParam("id"))).
			Build()

		req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestRouter_InvalidParamEncoding(t *testing.T) {
	t.Parallel()

	router := routerman.NewRouter().
		Route("/items/{id}", routerman.Get(func(r *http.Request) routerman.Reply {
			t.Error("handler must not run for undecodable params")
			return nil
		})).
		Build()

	// %ff survives URL parsing but decodes to a byte sequence that is not
	// valid UTF-8, so the capture set is rejected as a whole.
	req := httptest.NewRequest(http.MethodGet, "/items/%ff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RemoteAddr(t *testing.T) {
	t.Parallel()

	router := routerman.NewRouter().
		Route("/addr", routerman.Get(func(r *http.Request) routerman.Reply {
			return routerman.Text(routerman.RemoteAddr(r).String())
		})).
		Build()

	req := httptest.NewRequest(http.MethodGet, "/addr", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, netip.MustParseAddrPort("192.0.2.1:1234").String(), w.Body.String())
}

func TestRouter_Builder(t *testing.T) {
	t.Parallel()

	t.Run("merge_combines_routes", func(t *testing.T) {
		t.Parallel()

		a := routerman.NewRouter().
			Route("/a", routerman.Get(func(r *http.Request) routerman.Reply { return routerman.Text("a") }))
		b := routerman.NewRouter().
			Route("/b", routerman.Get(func(r *http.Request) routerman.Reply { return routerman.Text("b") })).
			Default(routerman.HandlerFunc(func(r *http.Request) routerman.Reply { return routerman.Text("fallback") }))

		router := a.Merge(b).Build()

		for path, body := range map[string]string{"/a": "a", "/b": "b", "/nope": "fallback"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, body, w.Body.String())
		}
	})

	t.Run("merge_with_conflicting_defaults_panics", func(t *testing.T) {
		t.Parallel()

		handler := routerman.HandlerFunc(func(r *http.Request) routerman.Reply { return nil })
		a := routerman.NewRouter().Default(handler)
		b := routerman.NewRouter().Default(handler)

		assert.PanicsWithValue(t, routerman.ErrConflictingDefault, func() {
			a.Merge(b)
		})
	})

	t.Run("duplicate_pattern_panics_at_build", func(t *testing.T) {
		t.Parallel()

		handler := routerman.HandlerFunc(func(r *http.Request) routerman.Reply { return nil })
		builder := routerman.NewRouter().
			Route("/items/{id}", handler).
			Route("/items/{id}", handler)

		assert.Panics(t, func() {
			builder.Build()
		})
	})

	t.Run("pattern_without_leading_slash_panics", func(t *testing.T) {
		t.Parallel()

		handler := routerman.HandlerFunc(func(r *http.Request) routerman.Reply { return nil })

		assert.Panics(t, func() {
			routerman.NewRouter().Route("items", handler).Build()
		})
	})

	t.Run("patterns_introspection", func(t *testing.T) {
		t.Parallel()

		handler := routerman.HandlerFunc(func(r *http.Request) routerman.Reply { return nil })
		router := routerman.NewRouter().
			Route("/b", handler).
			Route("/a", handler).
			Route("/items/{id}", handler).
			Build()

		assert.Equal(t, []string{"/a", "/b", "/items/{id}"}, router.Patterns())
	})
}

func TestRouter_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("response_yielded_exactly_once", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Route("/hello", routerman.Get(func(r *http.Request) routerman.Reply {
				return routerman.Text("hi")
			})).
			Build()

		d := router.Dispatch(httptest.NewRequest(http.MethodGet, "/hello", nil))
		res := d.Response()
		require.NotNil(t, res)
		assert.Equal(t, "hi", string(res.Body))

		assert.PanicsWithValue(t, routerman.ErrDispatchConsumed, func() {
			d.Response()
		})
	})

	t.Run("immediate_response_paths_skip_handlers", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().Build()

		d := router.Dispatch(httptest.NewRequest(http.MethodGet, "/missing", nil))
		res := d.Response()
		require.NotNil(t, res)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		assert.PanicsWithValue(t, routerman.ErrDispatchConsumed, func() {
			d.Response()
		})
	})
}

func TestRouter_RawHandler(t *testing.T) {
	t.Parallel()

	t.Run("raw_handler_returns_final_response", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Route("/raw", routerman.RawHandlerFunc(func(r *http.Request, f routerman.Formatter) *routerman.Response {
				return routerman.With(routerman.Text("raw"), routerman.SetStatus(http.StatusAccepted)).Reply(f)
			})).
			Build()

		req := httptest.NewRequest(http.MethodGet, "/raw", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "raw", w.Body.String())
	})

	t.Run("nil_response_recovered_as_500", func(t *testing.T) {
		t.Parallel()

		router := routerman.NewRouter().
			Route("/nil", routerman.RawHandlerFunc(func(r *http.Request, f routerman.Formatter) *routerman.Response {
				return nil
			})).
			Build()

		req := httptest.NewRequest(http.MethodGet, "/nil", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, routerman.ErrNilResponse.Error(), w.Body.String())
	})
}

func TestRouter_CustomFormatter(t *testing.T) {
	t.Parallel()

	router := routerman.NewRouter().
		Formatter(plainFormatter{}).
		Build()

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "custom: not found", w.Body.String())
}

// plainFormatter renders every error the same way, to prove the
// formatter is pluggable at build time.
type plainFormatter struct{}

func (f plainFormatter) FormatError(err error) *routerman.Response {
	res := routerman.NewResponse()
	res.StatusCode = http.StatusServiceUnavailable
	res.Body = []byte("custom: " + err.Error())
	return res
}

func TestRouter_ConcurrentRequests(t *testing.T) {
	t.Parallel()

	router := routerman.NewRouter().
		Route("/items/{id}", routerman.Get(echoParam("id"))).
		Build()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "42", w.Body.String())
		}()
	}
	wg.Wait()
}

func TestRouter_ResultHandler(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk offline")

	router := routerman.NewRouter().
		Route("/ok", routerman.Get(func(r *http.Request) routerman.Reply {
			return routerman.Result[routerman.Text]{Value: routerman.Text("all good")}
		})).
		Route("/fail", routerman.Get(func(r *http.Request) routerman.Reply {
			return routerman.Result[routerman.Text]{Err: errDisk}
		})).
		Build()

	t.Run("success_branch", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "all good", w.Body.String())
	})

	t.Run("failure_branch", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/fail", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "disk offline", w.Body.String())
	})
}
