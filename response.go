package routerman

import "net/http"

// Content types used by the built-in replies.
const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

// Response is the concrete wire response produced for every request:
// status, headers, and body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResponse returns an empty 200 response.
func NewResponse() *Response {
	return &Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
	}
}

// Write renders the response to the transport.
func (r *Response) Write(w http.ResponseWriter) error {
	for key, values := range r.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.Body) > 0 {
		_, err := w.Write(r.Body)
		return err
	}
	return nil
}

// Reply implements the Reply interface; a response converts to itself.
func (r *Response) Reply(Formatter) *Response { return r }

// Text is a plain-text 200 reply.
type Text string

// Reply implements the Reply interface.
func (t Text) Reply(Formatter) *Response {
	res := NewResponse()
	res.Header.Set("Content-Type", contentTypeText)
	res.Body = []byte(t)
	return res
}

// HTML is a text/html 200 reply.
type HTML string

// Reply implements the Reply interface.
func (h HTML) Reply(Formatter) *Response {
	res := NewResponse()
	res.Header.Set("Content-Type", contentTypeHTML)
	res.Body = []byte(h)
	return res
}

// Bytes is a raw-body 200 reply with no content type.
type Bytes []byte

// Reply implements the Reply interface.
func (b Bytes) Reply(Formatter) *Response {
	res := NewResponse()
	res.Body = []byte(b)
	return res
}

// Status is an empty reply with the given status code.
type Status int

// Reply implements the Reply interface.
func (s Status) Reply(Formatter) *Response {
	res := NewResponse()
	res.StatusCode = int(s)
	return res
}

// NoContent returns an empty 204 reply.
func NoContent() Reply {
	return Status(http.StatusNoContent)
}

// Result pairs a success reply with an error. The success branch converts
// like any reply; the failure branch is recovered by the formatter, so
// both converge into the same response channel.
type Result[T Reply] struct {
	Value T
	Err   error
}

// Reply implements the Reply interface.
func (r Result[T]) Reply(f Formatter) *Response {
	if r.Err != nil {
		return f.FormatError(r.Err)
	}
	return r.Value.Reply(f)
}

// replyOrEmpty converts a possibly-nil reply; nil renders as an empty
// 200 response.
func replyOrEmpty(r Reply, f Formatter) *Response {
	if r == nil {
		return NewResponse()
	}
	return r.Reply(f)
}
