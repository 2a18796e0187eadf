package routerman

import (
	"fmt"

	"golang.org/x/net/http/httpguts"
)

// Part contributes one aspect of a response under construction: a status
// code, a header, or a body.
type Part interface {
	apply(res *Response) error
}

// With composes a terminal reply with response parts. The terminal reply
// is converted first, then parts apply left-to-right; a failing part
// short-circuits into the formatter. A nil terminal starts from an empty
// 200 response.
func With(terminal Reply, parts ...Part) Reply {
	return composite{terminal: terminal, parts: parts}
}

type composite struct {
	terminal Reply
	parts    []Part
}

// Reply implements the Reply interface.
func (c composite) Reply(f Formatter) *Response {
	res := replyOrEmpty(c.terminal, f)
	for _, part := range c.parts {
		if err := part.apply(res); err != nil {
			return f.FormatError(err)
		}
	}
	return res
}

// SetStatus overrides the response status code.
func SetStatus(code int) Part { return statusPart(code) }

type statusPart int

func (p statusPart) apply(res *Response) error {
	res.StatusCode = int(p)
	return nil
}

// SetHeader sets one response header. Invalid header names or values fail
// the part and are recovered by the formatter.
func SetHeader(key, value string) Part { return headerPart{key: key, value: value} }

type headerPart struct {
	key, value string
}

func (p headerPart) apply(res *Response) error {
	if !httpguts.ValidHeaderFieldName(p.key) {
		return fmt.Errorf("%w: %q", ErrInvalidHeaderName, p.key)
	}
	if !httpguts.ValidHeaderFieldValue(p.value) {
		return fmt.Errorf("%w for %q", ErrInvalidHeaderValue, p.key)
	}
	res.Header.Set(p.key, p.value)
	return nil
}

// SetBody replaces the response body.
func SetBody(body []byte) Part { return bodyPart(body) }

type bodyPart []byte

func (p bodyPart) apply(res *Response) error {
	res.Body = []byte(p)
	return nil
}

// ContentType sets the Content-Type header.
func ContentType(value string) Part {
	return headerPart{key: "Content-Type", value: value}
}
