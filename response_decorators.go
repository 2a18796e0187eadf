package routerman

import "net/http"

// WithHeaders wraps a reply with custom HTTP headers. Headers go through
// the same validation as SetHeader; a bad one is recovered by the
// formatter.
func WithHeaders(reply Reply, headers map[string]string) Reply {
	if len(headers) == 0 {
		return reply
	}
	parts := make([]Part, 0, len(headers))
	for key, value := range headers {
		parts = append(parts, SetHeader(key, value))
	}
	return With(reply, parts...)
}

// WithCookie wraps a reply with an HTTP cookie.
func WithCookie(reply Reply, cookie *http.Cookie) Reply {
	if cookie == nil {
		return reply
	}
	return cookieReply{reply: reply, cookie: cookie}
}

type cookieReply struct {
	reply  Reply
	cookie *http.Cookie
}

// Reply implements the Reply interface.
func (c cookieReply) Reply(f Formatter) *Response {
	if err := c.cookie.Valid(); err != nil {
		return f.FormatError(err)
	}
	res := replyOrEmpty(c.reply, f)
	res.Header.Add("Set-Cookie", c.cookie.String())
	return res
}
