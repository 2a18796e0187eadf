package routerman

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// JSON wraps a value so it renders as an application/json response.
// Marshal failures recurse into the formatter.
func JSON(v any) Reply {
	return jsonReply{v: v}
}

type jsonReply struct {
	v any
}

// Reply implements the Reply interface.
func (j jsonReply) Reply(f Formatter) *Response {
	content, err := json.Marshal(j.v)
	if err != nil {
		return f.FormatError(fmt.Errorf("json error: %w", err))
	}
	return With(Bytes(content), ContentType(contentTypeJSON)).Reply(f)
}

// ExtractJSON reads the request body and decodes it into T.
func ExtractJSON[T any](r *http.Request) (T, error) {
	var v T

	body, err := ExtractBytes(r)
	if err != nil {
		return v, fmt.Errorf("body error: %w", err)
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("json error: %w", err)
	}
	return v, nil
}

// ExtractBytes reads and closes the whole request body.
func ExtractBytes(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
