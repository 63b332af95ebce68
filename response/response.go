package response

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/shravanasati/preview/headers"
)

// Response is a complete HTTP response held in memory.
// Every response closes the connection after it is written.
type Response struct {
	StatusCode StatusCode
	Headers    *headers.Headers
	Body       []byte
}

// New returns an empty 200 response.
func New() *Response {
	hs := headers.NewHeaders()
	hs.Add("connection", "close")
	return &Response{
		StatusCode: StatusOK,
		Headers:    hs,
	}
}

// Empty returns a response with the given status and no body.
func Empty(code StatusCode) *Response {
	return New().WithStatusCode(code)
}

// NotFound returns a bare 404 response.
func NotFound() *Response {
	return Empty(StatusNotFound)
}

// FromFile reads the whole file at name into a 200 response.
// contentType is omitted from the headers when empty.
func FromFile(name, contentType string) (*Response, error) {
	body, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	resp := New().WithBody(body)
	if contentType != "" {
		resp.WithHeader("content-type", contentType)
	}
	return resp, nil
}

func (r *Response) WithStatusCode(code StatusCode) *Response {
	r.StatusCode = code
	return r
}

func (r *Response) WithHeader(key, value string) *Response {
	r.Headers.Add(key, value)
	return r
}

func (r *Response) WithBody(body []byte) *Response {
	r.Body = body
	return r
}

// Write serializes the response to w. A content-length header is always sent.
func (r *Response) Write(w io.Writer) error {
	r.Headers.Set("content-length", strconv.Itoa(len(r.Body)))

	if w == nil {
		return ErrNilWriter
	}
	bw := bufio.NewWriter(w)
	rw := NewWriter(bw)
	if err := rw.WriteStatusLine(r.StatusCode); err != nil {
		return err
	}
	if err := rw.WriteHeaders(r.Headers); err != nil {
		return err
	}
	if err := rw.WriteBody(r.Body); err != nil {
		return err
	}
	return bw.Flush()
}
