package response

import (
	"fmt"
	"io"

	"github.com/shravanasati/preview/headers"
)

// Writer writes the parts of an HTTP/1.1 response in order:
// status line, headers, then body. Each part can be written once.
type Writer struct {
	conn  io.Writer
	state responseState
}

// NewWriter returns a Writer on top of conn.
func NewWriter(conn io.Writer) *Writer {
	return &Writer{conn: conn, state: stateStatusLine}
}

func (rw *Writer) expect(state responseState) error {
	if rw.conn == nil {
		return ErrNilWriter
	}
	if rw.state != state {
		return fmt.Errorf("%w: cannot write %s in state %s", ErrInvalidWriterState, state, rw.state)
	}
	return nil
}

// WriteStatusLine writes `HTTP/1.1 <code> <reason>`.
func (rw *Writer) WriteStatusLine(code StatusCode) error {
	if err := rw.expect(stateStatusLine); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(rw.conn, "HTTP/1.1 %d %s\r\n", code, code.Reason()); err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}

// WriteHeaders writes the header fields and the blank line ending the header section.
func (rw *Writer) WriteHeaders(h *headers.Headers) error {
	if err := rw.expect(stateHeaders); err != nil {
		return err
	}
	if _, err := h.WriteTo(rw.conn); err != nil {
		return err
	}
	if _, err := io.WriteString(rw.conn, "\r\n"); err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}

// WriteBody writes the full body.
func (rw *Writer) WriteBody(body []byte) error {
	if err := rw.expect(stateBody); err != nil {
		return err
	}
	if _, err := rw.conn.Write(body); err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}
