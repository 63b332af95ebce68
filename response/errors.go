package response

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// ErrInvalidWriterState is returned when a response part is written out of order.
var ErrInvalidWriterState = errors.New("invalid writer state")

// ErrNilWriter is returned when the response writer has no underlying connection.
var ErrNilWriter = errors.New("writer is nil")

// IsDisconnect reports whether err means the peer went away while the response
// was being written. Such errors are expected and not worth reporting.
func IsDisconnect(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe)
}
