package response

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/shravanasati/preview/headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	resp := New()
	require.NotNil(t, resp)
	assert.Equal(t, StatusOK, resp.StatusCode)
	assert.Equal(t, "close", resp.Headers.Get("Connection"))
	assert.Nil(t, resp.Body)
}

func TestResponseChaining(t *testing.T) {
	resp := New().
		WithStatusCode(StatusNotFound).
		WithHeader("Content-Type", "text/css").
		WithBody([]byte("body{}"))

	assert.Equal(t, StatusNotFound, resp.StatusCode)
	assert.Equal(t, "text/css", resp.Headers.Get("content-type"))
	assert.Equal(t, "body{}", string(resp.Body))
}

func TestResponseWrite(t *testing.T) {
	resp := New().
		WithHeader("Content-Type", "text/html; charset=utf8").
		WithBody([]byte("Hello"))

	var buf strings.Builder
	require.NoError(t, resp.Write(&buf))

	want := "HTTP/1.1 200 OK\r\n" +
		"connection: close\r\n" +
		"content-type: text/html; charset=utf8\r\n" +
		"content-length: 5\r\n" +
		"\r\n" +
		"Hello"
	assert.Equal(t, want, buf.String())
}

func TestNotFoundWrite(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, NotFound().Write(&buf))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "HTTP/1.1 404 Not Found\r\n"))
	assert.Contains(t, output, "content-length: 0\r\n")
	assert.NotContains(t, output, "content-type")
	assert.True(t, strings.HasSuffix(output, "\r\n\r\n"))
}

func TestWriteTwiceKeepsSingleContentLength(t *testing.T) {
	resp := New().WithBody([]byte("abc"))
	var first, second strings.Builder
	require.NoError(t, resp.Write(&first))
	require.NoError(t, resp.Write(&second))
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 1, strings.Count(second.String(), "content-length"))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("with content type", func(t *testing.T) {
		name := filepath.Join(dir, "guide.html")
		require.NoError(t, os.WriteFile(name, []byte("Guide"), 0o644))

		resp, err := FromFile(name, "text/html; charset=utf8")
		require.NoError(t, err)
		assert.Equal(t, StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf8", resp.Headers.Get("content-type"))
		assert.Equal(t, []byte("Guide"), resp.Body)
	})

	t.Run("without content type", func(t *testing.T) {
		name := filepath.Join(dir, "LICENSE")
		require.NoError(t, os.WriteFile(name, []byte("MIT"), 0o644))

		resp, err := FromFile(name, "")
		require.NoError(t, err)
		assert.False(t, resp.Headers.Has("content-type"))
	})

	t.Run("binary content", func(t *testing.T) {
		content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0xFF}
		name := filepath.Join(dir, "logo.png")
		require.NoError(t, os.WriteFile(name, content, 0o644))

		resp, err := FromFile(name, "image/png")
		require.NoError(t, err)
		assert.Equal(t, content, resp.Body)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(dir, "gone.html"), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestWriterStateMachine(t *testing.T) {
	var buf strings.Builder
	rw := NewWriter(&buf)

	err := rw.WriteHeaders(headers.NewHeaders())
	assert.ErrorIs(t, err, ErrInvalidWriterState)

	err = rw.WriteBody([]byte("early"))
	assert.ErrorIs(t, err, ErrInvalidWriterState)

	require.NoError(t, rw.WriteStatusLine(StatusOK))
	assert.ErrorIs(t, rw.WriteStatusLine(StatusNotFound), ErrInvalidWriterState)

	require.NoError(t, rw.WriteHeaders(headers.NewHeaders()))
	require.NoError(t, rw.WriteBody([]byte("ok")))
	assert.ErrorIs(t, rw.WriteBody([]byte("again")), ErrInvalidWriterState)

	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nok", buf.String())
}

func TestWriterNilWriter(t *testing.T) {
	rw := NewWriter(nil)
	assert.ErrorIs(t, rw.WriteStatusLine(StatusOK), ErrNilWriter)
	assert.ErrorIs(t, New().Write(nil), ErrNilWriter)
}

type failingWriter struct {
	err error
}

func (fw failingWriter) Write(p []byte) (int, error) {
	return 0, fw.err
}

func TestWriteReturnsUnderlyingError(t *testing.T) {
	epipe := &net.OpError{Op: "write", Net: "tcp", Err: os.NewSyscallError("write", syscall.EPIPE)}
	err := New().WithBody([]byte("x")).Write(failingWriter{err: epipe})
	require.Error(t, err)
	assert.True(t, IsDisconnect(err))
}

func TestIsDisconnect(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"broken pipe", syscall.EPIPE, true},
		{"wrapped broken pipe", fmt.Errorf("write: %w", os.NewSyscallError("write", syscall.EPIPE)), true},
		{"connection reset", &net.OpError{Op: "write", Err: syscall.ECONNRESET}, true},
		{"closed connection", fmt.Errorf("flush: %w", net.ErrClosed), true},
		{"closed pipe", io.ErrClosedPipe, true},
		{"permission denied", os.ErrPermission, false},
		{"other", errors.New("disk on fire"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDisconnect(tt.err))
		})
	}
}

func TestStatusReason(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.Reason())
	assert.Equal(t, "Not Found", StatusNotFound.Reason())
	assert.Equal(t, "Bad Request", StatusBadRequest.Reason())
	assert.Equal(t, "", StatusCode(299).Reason())
}
