package request

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shravanasati/preview/headers"
)

// Request is the head of an HTTP/1.x request. The body, if any, is never read.
type Request struct {
	Method      string
	Target      string
	HTTPVersion string
	// Path is the path component of Target, without query or fragment.
	// It is not percent-decoded.
	Path    string
	Headers *headers.Headers
}

// Any method token is accepted; the server treats all methods alike.
// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var requestLineRegex = regexp.MustCompile("^([a-zA-Z0-9!#$%&'*+\\-.^_`|~]+) ([^\\s]+) HTTP/(1\\.[01])$")

func (r *Request) parseRequestLine(line []byte) error {
	matches := requestLineRegex.FindSubmatch(line)
	if matches == nil {
		return ErrIncorrectRequestLine
	}
	r.Method = string(matches[1])
	r.Target = string(matches[2])
	r.HTTPVersion = string(matches[3])
	r.Path = PathFromTarget(r.Target)
	return nil
}

// PathFromTarget extracts the path component of a request-target.
// Absolute-form targets (`http://host/a`) yield their path, query strings and
// fragments are dropped, and an empty path becomes `/`.
func PathFromTarget(target string) string {
	if i := strings.Index(target, "://"); i >= 0 {
		rest := target[i+3:]
		slash := strings.IndexByte(rest, '/')
		if slash < 0 {
			rest = ""
		} else {
			rest = rest[slash:]
		}
		target = rest
	}
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return "/"
	}
	return target
}

// FromReader reads a request line and header section from reader.
// It stops at the blank line that ends the header section.
func FromReader(reader io.Reader) (*Request, error) {
	scanner := newCRLFScanner(reader)
	req := &Request{Headers: headers.NewHeaders()}

	lineCount := 0
	headersFinished := false
	for !headersFinished && scanner.Scan() {
		token := scanner.Bytes()
		lineCount++

		if lineCount == 1 {
			if err := req.parseRequestLine(token); err != nil {
				return nil, err
			}
			continue
		}

		if len(token) == 0 {
			// double CRLF, headers over
			headersFinished = true
			continue
		}

		if err := req.Headers.ParseFieldLine(token); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineCount, err)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	if !headersFinished {
		return nil, ErrIncompleteRequest
	}
	return req, nil
}
