package headers

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var fieldNameRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

type field struct {
	key   string
	value string
}

// Headers is a case-insensitive collection of HTTP header fields.
// Fields are kept in insertion order so that serialized responses are deterministic.
type Headers struct {
	fields []field
	index  map[string]int
}

func isValidFieldName(key string) bool {
	return fieldNameRegex.MatchString(key)
}

func validHeaderValueByte(c byte) bool {
	switch {
	case c == 0x09: // HTAB
		return true
	case c == 0x20: // SP
		return true
	case 0x21 <= c && c <= 0x7E: // VCHAR
		return true
	case c >= 0x80: // obs-text
		return true
	}
	return false
}

func isValidFieldValue(val []byte) bool {
	for _, b := range val {
		if !validHeaderValueByte(b) {
			return false
		}
	}
	return true
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Add adds a header. If the header already exists, the new value is appended to the
// existing one, separated by a comma. Invalid names or values are dropped.
func (h *Headers) Add(key, value string) {
	if !isValidFieldName(key) || !isValidFieldValue([]byte(value)) {
		// drop invalid headers to prevent response splitting
		return
	}

	key = normalizeKey(key)
	if i, ok := h.index[key]; ok {
		h.fields[i].value += ", " + value
		return
	}
	h.index[key] = len(h.fields)
	h.fields = append(h.fields, field{key: key, value: value})
}

// Set replaces any existing value of the header.
func (h *Headers) Set(key, value string) {
	h.Remove(key)
	h.Add(key, value)
}

// Get returns the value of a header, or an empty string.
func (h *Headers) Get(key string) string {
	if i, ok := h.index[normalizeKey(key)]; ok {
		return h.fields[i].value
	}
	return ""
}

// Has reports whether the header is present.
func (h *Headers) Has(key string) bool {
	_, ok := h.index[normalizeKey(key)]
	return ok
}

// Remove removes a header.
func (h *Headers) Remove(key string) {
	key = normalizeKey(key)
	i, ok := h.index[key]
	if !ok {
		return
	}
	h.fields = append(h.fields[:i], h.fields[i+1:]...)
	delete(h.index, key)
	for j := i; j < len(h.fields); j++ {
		h.index[h.fields[j].key] = j
	}
}

// All returns an iterator over all headers in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range h.fields {
			if !yield(f.key, f.value) {
				return
			}
		}
	}
}

// WriteTo writes the headers as CRLF-terminated field lines.
// It does not write the blank line that ends the header section.
func (h *Headers) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for k, v := range h.All() {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	return buf.WriteTo(w)
}

// ParseFieldLine parses a single header line and adds it to the headers.
func (h *Headers) ParseFieldLine(data []byte) (err error) {
	colonPos := bytes.IndexByte(data, ':')
	if colonPos == -1 {
		return ErrMalformedHeader
	}

	// leading whitespace in header key is allowed
	hkey := bytes.TrimLeft(data[:colonPos], " \t")
	hvalue := bytes.Trim(data[colonPos+1:], " \t")

	if !bytes.Equal(hkey, bytes.TrimRight(hkey, " ")) {
		// space between key and colon, invalid
		return ErrMalformedHeader
	}

	if !fieldNameRegex.Match(hkey) || !isValidFieldValue(hvalue) {
		return ErrMalformedHeader
	}

	h.Add(string(hkey), string(hvalue))
	return nil
}

// Size returns the number of distinct headers.
func (h *Headers) Size() int {
	return len(h.fields)
}

// NewHeaders creates an empty Headers.
func NewHeaders() *Headers {
	return &Headers{
		index: map[string]int{},
	}
}
