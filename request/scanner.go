package request

import (
	"bufio"
	"bytes"
	"io"
)

var crlf = []byte("\r\n")

// maxHeadSize bounds a single request line or header field line.
const maxHeadSize = 64 * 1024

// ScanCRLF splits on `\r\n`. Adopted from [bufio.ScanLines].
func ScanCRLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.Index(data, crlf); i >= 0 {
		return i + 2, data[:i], nil
	}
	// a trailing partial line is not a complete field line; the caller treats it as truncation
	if atEOF {
		return len(data), data, io.ErrUnexpectedEOF
	}
	// request more data
	return 0, nil, nil
}

func newCRLFScanner(reader io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 4096), maxHeadSize)
	scanner.Split(ScanCRLF)
	return scanner
}
