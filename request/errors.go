package request

import "errors"

// ErrIncorrectRequestLine is returned when the request line is not of the form `METHOD target HTTP/1.x`.
var ErrIncorrectRequestLine = errors.New("incorrect request line")

// ErrIncompleteRequest is returned when the connection ends before the header section does.
var ErrIncompleteRequest = errors.New("incomplete request")
