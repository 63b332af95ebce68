package response

// StatusCode is an HTTP status code.
type StatusCode int

const (
	StatusOK        StatusCode = 200
	StatusNoContent StatusCode = 204

	StatusMovedPermanently StatusCode = 301
	StatusFound            StatusCode = 302
	StatusNotModified      StatusCode = 304

	StatusBadRequest                  StatusCode = 400
	StatusForbidden                   StatusCode = 403
	StatusNotFound                    StatusCode = 404
	StatusMethodNotAllowed            StatusCode = 405
	StatusRequestTimeout              StatusCode = 408
	StatusURITooLong                  StatusCode = 414
	StatusRequestHeaderFieldsTooLarge StatusCode = 431

	StatusInternalServerError     StatusCode = 500
	StatusNotImplemented          StatusCode = 501
	StatusServiceUnavailable      StatusCode = 503
	StatusHTTPVersionNotSupported StatusCode = 505
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:        "OK",
	StatusNoContent: "No Content",

	StatusMovedPermanently: "Moved Permanently",
	StatusFound:            "Found",
	StatusNotModified:      "Not Modified",

	StatusBadRequest:                  "Bad Request",
	StatusForbidden:                   "Forbidden",
	StatusNotFound:                    "Not Found",
	StatusMethodNotAllowed:            "Method Not Allowed",
	StatusRequestTimeout:              "Request Timeout",
	StatusURITooLong:                  "URI Too Long",
	StatusRequestHeaderFieldsTooLarge: "Request Header Fields Too Large",

	StatusInternalServerError:     "Internal Server Error",
	StatusNotImplemented:          "Not Implemented",
	StatusServiceUnavailable:      "Service Unavailable",
	StatusHTTPVersionNotSupported: "HTTP Version Not Supported",
}

// Reason returns the reason phrase for the status code, or an empty string if it is unknown.
func (s StatusCode) Reason() string {
	return reasonPhrases[s]
}
