package resolve

import (
	"path/filepath"
	"strings"
)

// contentTypes maps file extensions, without the dot, to MIME types.
// Lookups are case-sensitive.
var contentTypes = map[string]string{
	"txt":  "text/plain; charset=utf8",
	"html": "text/html; charset=utf8",
	"htm":  "text/html; charset=utf8",
	"css":  "text/css",
	"js":   "text/javascript",
	"pdf":  "application/pdf",
	"zip":  "application/zip",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"svg":  "image/svg+xml",
}

// extension returns the part of the final path element after its last dot.
// A leading dot alone (".profile") does not start an extension.
func extension(name string) (string, bool) {
	if i := strings.LastIndexAny(name, "/"+string(filepath.Separator)); i >= 0 {
		name = name[i+1:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return "", false
	}
	return name[dot+1:], true
}

// ContentType returns the MIME type for the extension of name.
// Unknown or missing extensions report false, and no Content-Type should be sent.
func ContentType(name string) (string, bool) {
	ext, ok := extension(name)
	if !ok {
		return "", false
	}
	ct, ok := contentTypes[ext]
	return ct, ok
}
