// Package resolve maps request paths onto files below a root directory.
package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

const indexFile = "index.html"

// Target is a file selected to answer a request.
type Target struct {
	// Path is the absolute filesystem path of the file.
	Path string
	// ContentType is empty when the extension is not in the table.
	ContentType string
}

func newTarget(path string) Target {
	ct, _ := ContentType(path)
	return Target{Path: path, ContentType: ct}
}

// Resolve decides which file under root answers requestPath. The first match wins:
//
//  1. the path itself, if it is a regular file
//  2. index.html inside it, if it is a directory
//  3. the path with its extension replaced by (or extended with) .html
//
// Any requestPath containing ".." is rejected outright, wherever it appears.
// Symbolic links are followed.
func Resolve(requestPath, root string) (Target, bool) {
	if strings.Contains(requestPath, "..") {
		return Target{}, false
	}

	root = filepath.Clean(root)
	candidate := filepath.Join(root, strings.TrimPrefix(requestPath, "/"))

	if isFile(candidate) {
		return newTarget(candidate), true
	}

	if isDir(candidate) {
		index := filepath.Join(candidate, indexFile)
		if isFile(index) {
			return newTarget(index), true
		}
	}

	// root itself has no sibling we are allowed to serve
	if candidate == root {
		return Target{}, false
	}

	withHTML := replaceExtension(candidate, "html")
	if isFile(withHTML) {
		return newTarget(withHTML), true
	}

	return Target{}, false
}

// replaceExtension swaps the extension of the final path element for ext,
// or appends it when there is none: "a/data.json" becomes "a/data.html".
func replaceExtension(path, ext string) string {
	dir, file := filepath.Split(path)
	if e, ok := extension(file); ok {
		file = file[:len(file)-len(e)-1]
	}
	return dir + file + "." + ext
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
