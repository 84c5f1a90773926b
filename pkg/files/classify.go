package files

import "github.com/gabriel-vasile/mimetype"

// IsBinary reports whether content should be treated as binary. Content is text when its
// sniffed MIME type is text/plain or a descendant of it (json, html, shell scripts, ...).
// Empty content is text.
func IsBinary(content []byte) bool {
	for mtype := mimetype.Detect(content); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return false
		}
	}
	return true
}
