package core

import "context"

// DocumentExtractor turns a stored file into plain text.
type DocumentExtractor interface {
	// Supports reports whether the filename suffix names a type Extract can handle.
	Supports(filename string) bool
	// Extract returns the text of data, dispatching on the filename suffix.
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
