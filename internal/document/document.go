// Package document fetches warranty documents whose text the write gateway
// appends to product descriptions. Documents are gzipped plain text, stored
// either on the local file system or in S3.
package document

import "context"

// Loader reads a warranty document and returns its line-joined text content.
type Loader interface {
	// Load reads the named document and returns its non-empty lines joined
	// with newlines.
	Load(ctx context.Context, name string) (string, error)
}
