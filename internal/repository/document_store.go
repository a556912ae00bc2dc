package repository

import "context"

// DocumentStore reads and writes raw OPML documents.
// Read returns an error satisfying errors.Is(err, fs.ErrNotExist) when the
// document does not exist yet.
type DocumentStore interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}
