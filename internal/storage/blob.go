package storage

import "io"

// File is a readable, seekable blob. Range streaming needs Seek, so plain
// io.ReadCloser is not enough here.
type File interface {
	io.ReadSeekCloser
}

// BlobStore persists uploaded lesson media (videos, PDFs, question images).
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns the canonical key
	Open(key string) (File, int64, error)        // file plus its size in bytes
	Exists(key string) bool
}
