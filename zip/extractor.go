// Package zip implements xbrlfacts.ArchiveExtractor for zip containers.
package zip

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fwojciec/xbrlfacts"
	kzip "github.com/klauspost/compress/zip"
)

// Ensure Extractor implements xbrlfacts.ArchiveExtractor at compile time.
var _ xbrlfacts.ArchiveExtractor = (*Extractor)(nil)

// DefaultMaxEntrySize bounds the decompressed size of a single entry.
const DefaultMaxEntrySize = 256 << 20

// Extractor decompresses zip archives held in memory.
type Extractor struct {
	maxEntrySize int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxEntrySize sets the largest decompressed entry accepted.
// Defaults to DefaultMaxEntrySize if not specified.
func WithMaxEntrySize(n int64) Option {
	return func(e *Extractor) {
		e.maxEntrySize = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxEntrySize: DefaultMaxEntrySize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns every entry of the archive keyed by its stored path.
// Directory entries are kept with empty content so the key set matches the
// archive's entry names.
func (e *Extractor) Extract(data []byte) (*xbrlfacts.Archive, error) {
	r, err := kzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &xbrlfacts.ArchiveError{Err: err}
	}

	paths := make([]string, 0, len(r.File))
	entries := make(map[string][]byte, len(r.File))

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			paths = append(paths, f.Name)
			entries[f.Name] = []byte{}
			continue
		}

		content, err := e.readEntry(f)
		if err != nil {
			return nil, &xbrlfacts.ArchiveError{Path: f.Name, Err: err}
		}

		paths = append(paths, f.Name)
		entries[f.Name] = content
	}

	return xbrlfacts.NewArchive(paths, entries), nil
}

// readEntry reads one entry completely, closing it on every path.
func (e *Extractor) readEntry(f *kzip.File) ([]byte, error) {
	if f.UncompressedSize64 > uint64(e.maxEntrySize) {
		return nil, fmt.Errorf("entry size %d exceeds limit %d", f.UncompressedSize64, e.maxEntrySize)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, e.maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > e.maxEntrySize {
		return nil, fmt.Errorf("entry exceeds limit %d", e.maxEntrySize)
	}

	return content, nil
}
