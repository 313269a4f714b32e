package mock

import "github.com/fwojciec/xbrlfacts"

var _ xbrlfacts.ArchiveExtractor = (*ArchiveExtractor)(nil)

// ArchiveExtractor is a mock implementation of xbrlfacts.ArchiveExtractor.
type ArchiveExtractor struct {
	ExtractFn func(data []byte) (*xbrlfacts.Archive, error)
}

func (e *ArchiveExtractor) Extract(data []byte) (*xbrlfacts.Archive, error) {
	return e.ExtractFn(data)
}
