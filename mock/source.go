package mock

import (
	"context"
	"time"

	"github.com/fwojciec/xbrlfacts"
)

var _ xbrlfacts.FilingSource = (*FilingSource)(nil)

// FilingSource is a mock implementation of xbrlfacts.FilingSource.
type FilingSource struct {
	ListDocumentsFn func(ctx context.Context, date time.Time) ([]*xbrlfacts.DocumentInfo, error)
	FetchArchiveFn  func(ctx context.Context, docID string) ([]byte, error)
}

func (s *FilingSource) ListDocuments(ctx context.Context, date time.Time) ([]*xbrlfacts.DocumentInfo, error) {
	return s.ListDocumentsFn(ctx, date)
}

func (s *FilingSource) FetchArchive(ctx context.Context, docID string) ([]byte, error) {
	return s.FetchArchiveFn(ctx, docID)
}
