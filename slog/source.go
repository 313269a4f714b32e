package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xbrlfacts"
)

// Ensure LoggingSource implements xbrlfacts.FilingSource.
var _ xbrlfacts.FilingSource = (*LoggingSource)(nil)

// LoggingSource wraps a FilingSource with logging of network calls.
type LoggingSource struct {
	next   xbrlfacts.FilingSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next xbrlfacts.FilingSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// ListDocuments delegates to the wrapped source and logs the result count.
func (s *LoggingSource) ListDocuments(ctx context.Context, date time.Time) (docs []*xbrlfacts.DocumentInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list documents",
			"date", date.Format("2006-01-02"),
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDocuments(ctx, date)
}

// FetchArchive delegates to the wrapped source and logs the archive size.
func (s *LoggingSource) FetchArchive(ctx context.Context, docID string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch archive",
			"doc", docID,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchArchive(ctx, docID)
}
