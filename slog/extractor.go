// Package slog provides log/slog decorators for the xbrlfacts services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/xbrlfacts"
)

// Ensure LoggingExtractor implements xbrlfacts.ArchiveExtractor.
var _ xbrlfacts.ArchiveExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ArchiveExtractor with logging.
type LoggingExtractor struct {
	next   xbrlfacts.ArchiveExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next xbrlfacts.ArchiveExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the entry count.
func (e *LoggingExtractor) Extract(data []byte) (archive *xbrlfacts.Archive, err error) {
	defer func(begin time.Time) {
		entries := 0
		if archive != nil {
			entries = archive.Len()
		}
		e.logger.Debug("extract",
			"bytes", len(data),
			"entries", entries,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(data)
}
