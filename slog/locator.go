package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/xbrlfacts"
)

// Ensure LoggingLocator implements xbrlfacts.FactLocator.
var _ xbrlfacts.FactLocator = (*LoggingLocator)(nil)

// LoggingLocator wraps a FactLocator and logs one record per stage run.
type LoggingLocator struct {
	next   xbrlfacts.FactLocator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next xbrlfacts.FactLocator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs its stage reports.
func (l *LoggingLocator) Locate(content []byte) (*xbrlfacts.Location, error) {
	begin := time.Now()
	loc, err := l.next.Locate(content)
	if err != nil {
		l.logger.Debug("locate",
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	for _, r := range loc.Stages {
		l.logger.Debug("locate stage",
			"stage", string(r.Stage),
			"matches", r.Matches,
		)
	}
	l.logger.Debug("locate",
		"bytes", len(content),
		"elements", len(loc.Elements),
		"duration", time.Since(begin),
	)
	return loc, nil
}
