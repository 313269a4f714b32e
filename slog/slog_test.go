package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/mock"
	xslog "github.com/fwojciec/xbrlfacts/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs entry count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArchiveExtractor{
			ExtractFn: func(data []byte) (*xbrlfacts.Archive, error) {
				return xbrlfacts.NewArchive([]string{"a", "b"}, map[string][]byte{"a": nil, "b": nil}), nil
			},
		}

		archive, err := xslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract([]byte("zip"))

		require.NoError(t, err)
		assert.Equal(t, 2, archive.Len())
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "bytes=3")
		assert.Contains(t, output, "entries=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ArchiveExtractor{
			ExtractFn: func(data []byte) (*xbrlfacts.Archive, error) {
				return nil, &xbrlfacts.ArchiveError{Err: errors.New("not a zip")}
			},
		}

		_, err := xslog.NewLoggingExtractor(inner, debugLogger(&buf)).Extract([]byte("zip"))

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "entries=0")
		assert.Contains(t, output, "not a zip")
	})

	t.Run("silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArchiveExtractor{
			ExtractFn: func(data []byte) (*xbrlfacts.Archive, error) {
				return xbrlfacts.NewArchive(nil, nil), nil
			},
		}

		_, err := xslog.NewLoggingExtractor(inner, logger).Extract(nil)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingLocator_Locate(t *testing.T) {
	t.Parallel()

	t.Run("logs one record per stage", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.FactLocator{
			LocateFn: func(content []byte) (*xbrlfacts.Location, error) {
				return &xbrlfacts.Location{
					Elements: []xbrlfacts.TaggedElement{{Name: "jppfs_cor:NetSales"}},
					Stages: []xbrlfacts.StageReport{
						{Stage: xbrlfacts.StageKnownTag, Matches: 0},
						{Stage: xbrlfacts.StageAttribute, Matches: 1},
					},
				}, nil
			},
		}

		loc, err := xslog.NewLoggingLocator(inner, debugLogger(&buf)).Locate([]byte("<html/>"))

		require.NoError(t, err)
		assert.Len(t, loc.Elements, 1)
		output := buf.String()
		assert.Equal(t, 2, strings.Count(output, "msg=\"locate stage\""))
		assert.Contains(t, output, "stage=known-tag matches=0")
		assert.Contains(t, output, "stage=attribute matches=1")
		assert.Contains(t, output, "elements=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.FactLocator{
			LocateFn: func(content []byte) (*xbrlfacts.Location, error) {
				return nil, xbrlfacts.Errorf(xbrlfacts.EINVALID, "unreadable document")
			},
		}

		_, err := xslog.NewLoggingLocator(inner, debugLogger(&buf)).Locate(nil)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "unreadable document")
		assert.NotContains(t, output, "locate stage")
	})
}

func TestLoggingSource(t *testing.T) {
	t.Parallel()

	t.Run("logs document count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.FilingSource{
			ListDocumentsFn: func(ctx context.Context, date time.Time) ([]*xbrlfacts.DocumentInfo, error) {
				return []*xbrlfacts.DocumentInfo{{DocID: "S100A"}, {DocID: "S100B"}}, nil
			},
		}

		docs, err := xslog.NewLoggingSource(inner, debugLogger(&buf)).
			ListDocuments(context.Background(), time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Len(t, docs, 2)
		output := buf.String()
		assert.Contains(t, output, "list documents")
		assert.Contains(t, output, "date=2024-06-25")
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs archive size and error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.FilingSource{
			FetchArchiveFn: func(ctx context.Context, docID string) ([]byte, error) {
				return nil, errors.New("connection failed")
			},
		}

		_, err := xslog.NewLoggingSource(inner, debugLogger(&buf)).FetchArchive(context.Background(), "S100A")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch archive")
		assert.Contains(t, output, "doc=S100A")
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "err=\"connection failed\"")
	})
}
