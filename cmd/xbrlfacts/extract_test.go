package main_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/xbrlfacts"
	main "github.com/fwojciec/xbrlfacts/cmd/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/ingest"
	"github.com/fwojciec/xbrlfacts/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints facts of each document in argument order", func(t *testing.T) {
		t.Parallel()

		archive := filingArchive(t)
		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, docID string) ([]byte, error) {
				return archive, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Source = source

		cmd := &main.ExtractCmd{DocIDs: []string{"S100A001", "S100A002"}, Concurrency: 2, Preview: 10}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		first := bytes.Index(stdout.Bytes(), []byte("S100A001: 2 facts"))
		second := bytes.Index(stdout.Bytes(), []byte("S100A002: 2 facts"))
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, second)
		assert.Less(t, first, second)
		assert.Contains(t, output, "jppfs_cor:NetSales\tCurrentYearDuration\t-\t-6\t6\tJPY\t1234000000")
		assert.Contains(t, stderr.String(), "1 candidate documents among 1 entries")
	})

	t.Run("reports documents without facts", func(t *testing.T) {
		t.Parallel()

		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, _ string) ([]byte, error) {
				return buildArchive(t, map[string]string{"XBRL/PublicDoc/0000000_header.htm": "<html></html>"}), nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Source = source

		err := (&main.ExtractCmd{DocIDs: []string{"S100A001"}, Concurrency: 1, Preview: 10}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "S100A001: 0 facts")
		assert.Contains(t, stdout.String(), "no tagged facts found")
		assert.Contains(t, stderr.String(), "no candidate documents")
	})

	t.Run("continues after failed documents and reports count", func(t *testing.T) {
		t.Parallel()

		archive := filingArchive(t)
		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, docID string) ([]byte, error) {
				switch docID {
				case "S100MISS":
					return nil, xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "document not found")
				case "S100JUNK":
					return []byte("not a zip"), nil
				}
				return archive, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Source = source

		cmd := &main.ExtractCmd{DocIDs: []string{"S100MISS", "S100JUNK", "S100GOOD"}, Concurrency: 3}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 of 3 documents failed")
		assert.Contains(t, stderr.String(), "S100MISS: document not found")
		assert.Contains(t, stderr.String(), "S100JUNK: malformed archive")
		assert.Contains(t, stdout.String(), "S100GOOD: 2 facts")
	})

	t.Run("stores facts and skips identical archives", func(t *testing.T) {
		t.Parallel()

		archive := filingArchive(t)
		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, _ string) ([]byte, error) {
				return archive, nil
			},
		}

		var stored []*xbrlfacts.Filing
		var storedRows atomic.Int32
		filings := &mock.FilingService{
			FindFilingsFn: func(_ context.Context, filter xbrlfacts.FilingFilter) ([]*xbrlfacts.Filing, error) {
				for _, f := range stored {
					if f.DocID == *filter.DocID && f.ContentHash == *filter.ContentHash {
						return []*xbrlfacts.Filing{f}, nil
					}
				}
				return nil, nil
			},
			CreateFilingFn: func(_ context.Context, filing *xbrlfacts.Filing) error {
				filing.ID = "filing-1"
				stored = append(stored, filing)
				return nil
			},
		}
		facts := &mock.FactService{
			CreateFactsFn: func(_ context.Context, filingID string, table *xbrlfacts.FactTable) error {
				assert.Equal(t, "filing-1", filingID)
				storedRows.Add(int32(table.Len()))
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Source = source
		deps.Filings = filings
		deps.Facts = facts

		cmd := &main.ExtractCmd{DocIDs: []string{"S100A001"}, Concurrency: 1}
		require.NoError(t, cmd.Run(deps))
		require.NoError(t, cmd.Run(deps))

		require.Len(t, stored, 1)
		assert.Equal(t, 2, stored[0].FactCount)
		assert.Equal(t, int32(2), storedRows.Load())
		assert.Contains(t, stdout.String(), "stored as filing filing-1")
		assert.Contains(t, stdout.String(), "already stored as filing filing-1")
	})

	t.Run("removes the filing when its facts cannot be stored", func(t *testing.T) {
		t.Parallel()

		archive := filingArchive(t)
		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, _ string) ([]byte, error) {
				return archive, nil
			},
		}

		var stored []*xbrlfacts.Filing
		filings := &mock.FilingService{
			FindFilingsFn: func(_ context.Context, filter xbrlfacts.FilingFilter) ([]*xbrlfacts.Filing, error) {
				for _, f := range stored {
					if f.DocID == *filter.DocID && f.ContentHash == *filter.ContentHash {
						return []*xbrlfacts.Filing{f}, nil
					}
				}
				return nil, nil
			},
			CreateFilingFn: func(_ context.Context, filing *xbrlfacts.Filing) error {
				filing.ID = "filing-1"
				stored = append(stored, filing)
				return nil
			},
			DeleteFilingFn: func(_ context.Context, id string) error {
				for i, f := range stored {
					if f.ID == id {
						stored = append(stored[:i], stored[i+1:]...)
						return nil
					}
				}
				return xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "filing not found")
			},
		}
		var full atomic.Bool
		full.Store(true)
		facts := &mock.FactService{
			CreateFactsFn: func(_ context.Context, _ string, _ *xbrlfacts.FactTable) error {
				if full.Load() {
					return errors.New("disk full")
				}
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Source = source
		deps.Filings = filings
		deps.Facts = facts

		cmd := &main.ExtractCmd{DocIDs: []string{"S100A001"}, Concurrency: 1}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "disk full")
		assert.Empty(t, stored)

		full.Store(false)
		require.NoError(t, cmd.Run(deps))

		require.Len(t, stored, 1)
		assert.Contains(t, stdout.String(), "stored as filing filing-1")
		assert.NotContains(t, stdout.String(), "already stored")
	})

	t.Run("reports both errors when the filing cannot be removed", func(t *testing.T) {
		t.Parallel()

		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, _ string) ([]byte, error) {
				return filingArchive(t), nil
			},
		}
		filings := &mock.FilingService{
			FindFilingsFn: func(_ context.Context, _ xbrlfacts.FilingFilter) ([]*xbrlfacts.Filing, error) {
				return nil, nil
			},
			CreateFilingFn: func(_ context.Context, filing *xbrlfacts.Filing) error {
				filing.ID = "filing-1"
				return nil
			},
			DeleteFilingFn: func(_ context.Context, _ string) error {
				return errors.New("database is locked")
			},
		}
		facts := &mock.FactService{
			CreateFactsFn: func(_ context.Context, _ string, _ *xbrlfacts.FactTable) error {
				return errors.New("disk full")
			},
		}

		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Source = source
		deps.Filings = filings
		deps.Facts = facts

		err := (&main.ExtractCmd{DocIDs: []string{"S100A001"}, Concurrency: 1}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Contains(t, err.Error(), "remove filing filing-1: database is locked")
	})

	t.Run("reports archive size and unparsable documents", func(t *testing.T) {
		t.Parallel()

		archive := buildArchive(t, map[string]string{
			"XBRL/PublicDoc/0105000_instance.xbrl":    "<xbrl><broken></xbrl>",
			"XBRL/PublicDoc/0105010_honbun_ixbrl.htm": statement,
		})
		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, _ string) ([]byte, error) {
				return archive, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := newDeps(stdout, &bytes.Buffer{})
		deps.Source = source

		err := (&main.ExtractCmd{DocIDs: []string{"S100A001"}, Concurrency: 1}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "S100A001: 2 facts from "+ingest.FormatBytes(len(archive)))
		assert.Contains(t, stdout.String(), "1 of 2 candidate documents could not be parsed")
	})

	t.Run("writes a table per document", func(t *testing.T) {
		t.Parallel()

		archive := filingArchive(t)
		source := &mock.FilingSource{
			FetchArchiveFn: func(_ context.Context, _ string) ([]byte, error) {
				return archive, nil
			},
		}

		var names []string
		writer := &mock.TableWriter{
			WriteTableFn: func(_ context.Context, name string, table *xbrlfacts.FactTable) error {
				names = append(names, name)
				assert.Equal(t, 2, table.Len())
				return nil
			},
		}

		deps := newDeps(&bytes.Buffer{}, &bytes.Buffer{})
		deps.Source = source
		deps.Writer = writer

		err := (&main.ExtractCmd{DocIDs: []string{"S100A001", "S100A002"}, Concurrency: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"S100A001", "S100A002"}, names)
	})
}
