package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/xbrlfacts"
	main "github.com/fwojciec/xbrlfacts/cmd/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "extract")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "list")
		assert.Contains(t, stdout.String(), "file")
	})

	t.Run("file stores facts and writes CSV", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		archivePath := filepath.Join(dir, "S100TEST.zip")
		require.NoError(t, os.WriteFile(archivePath, filingArchive(t), 0644))
		dbPath := filepath.Join(dir, "facts.db")
		outDir := filepath.Join(dir, "out")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"file", archivePath, "--db", dbPath, "--out", outDir}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "S100TEST: 2 facts")
		assert.Contains(t, stdout.String(), "stored as filing")

		csvContent, err := os.ReadFile(filepath.Join(outDir, "S100TEST.csv"))
		require.NoError(t, err)
		assert.Contains(t, string(csvContent), `jppfs_cor:NetSales,CurrentYearDuration,\N,-6,6,JPY,1234000000`)

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		facts, err := sqlite.NewFactService(db).FindFacts(context.Background(), xbrlfacts.FactFilter{})
		require.NoError(t, err)
		require.Len(t, facts, 2)
		assert.Equal(t, int64(-56000000), *facts[1].Amount)
	})

	t.Run("facts and delete read the stored filing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		archivePath := filepath.Join(dir, "S100TEST.zip")
		require.NoError(t, os.WriteFile(archivePath, filingArchive(t), 0644))
		dbPath := filepath.Join(dir, "facts.db")

		run := func(args ...string) (string, error) {
			stdout := &bytes.Buffer{}
			err := main.NewMain().Run(context.Background(), append(args, "--db", dbPath), stdout, &bytes.Buffer{})
			return stdout.String(), err
		}

		_, err := run("file", archivePath)
		require.NoError(t, err)

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		filings, err := sqlite.NewFilingService(db).FindFilings(context.Background(), xbrlfacts.FilingFilter{})
		require.NoError(t, db.Close())
		require.NoError(t, err)
		require.Len(t, filings, 1)
		id := filings[0].ID

		out, err := run("facts", "--filing", id, "--account", "jppfs_cor:OperatingIncome")
		require.NoError(t, err)
		assert.Contains(t, out, "Facts of S100TEST")
		assert.Contains(t, out, "jppfs_cor:OperatingIncome\tCurrentYearDuration\t-\t-6\t6\tJPY\t-56000000")
		assert.NotContains(t, out, "jppfs_cor:NetSales")

		out, err = run("delete", id, "--force")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted filing "+id)

		out, err = run("facts")
		require.NoError(t, err)
		assert.Contains(t, out, "No facts found.")
	})

	t.Run("verbose logs locator stages", func(t *testing.T) {
		t.Parallel()

		archivePath := filepath.Join(t.TempDir(), "S100TEST.zip")
		require.NoError(t, os.WriteFile(archivePath, filingArchive(t), 0644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--verbose", "file", archivePath}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "stage=known-tag matches=2")
	})
}

func TestMain_Run_RequiresAPIKey(t *testing.T) {
	t.Setenv("EDINET_API_KEY", "")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"extract", "S100TEST"}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, xbrlfacts.EINVALID, xbrlfacts.ErrorCode(err))
	assert.Contains(t, stderr.String(), "EDINET_API_KEY")
}

func TestMain_Run_RequiresDatabase(t *testing.T) {
	t.Setenv("XBRLFACTS_DB", "")

	for _, args := range [][]string{{"facts"}, {"delete", "filing-1", "--force"}} {
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), args, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, xbrlfacts.EINVALID, xbrlfacts.ErrorCode(err))
		assert.Contains(t, stderr.String(), "XBRLFACTS_DB")
	}
}
