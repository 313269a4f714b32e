package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	main "github.com/fwojciec/xbrlfacts/cmd/xbrlfacts"
	kzip "github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const statement = `<html xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"><body>
<ix:nonFraction name="jppfs_cor:NetSales" contextRef="CurrentYearDuration" unitRef="JPY" decimals="-6" scale="6">1,234</ix:nonFraction>
<ix:nonFraction name="jppfs_cor:OperatingIncome" contextRef="CurrentYearDuration" unitRef="JPY" decimals="-6" scale="6" sign="-">56</ix:nonFraction>
</body></html>`

func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := kzip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func filingArchive(t *testing.T) []byte {
	t.Helper()
	return buildArchive(t, map[string]string{
		"XBRL/PublicDoc/0105010_honbun_ixbrl.htm": statement,
	})
}

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   logger,
		Ingester: main.NewIngester(logger),
	}
}
