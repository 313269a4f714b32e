package mock

import (
	"context"

	"github.com/fwojciec/xbrlfacts"
)

var _ xbrlfacts.TableWriter = (*TableWriter)(nil)

// TableWriter is a mock implementation of xbrlfacts.TableWriter.
type TableWriter struct {
	WriteTableFn func(ctx context.Context, name string, table *xbrlfacts.FactTable) error
}

func (w *TableWriter) WriteTable(ctx context.Context, name string, table *xbrlfacts.FactTable) error {
	return w.WriteTableFn(ctx, name, table)
}
