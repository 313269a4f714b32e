package main

import (
	"fmt"

	"github.com/fwojciec/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/ingest"
	"golang.org/x/sync/errgroup"
)

type extractOutcome struct {
	result *ingest.Result
	err    error
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]extractOutcome, len(c.DocIDs))

	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, docID := range c.DocIDs {
		i, docID := i, docID
		g.Go(func() error {
			data, err := deps.Source.FetchArchive(gctx, docID)
			if err != nil {
				outcomes[i].err = err
				return nil
			}
			outcomes[i].result, outcomes[i].err = deps.Ingester.Ingest(data)
			return nil
		})
	}
	_ = g.Wait()

	opts := outputOptions{Preview: c.Preview, Force: c.Force}

	var failed int
	for i, docID := range c.DocIDs {
		o := outcomes[i]
		if o.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", docID, describe(o.err))
			continue
		}
		if err := emit(deps, docID, o.result, opts); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", docID, describe(err))
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(c.DocIDs))
	}
	return nil
}

// describe renders application errors by message and others in full.
func describe(err error) string {
	if xbrlfacts.ErrorCode(err) == xbrlfacts.EINTERNAL {
		return err.Error()
	}
	return xbrlfacts.ErrorMessage(err)
}
