package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/ingest"
)

// outputOptions control what is done with an ingested filing.
type outputOptions struct {
	Preview int
	Force   bool
}

// emit prints, stores and writes the result of one filing.
func emit(deps *Dependencies, name string, result *ingest.Result, opts outputOptions) error {
	fmt.Fprintf(deps.Stdout, "%s: %d facts from %s (%s)\n",
		name, result.Table.Len(), ingest.FormatBytes(result.Size), result.ContentHash)
	fmt.Fprintln(deps.Stderr, ingest.FormatDiagnostics(&result.Diagnostics))

	if failed := result.Diagnostics.Failed(); len(failed) > 0 {
		fmt.Fprintf(deps.Stdout, "  %d of %d candidate documents could not be parsed\n",
			len(failed), len(result.Diagnostics.Candidates))
	}

	if result.Diagnostics.Empty() {
		fmt.Fprintf(deps.Stdout, "  no tagged facts found\n")
	} else if opts.Preview > 0 {
		fmt.Fprintln(deps.Stdout, xbrlfacts.FormatTable(result.Table, opts.Preview))
		if result.Table.Len() > opts.Preview {
			fmt.Fprintf(deps.Stdout, "  ... %d more rows\n", result.Table.Len()-opts.Preview)
		}
	}

	if deps.Filings != nil && deps.Facts != nil {
		if err := store(deps, name, result, opts.Force); err != nil {
			return err
		}
	}

	if deps.Writer != nil {
		if err := deps.Writer.WriteTable(deps.Ctx, name, result.Table); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	return nil
}

// store saves the filing and its facts. A filing whose facts could not be
// saved is deleted again, so a later run does not mistake it for a stored
// copy of the same archive.
func store(deps *Dependencies, name string, result *ingest.Result, force bool) error {
	if !force {
		existing, err := deps.Filings.FindFilings(deps.Ctx, xbrlfacts.FilingFilter{
			DocID:       &name,
			ContentHash: &result.ContentHash,
			Limit:       1,
		})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			fmt.Fprintf(deps.Stdout, "  already stored as filing %s\n", existing[0].ID)
			return nil
		}
	}

	filing := &xbrlfacts.Filing{
		DocID:       name,
		ContentHash: result.ContentHash,
		FactCount:   result.Table.Len(),
	}
	if err := deps.Filings.CreateFiling(deps.Ctx, filing); err != nil {
		return err
	}
	if err := deps.Facts.CreateFacts(deps.Ctx, filing.ID, result.Table); err != nil {
		if derr := deps.Filings.DeleteFiling(deps.Ctx, filing.ID); derr != nil {
			return errors.Join(err, fmt.Errorf("remove filing %s: %w", filing.ID, derr))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "  stored as filing %s\n", filing.ID)
	return nil
}
