package main

import (
	"fmt"

	"github.com/fwojciec/xbrlfacts"
)

// Run executes the facts command.
func (c *FactsCmd) Run(deps *Dependencies) error {
	filter := xbrlfacts.FactFilter{Limit: c.Limit}
	if c.Account != "" {
		filter.AccountItem = &c.Account
	}
	if c.Context != "" {
		filter.ContextRef = &c.Context
	}

	if c.Filing != "" {
		filing, err := deps.Filings.FindFilingByID(deps.Ctx, c.Filing)
		if xbrlfacts.ErrorCode(err) == xbrlfacts.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: filing %q not found\n", c.Filing)
			return err
		} else if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xbrlfacts.ErrorMessage(err))
			return err
		}
		filter.FilingID = &filing.ID
		fmt.Fprintf(deps.Stdout, "Facts of %s (filing %s, %d total):\n\n", filing.DocID, filing.ID, filing.FactCount)
	}

	found, err := deps.Facts.FindFacts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xbrlfacts.ErrorMessage(err))
		return err
	}

	if len(found) == 0 {
		fmt.Fprintln(deps.Stdout, "No facts found.")
		return nil
	}

	facts := make([]xbrlfacts.Fact, len(found))
	for i, f := range found {
		facts[i] = *f
	}
	fmt.Fprintln(deps.Stdout, xbrlfacts.FormatTable(xbrlfacts.Assemble(facts), 0))
	return nil
}
