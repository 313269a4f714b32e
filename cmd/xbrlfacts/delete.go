package main

import (
	"fmt"

	"github.com/fwojciec/xbrlfacts"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return xbrlfacts.Errorf(xbrlfacts.EINVALID, "use --force to confirm deletion")
	}

	filing, err := deps.Filings.FindFilingByID(deps.Ctx, c.FilingID)
	if xbrlfacts.ErrorCode(err) == xbrlfacts.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: filing %q not found. Use 'xbrlfacts facts' to see stored facts.\n", c.FilingID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xbrlfacts.ErrorMessage(err))
		return err
	}

	if err := deps.Filings.DeleteFiling(deps.Ctx, filing.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xbrlfacts.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted filing %s (%s, %d facts)\n", filing.ID, filing.DocID, filing.FactCount)
	return nil
}
