package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/xbrlfacts"
	"github.com/fwojciec/xbrlfacts/bloom"
)

const dateLayout = "2006-01-02"

// maxListDays bounds a date range to one year of daily requests.
const maxListDays = 366

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	from, to, err := c.dateRange()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xbrlfacts.ErrorMessage(err))
		return err
	}

	days := int(to.Sub(from).Hours()/24) + 1

	// A document reappears on later dates whenever its metadata changes.
	seen := bloom.NewSet(uint(days*2000), 0.001)
	defer func() {
		deps.Logger.Debug("list documents done", "ids", seen.Len(), "estimated", seen.EstimatedCount())
	}()

	printed := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		docs, err := deps.Source.ListDocuments(deps.Ctx, day)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", day.Format(dateLayout), xbrlfacts.ErrorMessage(err))
			return err
		}

		for _, doc := range docs {
			if doc.DocID == "" || seen.Seen(doc.DocID) {
				continue
			}
			if !c.All && !(doc.IsAnnualReport() && doc.HasXBRL()) {
				continue
			}

			fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
				doc.DocID, day.Format(dateLayout), deref(doc.FilerName), deref(doc.DocDescription))
			printed++

			if c.Limit > 0 && printed >= c.Limit {
				return nil
			}
		}
	}

	if printed == 0 {
		fmt.Fprintln(deps.Stdout, "No matching documents found.")
	}

	return nil
}

func (c *ListCmd) dateRange() (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, c.Date)
	if err != nil {
		return time.Time{}, time.Time{}, xbrlfacts.Errorf(xbrlfacts.EINVALID, "invalid date %q, expected YYYY-MM-DD", c.Date)
	}

	to := from
	if c.To != "" {
		to, err = time.Parse(dateLayout, c.To)
		if err != nil {
			return time.Time{}, time.Time{}, xbrlfacts.Errorf(xbrlfacts.EINVALID, "invalid date %q, expected YYYY-MM-DD", c.To)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, xbrlfacts.Errorf(xbrlfacts.EINVALID, "range ends before it starts")
	}
	if int(to.Sub(from).Hours()/24)+1 > maxListDays {
		return time.Time{}, time.Time{}, xbrlfacts.Errorf(xbrlfacts.EINVALID, "range exceeds %d days", maxListDays)
	}

	return from, to, nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
