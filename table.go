package xbrlfacts

import (
	"context"
	"strconv"
	"strings"
)

// Columns are the columns of a FactTable, in order.
var Columns = []string{
	"account_item",
	"context_ref",
	"format",
	"decimals",
	"scale",
	"unit_ref",
	"amount",
}

// FactTable is an ordered table of facts.
type FactTable struct {
	facts []Fact
}

// Assemble builds a FactTable preserving the order of facts.
func Assemble(facts []Fact) *FactTable {
	t := &FactTable{facts: make([]Fact, len(facts))}
	copy(t.facts, facts)
	return t
}

// Len returns the number of rows.
func (t *FactTable) Len() int {
	return len(t.facts)
}

// Facts returns the facts in table order.
func (t *FactTable) Facts() []Fact {
	out := make([]Fact, len(t.facts))
	copy(out, t.facts)
	return out
}

// Rows returns one row per fact with a cell for every column.
// Absent values are nil cells.
func (t *FactTable) Rows() [][]*string {
	rows := make([][]*string, 0, len(t.facts))
	for _, f := range t.facts {
		rows = append(rows, f.Row())
	}
	return rows
}

// Row returns the fact's cells in column order.
func (f Fact) Row() []*string {
	var amount *string
	if f.Amount != nil {
		amount = Ptr(strconv.FormatInt(*f.Amount, 10))
	}
	return []*string{
		Ptr(f.AccountItem),
		f.ContextRef,
		f.Format,
		f.Decimals,
		Ptr(f.Scale),
		f.UnitRef,
		amount,
	}
}

// FormatTable renders up to limit rows as tab-separated text with a header
// line. Absent cells are shown as "-". A limit <= 0 renders every row.
func FormatTable(t *FactTable, limit int) string {
	var b strings.Builder
	b.WriteString(strings.Join(Columns, "\t"))

	rows := t.Rows()
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for _, row := range rows {
		b.WriteString("\n")
		for i, cell := range row {
			if i > 0 {
				b.WriteString("\t")
			}
			if cell == nil {
				b.WriteString("-")
				continue
			}
			b.WriteString(*cell)
		}
	}

	return b.String()
}

// TableWriter persists fact tables under a name, such as a document ID.
type TableWriter interface {
	WriteTable(ctx context.Context, name string, table *FactTable) error
}
