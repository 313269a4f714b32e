package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/xbrlfacts"
)

// Compile-time interface verification.
var _ xbrlfacts.FactService = (*FactService)(nil)

// FactService implements xbrlfacts.FactService using SQLite.
type FactService struct {
	db *DB
}

// NewFactService creates a new FactService.
func NewFactService(db *DB) *FactService {
	return &FactService{db: db}
}

// CreateFacts stores every fact of the table in a single transaction,
// appending after any facts already stored for the filing.
func (s *FactService) CreateFacts(ctx context.Context, filingID string, table *xbrlfacts.FactTable) (err error) {
	if table == nil {
		return xbrlfacts.Errorf(xbrlfacts.EINVALID, "fact table required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var next int
	err = tx.QueryRowContext(ctx, `
		SELECT (SELECT COALESCE(MAX(position) + 1, 0) FROM facts WHERE filing_id = f.id)
		FROM filings f
		WHERE f.id = ?
	`, filingID).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "filing not found")
	}
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO facts (filing_id, position, account_item, context_ref, format, decimals, scale, unit_ref, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range table.Facts() {
		if _, err = stmt.ExecContext(ctx, filingID, next+i, f.AccountItem,
			nullString(f.ContextRef), nullString(f.Format), nullString(f.Decimals),
			f.Scale, nullString(f.UnitRef), nullInt64(f.Amount)); err != nil {
			return fmt.Errorf("insert fact %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// FindFacts retrieves facts matching the filter in table order.
func (s *FactService) FindFacts(ctx context.Context, filter xbrlfacts.FactFilter) ([]*xbrlfacts.Fact, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT account_item, context_ref, format, decimals, scale, unit_ref, amount FROM facts WHERE 1=1")

	if filter.FilingID != nil {
		query.WriteString(" AND filing_id = ?")
		args = append(args, *filter.FilingID)
	}
	if filter.AccountItem != nil {
		query.WriteString(" AND account_item = ?")
		args = append(args, *filter.AccountItem)
	}
	if filter.ContextRef != nil {
		query.WriteString(" AND context_ref = ?")
		args = append(args, *filter.ContextRef)
	}

	query.WriteString(" ORDER BY filing_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []*xbrlfacts.Fact
	for rows.Next() {
		var f xbrlfacts.Fact
		var contextRef, format, decimals, unitRef sql.NullString
		var amount sql.NullInt64

		if err := rows.Scan(&f.AccountItem, &contextRef, &format, &decimals, &f.Scale, &unitRef, &amount); err != nil {
			return nil, err
		}

		f.ContextRef = stringPtr(contextRef)
		f.Format = stringPtr(format)
		f.Decimals = stringPtr(decimals)
		f.UnitRef = stringPtr(unitRef)
		f.Amount = int64Ptr(amount)

		facts = append(facts, &f)
	}

	return facts, rows.Err()
}
