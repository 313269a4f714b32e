package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/xbrlfacts"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ xbrlfacts.FilingService = (*FilingService)(nil)

// FilingService implements xbrlfacts.FilingService using SQLite.
type FilingService struct {
	db *DB
}

// NewFilingService creates a new FilingService.
func NewFilingService(db *DB) *FilingService {
	return &FilingService{db: db}
}

// CreateFiling creates a new filing with a generated ID.
func (s *FilingService) CreateFiling(ctx context.Context, filing *xbrlfacts.Filing) error {
	if err := filing.Validate(); err != nil {
		return err
	}

	filing.ID = uuid.New().String()
	filing.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO filings (id, doc_id, content_hash, fact_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, filing.ID, filing.DocID, filing.ContentHash, filing.FactCount,
		filing.CreatedAt.Format(time.RFC3339))

	return err
}

// FindFilingByID retrieves a filing by ID.
func (s *FilingService) FindFilingByID(ctx context.Context, id string) (*xbrlfacts.Filing, error) {
	filing, err := scanFiling(s.db.QueryRowContext(ctx, `
		SELECT id, doc_id, content_hash, fact_count, created_at
		FROM filings
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "filing not found")
	}
	if err != nil {
		return nil, err
	}
	return filing, nil
}

// FindFilings retrieves filings matching the filter, newest first.
func (s *FilingService) FindFilings(ctx context.Context, filter xbrlfacts.FilingFilter) ([]*xbrlfacts.Filing, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, doc_id, content_hash, fact_count, created_at FROM filings WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DocID != nil {
		query.WriteString(" AND doc_id = ?")
		args = append(args, *filter.DocID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filings []*xbrlfacts.Filing
	for rows.Next() {
		filing, err := scanFiling(rows)
		if err != nil {
			return nil, err
		}
		filings = append(filings, filing)
	}

	return filings, rows.Err()
}

// DeleteFiling permanently removes a filing and its facts.
func (s *FilingService) DeleteFiling(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM filings WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return xbrlfacts.Errorf(xbrlfacts.ENOTFOUND, "filing not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFiling(row scanner) (*xbrlfacts.Filing, error) {
	var filing xbrlfacts.Filing
	var createdAt string

	if err := row.Scan(&filing.ID, &filing.DocID, &filing.ContentHash, &filing.FactCount, &createdAt); err != nil {
		return nil, err
	}

	var err error
	filing.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &filing, nil
}
