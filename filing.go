package xbrlfacts

import (
	"context"
	"time"
)

// Filing is an ingested archive whose facts have been stored.
type Filing struct {
	ID          string    `json:"id"`
	DocID       string    `json:"docId"`
	ContentHash string    `json:"contentHash"`
	FactCount   int       `json:"factCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the filing contains invalid fields.
func (f *Filing) Validate() error {
	if f.DocID == "" {
		return Errorf(EINVALID, "filing document ID required")
	}
	if f.FactCount < 0 {
		return Errorf(EINVALID, "filing fact count must be non-negative")
	}
	return nil
}

// FilingService represents a service for managing filings.
type FilingService interface {
	// CreateFiling creates a new filing.
	CreateFiling(ctx context.Context, filing *Filing) error

	// FindFilingByID retrieves a filing by ID.
	// Returns ENOTFOUND if filing does not exist.
	FindFilingByID(ctx context.Context, id string) (*Filing, error)

	// FindFilings retrieves filings matching the filter.
	FindFilings(ctx context.Context, filter FilingFilter) ([]*Filing, error)

	// DeleteFiling permanently removes a filing and all associated facts.
	// Returns ENOTFOUND if filing does not exist.
	DeleteFiling(ctx context.Context, id string) error
}

// FilingFilter represents a filter for FindFilings.
type FilingFilter struct {
	ID          *string `json:"id"`
	DocID       *string `json:"docId"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// FactService represents a service for storing decoded facts.
type FactService interface {
	// CreateFacts stores the rows of a table for a filing, keeping table order.
	// Returns ENOTFOUND if the filing does not exist.
	CreateFacts(ctx context.Context, filingID string, table *FactTable) error

	// FindFacts retrieves facts matching the filter in table order.
	FindFacts(ctx context.Context, filter FactFilter) ([]*Fact, error)
}

// FactFilter represents a filter for FindFacts.
type FactFilter struct {
	FilingID    *string `json:"filingId"`
	AccountItem *string `json:"accountItem"`
	ContextRef  *string `json:"contextRef"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
