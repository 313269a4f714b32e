package mock

import (
	"context"

	"github.com/fwojciec/xbrlfacts"
)

var (
	_ xbrlfacts.FilingService = (*FilingService)(nil)
	_ xbrlfacts.FactService   = (*FactService)(nil)
)

// FilingService is a mock implementation of xbrlfacts.FilingService.
type FilingService struct {
	CreateFilingFn   func(ctx context.Context, filing *xbrlfacts.Filing) error
	FindFilingByIDFn func(ctx context.Context, id string) (*xbrlfacts.Filing, error)
	FindFilingsFn    func(ctx context.Context, filter xbrlfacts.FilingFilter) ([]*xbrlfacts.Filing, error)
	DeleteFilingFn   func(ctx context.Context, id string) error
}

func (s *FilingService) CreateFiling(ctx context.Context, filing *xbrlfacts.Filing) error {
	return s.CreateFilingFn(ctx, filing)
}

func (s *FilingService) FindFilingByID(ctx context.Context, id string) (*xbrlfacts.Filing, error) {
	return s.FindFilingByIDFn(ctx, id)
}

func (s *FilingService) FindFilings(ctx context.Context, filter xbrlfacts.FilingFilter) ([]*xbrlfacts.Filing, error) {
	return s.FindFilingsFn(ctx, filter)
}

func (s *FilingService) DeleteFiling(ctx context.Context, id string) error {
	return s.DeleteFilingFn(ctx, id)
}

// FactService is a mock implementation of xbrlfacts.FactService.
type FactService struct {
	CreateFactsFn func(ctx context.Context, filingID string, table *xbrlfacts.FactTable) error
	FindFactsFn   func(ctx context.Context, filter xbrlfacts.FactFilter) ([]*xbrlfacts.Fact, error)
}

func (s *FactService) CreateFacts(ctx context.Context, filingID string, table *xbrlfacts.FactTable) error {
	return s.CreateFactsFn(ctx, filingID, table)
}

func (s *FactService) FindFacts(ctx context.Context, filter xbrlfacts.FactFilter) ([]*xbrlfacts.Fact, error) {
	return s.FindFactsFn(ctx, filter)
}
