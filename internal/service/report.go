package service

import (
	"context"
	"time"

	"BarInventory/internal/repository"

	"github.com/sirupsen/logrus"
)

// Page is a paginated list response.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func newPage[T any](items []T, total int64, page, pageSize int) *Page[T] {
	page, pageSize = repository.NormalizePage(page, pageSize)
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
}

// ReportService serves the read side of the store.
type ReportService struct {
	repo   repository.ReportRepository
	logger *logrus.Logger
}

func NewReportService(repo repository.ReportRepository, logger *logrus.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

func (s *ReportService) Inventory(ctx context.Context, filter repository.ReportFilter, page, pageSize int) (any, error) {
	rows, total, err := s.repo.ListInventory(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(rows, total, page, pageSize), nil
}

func (s *ReportService) Transactions(ctx context.Context, filter repository.ReportFilter, page, pageSize int) (any, error) {
	rows, total, err := s.repo.ListTransactions(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(rows, total, page, pageSize), nil
}

func (s *ReportService) Catalog(ctx context.Context, filter repository.ReportFilter, page, pageSize int) (any, error) {
	rows, total, err := s.repo.ListCatalog(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(rows, total, page, pageSize), nil
}

// Remediations lists the punch list of filter.RunID, or of the latest run when it is empty.
func (s *ReportService) Remediations(ctx context.Context, filter repository.ReportFilter, page, pageSize int) (any, error) {
	if filter.RunID == "" {
		runID, err := s.repo.LatestRunID(ctx)
		if err != nil {
			return nil, err
		}
		if runID == "" {
			return newPage[any](nil, 0, page, pageSize), nil
		}
		filter.RunID = runID
	}
	rows, total, err := s.repo.ListRemediations(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(rows, total, page, pageSize), nil
}

func (s *ReportService) GlassDemand(ctx context.Context, filter repository.ReportFilter) ([]*repository.GlassDemand, error) {
	rows, err := s.repo.GlassDemand(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*repository.GlassDemand{}
	}
	return rows, nil
}

func (s *ReportService) DailySales(ctx context.Context, filter repository.ReportFilter, from, to time.Time) ([]*repository.DailySales, error) {
	rows, err := s.repo.DailySales(ctx, filter, from, to)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*repository.DailySales{}
	}
	return rows, nil
}
