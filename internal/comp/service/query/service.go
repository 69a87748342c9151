// Package query serves read-side record searches: filtered, paginated pages
// of joined compensation views.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"payscope/internal/comp/metrics"
	"payscope/internal/comp/models"
	"payscope/internal/comp/ports"
	dErrors "payscope/pkg/domain-errors"
)

type Service struct {
	store   ports.RecordStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store ports.RecordStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("record store is required")
	}
	svc := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Result is one page of a search plus the pre-pagination match count and the
// page bounds that produced it.
type Result struct {
	Total   int                        `json:"total"`
	Limit   int                        `json:"limit"`
	Offset  int                        `json:"offset"`
	Records []*models.CompensationView `json:"records"`
}

// Search returns one page of records matching the filter, ordered by
// ascending record ID. An offset beyond the match count yields an empty page
// with the true total, not an error. An empty filter matches everything.
func (s *Service) Search(ctx context.Context, filter models.Filter, page models.Page) (*Result, error) {
	start := time.Now()

	total, views, err := s.store.Query(ctx, filter, page)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to query records")
	}

	if s.metrics != nil {
		s.metrics.ObserveQuery(time.Since(start))
	}
	s.logger.DebugContext(ctx, "records searched",
		"total", total,
		"returned", len(views),
		"limit", page.Limit,
		"offset", page.Offset,
	)
	return &Result{
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Records: views,
	}, nil
}

// ByCompany returns records whose company name contains the given fragment,
// case-insensitively.
func (s *Service) ByCompany(ctx context.Context, company string, page models.Page) (*Result, error) {
	if company == "" {
		return nil, dErrors.New(dErrors.CodeInvalidQuery, "company name cannot be empty")
	}
	return s.Search(ctx, models.Filter{Company: company}, page)
}

// ByCity returns records whose city contains the given fragment,
// case-insensitively.
func (s *Service) ByCity(ctx context.Context, city string, page models.Page) (*Result, error) {
	if city == "" {
		return nil, dErrors.New(dErrors.CodeInvalidQuery, "city cannot be empty")
	}
	return s.Search(ctx, models.Filter{City: city}, page)
}
