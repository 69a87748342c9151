// Package records owns the compensation-record write path: validated
// submissions and the destructive delete-all primitive for reset workflows.
package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"payscope/internal/comp/metrics"
	"payscope/internal/comp/models"
	"payscope/internal/comp/ports"
	dErrors "payscope/pkg/domain-errors"
	"payscope/pkg/platform/sentinel"
)

type Service struct {
	store   ports.RecordStore
	cache   ports.StatsCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStatsCache registers a cache to invalidate whenever the record set
// changes.
func WithStatsCache(cache ports.StatsCache) Option {
	return func(s *Service) {
		s.cache = cache
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

// Create validates and stores one compensation observation. The total is
// checked against the component sum, never recomputed, and nothing is
// persisted on a validation failure.
//
// Errors: CodeValidation for constraint violations, CodeReferential when a
// referenced company, role or location does not exist.
func (s *Service) Create(ctx context.Context, record *models.CompensationRecord) (*models.CompensationRecord, error) {
	record.ApplyDefaults()
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrForeignKey) {
			return nil, dErrors.New(dErrors.CodeReferential, "record references a non-existent company, role or location")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create record")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.metrics != nil {
		s.metrics.IncrementRecordsCreated()
	}
	s.logger.InfoContext(ctx, "record created",
		"record_id", record.ID,
		"company_id", record.CompanyID,
		"total_compensation", record.TotalCompensation,
	)
	return record, nil
}

// DeleteAll removes every stored record. Destructive; callers are expected
// to reseed afterwards.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete records")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.logger.InfoContext(ctx, "all records deleted", "deleted", deleted)
	return deleted, nil
}
