// Package stats is the aggregation engine: summary statistics over filtered
// populations of total compensation values, with an optional read-through
// cache in front of the store.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"payscope/internal/comp/metrics"
	"payscope/internal/comp/models"
	"payscope/internal/comp/ports"
	dErrors "payscope/pkg/domain-errors"
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

// WithStatsCache enables read-through caching of aggregation results. The
// cache is best-effort: failures degrade to store reads.
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

// Aggregate computes count, min, max, mean and median of total compensation
// over the records matching the filter. The whole matching population is
// consumed regardless of any pagination the caller uses elsewhere.
//
// Errors: CodeNoData when the filter matches no records.
func (s *Service) Aggregate(ctx context.Context, filter models.Filter) (*models.SummaryStats, error) {
	key := cacheKey(filter)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if s.metrics != nil {
				s.metrics.IncrementStatsCacheHits()
			}
			return cached, nil
		}
	}

	totals, err := s.store.Totals(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load totals")
	}
	if len(totals) == 0 {
		return nil, dErrors.New(dErrors.CodeNoData, "no records match the given filters")
	}

	result := summarize(totals)

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	if s.metrics != nil {
		s.metrics.IncrementAggregations()
	}
	s.logger.DebugContext(ctx, "aggregation computed", "count", result.Count)
	return result, nil
}

// MeanByCity returns the average total compensation for records in a city.
//
// Errors: CodeInvalidQuery for an empty city, CodeNoData when nothing
// matches.
func (s *Service) MeanByCity(ctx context.Context, city string) (float64, int, error) {
	if city == "" {
		return 0, 0, dErrors.New(dErrors.CodeInvalidQuery, "city cannot be empty")
	}
	agg, err := s.Aggregate(ctx, models.Filter{City: city})
	if err != nil {
		return 0, 0, err
	}
	return agg.Mean, agg.Count, nil
}

// summarize computes the stats over a non-empty population. The median of an
// even-sized population is the upper of the two middle values, not their
// average.
func summarize(totals []float64) *models.SummaryStats {
	sorted := make([]float64, len(totals))
	copy(sorted, totals)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	n := len(sorted)
	return &models.SummaryStats{
		Count:  n,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   sum / float64(n),
		Median: sorted[n/2],
	}
}

// cacheKey derives a stable cache key from the filter's set predicates.
func cacheKey(filter models.Filter) string {
	var b strings.Builder
	b.WriteString("stats")
	writePart := func(name, value string) {
		if value != "" {
			b.WriteString("|")
			b.WriteString(name)
			b.WriteString("=")
			b.WriteString(strings.ToLower(value))
		}
	}
	writePart("company", filter.Company)
	writePart("city", filter.City)
	writePart("role", filter.Role)
	if filter.MinTotalComp != nil {
		writePart("min_total", strconv.FormatFloat(*filter.MinTotalComp, 'f', -1, 64))
	}
	if filter.MaxTotalComp != nil {
		writePart("max_total", strconv.FormatFloat(*filter.MaxTotalComp, 'f', -1, 64))
	}
	if filter.MinExperience != nil {
		writePart("min_exp", strconv.Itoa(*filter.MinExperience))
	}
	if filter.MaxExperience != nil {
		writePart("max_exp", strconv.Itoa(*filter.MaxExperience))
	}
	writePart("employment_type", filter.EmploymentType)
	if filter.IsRemote != nil {
		writePart("is_remote", strconv.FormatBool(*filter.IsRemote))
	}
	return b.String()
}
