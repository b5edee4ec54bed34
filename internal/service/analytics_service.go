package service

import (
	"context"
	"sort"
	"time"

	"socialdash/internal/apperrors"
	"socialdash/internal/models"
	"socialdash/internal/repository"
)

const (
	DefaultAnalyticsDays = 7
	MaxAnalyticsDays     = 365
)

// MetricSpec maps a stored metric to an output column.
type MetricSpec struct {
	Key    string
	Source string
}

// DashboardMetrics is the metric set served to the dashboard.
var DashboardMetrics = []MetricSpec{
	{Key: "followers", Source: "page_fans"},
	{Key: "engagement", Source: "page_post_engagements"},
}

type AnalyticsService interface {
	Aggregate(ctx context.Context, userID string, metrics []MetricSpec, days int) ([]models.AnalyticsRow, error)
	StoredInsights(ctx context.Context, userID, platform, metric string, days int) ([]models.InsightSample, error)
}

type analyticsService struct {
	insights  repository.InsightRepository
	platforms PlatformRegistry
	now       func() time.Time
}

func NewAnalyticsService(insights repository.InsightRepository, platforms PlatformRegistry) AnalyticsService {
	return &analyticsService{
		insights:  insights,
		platforms: platforms,
		now:       time.Now,
	}
}

// NormalizeDays applies the default and the upper bound to a requested window.
func NormalizeDays(days int) int {
	if days <= 0 {
		return DefaultAnalyticsDays
	}
	if days > MaxAnalyticsDays {
		return MaxAnalyticsDays
	}
	return days
}

// Aggregate merges the samples of all the user's entities into one row per date
// that has samples, ascending.
func (s *analyticsService) Aggregate(ctx context.Context, userID string, metrics []MetricSpec, days int) ([]models.AnalyticsRow, error) {
	rows := make([]models.AnalyticsRow, 0)

	entities, err := s.insights.ListEntities(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 || len(metrics) == 0 {
		return rows, nil
	}

	entityIDs := make([]string, 0, len(entities))
	for _, e := range entities {
		entityIDs = append(entityIDs, e.EntityID)
	}

	sources := make([]string, 0, len(metrics))
	for _, m := range metrics {
		sources = append(sources, m.Source)
	}

	from, to := s.window(days)
	samples, err := s.insights.ListSamples(ctx, userID, entityIDs, sources, from, to)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		date time.Time
		sums map[string]float64
	}
	buckets := make(map[string]*bucket)

	for _, sample := range samples {
		key := sample.InsightDate.UTC().Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			day := sample.InsightDate.UTC()
			b = &bucket{
				date: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
				sums: make(map[string]float64),
			}
			buckets[key] = b
		}

		value := 0.0
		if sample.MetricValue != nil {
			value = *sample.MetricValue
		}
		b.sums[sample.MetricName] += value
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].date.Before(ordered[j].date) })

	// a metric without samples on a date counts as 0
	for _, b := range ordered {
		values := make(map[string]float64, len(metrics))
		for _, m := range metrics {
			values[m.Key] = b.sums[m.Source]
		}
		rows = append(rows, models.AnalyticsRow{Date: b.date, Values: values})
	}

	return rows, nil
}

// StoredInsights returns the raw samples of one metric for the user's entities on a platform.
func (s *analyticsService) StoredInsights(ctx context.Context, userID, platformName, metric string, days int) ([]models.InsightSample, error) {
	if metric == "" {
		return nil, apperrors.Validation("параметр metric обязателен")
	}
	if _, err := s.platforms.Get(platformName); err != nil {
		return nil, err
	}

	entities, err := s.insights.ListEntities(ctx, userID, platformName)
	if err != nil {
		return nil, err
	}

	entityIDs := make([]string, 0, len(entities))
	for _, e := range entities {
		entityIDs = append(entityIDs, e.EntityID)
	}

	from, to := s.window(days)
	return s.insights.ListSamples(ctx, userID, entityIDs, []string{metric}, from, to)
}

// window returns [today-days+1, today] in UTC dates.
func (s *analyticsService) window(days int) (time.Time, time.Time) {
	days = NormalizeDays(days)
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(days - 1)), today
}
