package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"socialdash/internal/apperrors"
	"socialdash/internal/models"
	"socialdash/internal/platform"
)

func floatPtr(v float64) *float64 { return &v }

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func newAnalyticsFixture(insights *MockInsightRepository) *analyticsService {
	svc := NewAnalyticsService(insights, registryWith(map[string]*fakePublisher{platform.Facebook: {}})).(*analyticsService)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC) }
	return svc
}

func TestAnalyticsService_Aggregate(t *testing.T) {
	entities := []models.PlatformEntity{
		{UserID: "user-1", Platform: platform.Facebook, EntityID: "page-1"},
		{UserID: "user-1", Platform: platform.Facebook, EntityID: "page-2"},
	}
	sources := []string{"page_fans", "page_post_engagements"}

	t.Run("Без сущностей результат пустой", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", "").Return([]models.PlatformEntity{}, nil)

		rows, err := newAnalyticsFixture(insights).Aggregate(context.Background(), "user-1", DashboardMetrics, 7)

		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
		insights.AssertNotCalled(t, "ListSamples", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Значения сущностей суммируются по дате", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", "").Return(entities, nil)
		insights.On("ListSamples", mock.Anything, "user-1", []string{"page-1", "page-2"}, sources, day(4), day(10)).
			Return([]models.InsightSample{
				{EntityID: "page-1", MetricName: "page_fans", MetricValue: floatPtr(10), InsightDate: day(5)},
				{EntityID: "page-2", MetricName: "page_fans", MetricValue: floatPtr(5), InsightDate: day(5)},
				{EntityID: "page-1", MetricName: "page_post_engagements", MetricValue: floatPtr(3), InsightDate: day(5)},
			}, nil)

		rows, err := newAnalyticsFixture(insights).Aggregate(context.Background(), "user-1", DashboardMetrics, 7)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, day(5), rows[0].Date)
		assert.Equal(t, 15.0, rows[0].Values["followers"])
		assert.Equal(t, 3.0, rows[0].Values["engagement"])
		insights.AssertExpectations(t)
	})

	t.Run("Нет значения метрики за дату", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", "").Return(entities, nil)
		insights.On("ListSamples", mock.Anything, "user-1", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]models.InsightSample{
				{EntityID: "page-1", MetricName: "page_post_engagements", MetricValue: floatPtr(3), InsightDate: day(9)},
				{EntityID: "page-1", MetricName: "page_fans", MetricValue: floatPtr(100), InsightDate: day(8)},
			}, nil)

		rows, err := newAnalyticsFixture(insights).Aggregate(context.Background(), "user-1", DashboardMetrics, 7)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, day(8), rows[0].Date)
		assert.Equal(t, 100.0, rows[0].Values["followers"])
		assert.Equal(t, 0.0, rows[0].Values["engagement"])
		assert.Equal(t, day(9), rows[1].Date)
		assert.Equal(t, 0.0, rows[1].Values["followers"])
		assert.Equal(t, 3.0, rows[1].Values["engagement"])
	})

	t.Run("NULL считается нулем", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", "").Return(entities, nil)
		insights.On("ListSamples", mock.Anything, "user-1", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]models.InsightSample{
				{EntityID: "page-1", MetricName: "page_fans", MetricValue: floatPtr(40), InsightDate: day(6)},
				{EntityID: "page-1", MetricName: "page_fans", MetricValue: nil, InsightDate: day(7)},
			}, nil)

		rows, err := newAnalyticsFixture(insights).Aggregate(context.Background(), "user-1", DashboardMetrics, 7)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 0.0, rows[1].Values["followers"])
		assert.Equal(t, 0.0, rows[1].Values["engagement"])
	})

	t.Run("Окно ограничено сверху", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", "").Return(entities, nil)
		from := day(10).AddDate(0, 0, -(MaxAnalyticsDays - 1))
		insights.On("ListSamples", mock.Anything, "user-1", mock.Anything, mock.Anything, from, day(10)).
			Return([]models.InsightSample{}, nil)

		rows, err := newAnalyticsFixture(insights).Aggregate(context.Background(), "user-1", DashboardMetrics, 10000)

		require.NoError(t, err)
		assert.Empty(t, rows)
		insights.AssertExpectations(t)
	})

	t.Run("Ошибка хранилища", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", "").Return(nil, apperrors.Storage("ошибка", assert.AnError))

		_, err := newAnalyticsFixture(insights).Aggregate(context.Background(), "user-1", DashboardMetrics, 7)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestAnalyticsService_StoredInsights(t *testing.T) {
	t.Run("Сырые значения по платформе", func(t *testing.T) {
		insights := new(MockInsightRepository)
		insights.On("ListEntities", mock.Anything, "user-1", platform.Facebook).
			Return([]models.PlatformEntity{{EntityID: "page-1"}}, nil)
		samples := []models.InsightSample{{EntityID: "page-1", MetricName: "page_fans", MetricValue: floatPtr(1), InsightDate: day(9)}}
		insights.On("ListSamples", mock.Anything, "user-1", []string{"page-1"}, []string{"page_fans"}, day(8), day(10)).
			Return(samples, nil)

		got, err := newAnalyticsFixture(insights).StoredInsights(context.Background(), "user-1", platform.Facebook, "page_fans", 3)

		require.NoError(t, err)
		assert.Equal(t, samples, got)
	})

	t.Run("Без метрики", func(t *testing.T) {
		_, err := newAnalyticsFixture(new(MockInsightRepository)).StoredInsights(context.Background(), "user-1", platform.Facebook, "", 7)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Неизвестная платформа", func(t *testing.T) {
		_, err := newAnalyticsFixture(new(MockInsightRepository)).StoredInsights(context.Background(), "user-1", "myspace", "page_fans", 7)
		assert.ErrorIs(t, err, apperrors.ErrUnknownPlatform)
	})
}

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "По умолчанию", in: 0, want: DefaultAnalyticsDays},
		{name: "Отрицательное", in: -3, want: DefaultAnalyticsDays},
		{name: "Как есть", in: 30, want: 30},
		{name: "Верхняя граница", in: 1000, want: MaxAnalyticsDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDays(tt.in))
		})
	}
}
