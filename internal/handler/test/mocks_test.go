package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"socialdash/internal/models"
	"socialdash/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockLinkingService struct {
	mock.Mock
}

func (m *MockLinkingService) BeginLogin(ctx context.Context, platform, bearer string) (string, error) {
	args := m.Called(ctx, platform, bearer)
	return args.String(0), args.Error(1)
}

func (m *MockLinkingService) HandleCallback(ctx context.Context, platform, code, state string) (string, error) {
	args := m.Called(ctx, platform, code, state)
	return args.String(0), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) List(ctx context.Context, userID string) ([]models.Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Connection), args.Error(1)
}

func (m *MockAccountService) Connect(ctx context.Context, userID, platform string) error {
	args := m.Called(ctx, userID, platform)
	return args.Error(0)
}

func (m *MockAccountService) Disconnect(ctx context.Context, userID, platform string) error {
	args := m.Called(ctx, userID, platform)
	return args.Error(0)
}

func (m *MockAccountService) Entities(ctx context.Context, userID, platform string) ([]models.PlatformEntity, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlatformEntity), args.Error(1)
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Schedule(ctx context.Context, userID string, req service.ScheduleRequest) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduleService) List(ctx context.Context, userID string) ([]*models.ScheduledPost, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduleService) Publish(ctx context.Context, userID string, req service.PublishRequest) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledPost), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Aggregate(ctx context.Context, userID string, metrics []service.MetricSpec, days int) ([]models.AnalyticsRow, error) {
	args := m.Called(ctx, userID, metrics, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnalyticsRow), args.Error(1)
}

func (m *MockAnalyticsService) StoredInsights(ctx context.Context, userID, platform, metric string, days int) ([]models.InsightSample, error) {
	args := m.Called(ctx, userID, platform, metric, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InsightSample), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, userID, fileName, file, size)
	return args.String(0), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) CreatePost(ctx context.Context, userID string, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) ListPosts(ctx context.Context, userID string) ([]*models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) Check(ctx context.Context) (service.HealthStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.HealthStatus), args.Error(1)
}
