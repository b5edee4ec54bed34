package service

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"
	"socialdash/internal/apperrors"
	"socialdash/internal/models"
	"socialdash/internal/platform"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	if args.Error(0) == nil {
		user.UserID = "generated-user-id"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Upsert(ctx context.Context, userID, platform, accessToken string, refreshToken *string) error {
	args := m.Called(ctx, userID, platform, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockCredentialRepository) Get(ctx context.Context, userID, platform string) (*models.Credential, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func (m *MockCredentialRepository) SetConnected(ctx context.Context, userID, platform string, connected bool) error {
	args := m.Called(ctx, userID, platform, connected)
	return args.Error(0)
}

func (m *MockCredentialRepository) ListConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Connection), args.Error(1)
}

type MockScheduledPostRepository struct {
	mock.Mock
}

func (m *MockScheduledPostRepository) Create(ctx context.Context, post *models.ScheduledPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockScheduledPostRepository) GetByID(ctx context.Context, userID, postID string) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// copy so the service can't mutate the fixture between calls
	post := *args.Get(0).(*models.ScheduledPost)
	return &post, args.Error(1)
}

func (m *MockScheduledPostRepository) ListByUser(ctx context.Context, userID string) ([]*models.ScheduledPost, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledPostRepository) MarkPublished(ctx context.Context, userID, postID, externalID string, publishedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, postID, externalID, publishedAt)
	return args.Bool(0), args.Error(1)
}

type MockInsightRepository struct {
	mock.Mock
}

func (m *MockInsightRepository) ListEntities(ctx context.Context, userID, platform string) ([]models.PlatformEntity, error) {
	args := m.Called(ctx, userID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlatformEntity), args.Error(1)
}

func (m *MockInsightRepository) ListSamples(ctx context.Context, userID string, entityIDs, metricNames []string, from, to time.Time) ([]models.InsightSample, error) {
	args := m.Called(ctx, userID, entityIDs, metricNames, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InsightSample), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userID string) ([]*models.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

type MockTablesRepository struct {
	mock.Mock
}

func (m *MockTablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadMedia(ctx context.Context, userID string, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, userID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

type MockRedisLocker struct {
	mock.Mock
}

func (m *MockRedisLocker) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisLocker) DeleteIfEqual(ctx context.Context, key, value string) (bool, error) {
	args := m.Called(ctx, key, value)
	return args.Bool(0), args.Error(1)
}

// fakePublisher counts external publish calls.
type fakePublisher struct {
	calls  int32
	id     string
	err    error
	onCall func(ctx context.Context)

	mu   sync.Mutex
	last platform.Content
}

func (f *fakePublisher) Publish(ctx context.Context, client *http.Client, content platform.Content) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.last = content
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(ctx)
	}
	return f.id, f.err
}

func (f *fakePublisher) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeRegistry map[string]*platform.Platform

func (r fakeRegistry) Get(name string) (*platform.Platform, error) {
	p, ok := r[name]
	if !ok {
		return nil, apperrors.ErrUnknownPlatform
	}
	return p, nil
}

func registryWith(publishers map[string]*fakePublisher) fakeRegistry {
	r := fakeRegistry{}
	for name, pub := range publishers {
		r[name] = &platform.Platform{
			Name:          name,
			Publisher:     pub,
			RequiresMedia: name == platform.Instagram,
		}
	}
	return r
}

type fakeSessions map[string]string

func (f fakeSessions) Verify(token string) (string, error) {
	userID, ok := f[token]
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// memoryPosts is an in-memory ScheduledPostRepository with the same guarded transition as SQL.
type memoryPosts struct {
	mu    sync.Mutex
	posts map[string]models.ScheduledPost
	seq   int
}

func newMemoryPosts() *memoryPosts {
	return &memoryPosts{posts: make(map[string]models.ScheduledPost)}
}

func (m *memoryPosts) Create(ctx context.Context, post *models.ScheduledPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	post.ID = "post-" + string(rune('0'+m.seq))
	post.Status = models.StatusPending
	post.CreatedAt = time.Now()
	m.posts[post.ID] = *post
	return nil
}

func (m *memoryPosts) GetByID(ctx context.Context, userID, postID string) (*models.ScheduledPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok || post.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &post, nil
}

func (m *memoryPosts) ListByUser(ctx context.Context, userID string) ([]*models.ScheduledPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.ScheduledPost, 0)
	for _, p := range m.posts {
		if p.UserID == userID {
			post := p
			out = append(out, &post)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ScheduledTime.Before(out[j-1].ScheduledTime); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (m *memoryPosts) MarkPublished(ctx context.Context, userID, postID, externalID string, publishedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok || post.UserID != userID || post.Status != models.StatusPending {
		return false, nil
	}
	post.Status = models.StatusPublished
	post.ExternalID = &externalID
	post.PublishedAt = &publishedAt
	m.posts[postID] = post
	return true, nil
}
