package models

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

type User struct {
	UserID       string    `json:"id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Credential is the stored token pair of one user on one platform.
type Credential struct {
	UserID       string    `json:"-" db:"user_id"`
	Platform     string    `json:"platform" db:"platform"`
	AccessToken  string    `json:"-" db:"access_token"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	Connected    bool      `json:"connected" db:"connected"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Connection struct {
	Platform  string `json:"platform" db:"platform"`
	Connected bool   `json:"connected" db:"connected"`
}

type ScheduledPost struct {
	ID            string     `json:"id" db:"id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Platform      string     `json:"platform" db:"platform"`
	Content       string     `json:"content" db:"content"`
	ScheduledTime time.Time  `json:"scheduled_time" db:"scheduled_time"`
	MediaURL      *string    `json:"media_url" db:"media_url"`
	Status        string     `json:"status" db:"status"`
	ExternalID    *string    `json:"external_id,omitempty" db:"external_id"`
	PublishedAt   *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Post is an entry of the internal feed, never sent to a platform.
type Post struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	// Name is the author's display name, filled by feed queries.
	Name string `json:"name" db:"name"`
}

// PlatformEntity is an account-owned object on a platform, e.g. a Facebook page.
type PlatformEntity struct {
	UserID   string `json:"-" db:"user_id"`
	Platform string `json:"platform" db:"platform"`
	EntityID string `json:"entity_id" db:"entity_id"`
	Name     string `json:"name" db:"name"`
}

type InsightSample struct {
	EntityID    string    `json:"entity_id" db:"entity_id"`
	MetricName  string    `json:"metric_name" db:"metric_name"`
	MetricValue *float64  `json:"metric_value" db:"metric_value"`
	InsightDate time.Time `json:"insight_date" db:"insight_date"`
}

// AnalyticsRow is one date bucket of the aggregated series.
type AnalyticsRow struct {
	Date   time.Time
	Values map[string]float64
}
