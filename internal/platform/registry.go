package platform

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"socialdash/internal/apperrors"
	"socialdash/internal/config"
)

type descriptor struct {
	authURL       string
	tokenURL      string
	scopes        []string
	authStyle     oauth2.AuthStyle
	pkce          bool
	requiresMedia bool
	apiBaseURL    string
	newPublisher  func(baseURL string) Publisher
}

var descriptors = map[string]descriptor{
	Facebook: {
		authURL:  "https://www.facebook.com/v18.0/dialog/oauth",
		tokenURL: "https://graph.facebook.com/v18.0/oauth/access_token",
		// Facebook expects a comma separated list in a single scope value.
		scopes:       []string{"public_profile,email"},
		authStyle:    oauth2.AuthStyleInParams,
		apiBaseURL:   "https://graph.facebook.com/v18.0",
		newPublisher: func(baseURL string) Publisher { return &facebookPublisher{baseURL: baseURL} },
	},
	Instagram: {
		authURL:       "https://api.instagram.com/oauth/authorize",
		tokenURL:      "https://api.instagram.com/oauth/access_token",
		scopes:        []string{"user_profile,user_media"},
		authStyle:     oauth2.AuthStyleInParams,
		requiresMedia: true,
		apiBaseURL:    "https://graph.instagram.com",
		newPublisher:  func(baseURL string) Publisher { return &instagramPublisher{baseURL: baseURL} },
	},
	Twitter: {
		authURL:      "https://twitter.com/i/oauth2/authorize",
		tokenURL:     "https://api.twitter.com/2/oauth2/token",
		scopes:       []string{"tweet.read", "tweet.write", "users.read", "follows.read", "follows.write"},
		authStyle:    oauth2.AuthStyleInHeader,
		pkce:         true,
		apiBaseURL:   "https://api.twitter.com",
		newPublisher: func(baseURL string) Publisher { return &twitterPublisher{baseURL: baseURL} },
	},
}

// Registry holds the platforms that have a client registration.
type Registry struct {
	platforms map[string]*Platform
}

type Option func(*Platform)

// WithHTTPClient sets the client used for token exchange and publishing.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Platform) {
		p.httpClient = client
	}
}

func NewRegistry(platforms map[string]config.Platform, opts ...Option) (*Registry, error) {
	r := &Registry{platforms: make(map[string]*Platform, len(platforms))}

	for name, cfg := range platforms {
		d, ok := descriptors[name]
		if !ok {
			return nil, fmt.Errorf("неизвестная платформа в конфигурации: %s", name)
		}
		if cfg.ClientID == "" {
			continue
		}

		baseURL := d.apiBaseURL
		if cfg.APIBaseURL != "" {
			baseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")
		}

		p := &Platform{
			Name: name,
			OAuth: &oauth2.Config{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURL:  cfg.RedirectURI,
				Scopes:       d.scopes,
				Endpoint: oauth2.Endpoint{
					AuthURL:   d.authURL,
					TokenURL:  d.tokenURL,
					AuthStyle: d.authStyle,
				},
			},
			PKCE:          d.pkce,
			RequiresMedia: d.requiresMedia,
			Publisher:     d.newPublisher(baseURL),
			httpClient:    &http.Client{Timeout: 15 * time.Second},
		}
		for _, opt := range opts {
			opt(p)
		}

		r.platforms[name] = p
	}

	return r, nil
}

// Get returns apperrors.ErrUnknownPlatform for names without a registration.
func (r *Registry) Get(name string) (*Platform, error) {
	p, ok := r.platforms[name]
	if !ok {
		return nil, apperrors.ErrUnknownPlatform
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.platforms))
	for name := range r.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
