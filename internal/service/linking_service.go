package service

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"socialdash/internal/apperrors"
	"socialdash/internal/metrics"
	"socialdash/internal/repository"
	"socialdash/internal/security"
)

// LinkingService runs the OAuth account-linking round trip for every platform.
type LinkingService interface {
	// BeginLogin returns the authorization URL the browser is sent to.
	BeginLogin(ctx context.Context, platform, bearer string) (string, error)
	// HandleCallback stores the credential and returns the frontend redirect target.
	HandleCallback(ctx context.Context, platform, code, state string) (string, error)
}

type linkingService struct {
	platforms   PlatformRegistry
	sessions    SessionVerifier
	state       *security.StateCodec
	credentials repository.CredentialRepository
	frontendURL string
	log         *zap.Logger
}

func NewLinkingService(
	platforms PlatformRegistry,
	sessions SessionVerifier,
	state *security.StateCodec,
	credentials repository.CredentialRepository,
	frontendURL string,
	log *zap.Logger,
) LinkingService {
	return &linkingService{
		platforms:   platforms,
		sessions:    sessions,
		state:       state,
		credentials: credentials,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
		log:         log,
	}
}

func (s *linkingService) BeginLogin(ctx context.Context, platformName, bearer string) (string, error) {
	if bearer == "" {
		return "", apperrors.ErrMissingToken
	}

	p, err := s.platforms.Get(platformName)
	if err != nil {
		return "", err
	}

	userID, err := s.sessions.Verify(bearer)
	if err != nil {
		return "", err
	}

	state, err := s.state.Encode(userID)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}

	return p.AuthorizeURL(state, s.state.Verifier(state)), nil
}

func (s *linkingService) HandleCallback(ctx context.Context, platformName, code, state string) (string, error) {
	p, err := s.platforms.Get(platformName)
	if err != nil {
		return "", err
	}

	if code == "" || state == "" {
		s.countCallback(platformName, metrics.ResultFailure)
		return "", apperrors.ErrMissingParameters
	}

	userID, err := s.state.Decode(state)
	if err != nil {
		s.countCallback(platformName, metrics.ResultFailure)
		s.log.Warn("недействительный state в callback", zap.String("platform", platformName))
		return "", err
	}

	token, err := p.Exchange(ctx, code, s.state.Verifier(state))
	if err != nil {
		s.countCallback(platformName, metrics.ResultFailure)
		s.log.Error("ошибка обмена кода авторизации",
			zap.String("platform", platformName),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	var refreshToken *string
	if token.RefreshToken != "" {
		refreshToken = &token.RefreshToken
	}

	// the platform already issued the token, a client disconnect must not drop it
	if err := s.credentials.Upsert(context.WithoutCancel(ctx), userID, platformName, token.AccessToken, refreshToken); err != nil {
		s.countCallback(platformName, metrics.ResultFailure)
		s.log.Error("ошибка сохранения учетных данных",
			zap.String("platform", platformName),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	s.countCallback(platformName, metrics.ResultSuccess)
	s.log.Info("аккаунт платформы подключен",
		zap.String("platform", platformName),
		zap.String("user_id", userID),
	)

	return s.frontendURL + "/accounts?connected=" + url.QueryEscape(platformName), nil
}

func (s *linkingService) countCallback(platformName, result string) {
	metrics.OAuthCallbacksTotal.WithLabelValues(platformName, result).Inc()
}
