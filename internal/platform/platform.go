// Package platform describes the supported social platforms: how to link an
// account through OAuth and how to publish on the user's behalf.
package platform

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"socialdash/internal/apperrors"
)

const (
	Facebook  = "facebook"
	Instagram = "instagram"
	Twitter   = "twitter"
)

// Content is what gets published.
type Content struct {
	Text     string
	MediaURL string
}

// Publisher posts content with an HTTP client that already carries the user's token.
type Publisher interface {
	Publish(ctx context.Context, client *http.Client, content Content) (externalID string, err error)
}

type Platform struct {
	Name  string
	OAuth *oauth2.Config
	// PKCE platforms get an S256 code_challenge and verifier.
	PKCE bool
	// RequiresMedia rejects text-only posts.
	RequiresMedia bool
	Publisher     Publisher

	httpClient *http.Client
}

// AuthorizeURL builds the authorization redirect for state.
func (p *Platform) AuthorizeURL(state, verifier string) string {
	var opts []oauth2.AuthCodeOption
	if p.PKCE {
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}
	return p.OAuth.AuthCodeURL(state, opts...)
}

// Exchange converts an authorization code into a token.
// Failures are returned as *apperrors.ExchangeError with secrets removed.
func (p *Platform) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	var opts []oauth2.AuthCodeOption
	if p.PKCE {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	token, err := p.OAuth.Exchange(p.clientContext(ctx), code, opts...)
	if err != nil {
		payload := err.Error()
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && len(retrieveErr.Body) > 0 {
			payload = string(retrieveErr.Body)
		}
		return nil, &apperrors.ExchangeError{
			Platform: p.Name,
			Payload:  apperrors.Sanitize(payload, p.OAuth.ClientSecret, code, verifier),
		}
	}

	if token.AccessToken == "" {
		return nil, &apperrors.ExchangeError{Platform: p.Name, Payload: "в ответе отсутствует access_token"}
	}

	return token, nil
}

// Publish posts content using accessToken.
// Any failure is returned as *apperrors.PublishError.
func (p *Platform) Publish(ctx context.Context, accessToken string, content Content) (string, error) {
	if p.RequiresMedia && content.MediaURL == "" {
		return "", &apperrors.PublishError{Platform: p.Name, Message: p.Name + " требует медиафайл для публикации"}
	}

	client := oauth2.NewClient(p.clientContext(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	externalID, err := p.Publisher.Publish(ctx, client, content)
	if err != nil {
		var publishErr *apperrors.PublishError
		if errors.As(err, &publishErr) {
			publishErr.Message = apperrors.Sanitize(publishErr.Message, accessToken)
			return "", publishErr
		}
		return "", &apperrors.PublishError{
			Platform: p.Name,
			Message:  apperrors.Sanitize(err.Error(), accessToken),
		}
	}

	return externalID, nil
}

func (p *Platform) clientContext(ctx context.Context) context.Context {
	if p.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}
