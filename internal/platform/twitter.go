package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"socialdash/internal/apperrors"
)

type twitterPublisher struct {
	baseURL string
}

// Publish creates a tweet. Media is linked by URL in the text.
func (t *twitterPublisher) Publish(ctx context.Context, client *http.Client, content Content) (string, error) {
	text := content.Text
	if content.MediaURL != "" {
		text = text + " " + content.MediaURL
	}

	body, status, err := postJSON(ctx, client, t.baseURL+"/2/tweets", map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к twitter: %w", err)
	}
	if !isSuccess(status) {
		return "", upstreamError(Twitter, status, body)
	}

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("некорректный ответ twitter: %w", err)
	}
	if resp.Data.ID == "" {
		return "", &apperrors.PublishError{Platform: Twitter, Message: "twitter не вернул идентификатор твита"}
	}

	return resp.Data.ID, nil
}
