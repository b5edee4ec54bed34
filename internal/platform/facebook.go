package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"socialdash/internal/apperrors"
)

type facebookPublisher struct {
	baseURL string
}

// Publish posts to /me/feed, or to /me/photos when the content has media.
func (f *facebookPublisher) Publish(ctx context.Context, client *http.Client, content Content) (string, error) {
	form := url.Values{}
	endpoint := f.baseURL + "/me/feed"
	if content.MediaURL != "" {
		endpoint = f.baseURL + "/me/photos"
		form.Set("url", content.MediaURL)
		form.Set("caption", content.Text)
	} else {
		form.Set("message", content.Text)
	}

	body, status, err := postForm(ctx, client, endpoint, form)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к facebook: %w", err)
	}
	if !isSuccess(status) {
		return "", upstreamError(Facebook, status, body)
	}

	var resp struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("некорректный ответ facebook: %w", err)
	}

	if resp.PostID != "" {
		return resp.PostID, nil
	}
	if resp.ID == "" {
		return "", &apperrors.PublishError{Platform: Facebook, Message: "facebook не вернул идентификатор публикации"}
	}
	return resp.ID, nil
}
