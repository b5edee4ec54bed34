package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"socialdash/internal/apperrors"
)

type instagramPublisher struct {
	baseURL string
}

// Publish creates a media container and then publishes it.
func (i *instagramPublisher) Publish(ctx context.Context, client *http.Client, content Content) (string, error) {
	containerID, err := i.call(ctx, client, "/me/media", url.Values{
		"image_url": {content.MediaURL},
		"caption":   {content.Text},
	})
	if err != nil {
		return "", err
	}

	return i.call(ctx, client, "/me/media_publish", url.Values{
		"creation_id": {containerID},
	})
}

func (i *instagramPublisher) call(ctx context.Context, client *http.Client, path string, form url.Values) (string, error) {
	body, status, err := postForm(ctx, client, i.baseURL+path, form)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса к instagram: %w", err)
	}
	if !isSuccess(status) {
		return "", upstreamError(Instagram, status, body)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("некорректный ответ instagram: %w", err)
	}
	if resp.ID == "" {
		return "", &apperrors.PublishError{Platform: Instagram, Message: "instagram не вернул идентификатор " + path}
	}

	return resp.ID, nil
}
