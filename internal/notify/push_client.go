package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bedmatch/backend/internal/models"
)

// PushClient talks to a OneSignal-compatible push provider over REST.
type PushClient struct {
	appID    string
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewPushClient(appID, apiKey, endpoint string) *PushClient {
	if endpoint == "" {
		endpoint = "https://onesignal.com/api/v1/notifications"
	}
	return &PushClient{
		appID:    appID,
		apiKey:   apiKey,
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type pushRequest struct {
	AppID            string            `json:"app_id"`
	IncludeExternIDs []string          `json:"include_external_user_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	Data             models.PushData   `json:"data"`
}

// Push sends one notification to all the listed users.
func (c *PushClient) Push(ctx context.Context, userIDs []string, payload models.PushPayload) error {
	body, err := json.Marshal(pushRequest{
		AppID:            c.appID,
		IncludeExternIDs: userIDs,
		Headings:         payload.Headings,
		Contents:         payload.Contents,
		Data:             payload.Data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("push provider returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}
