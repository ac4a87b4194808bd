package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	Token   string
	BaseURL string
	Model   string
	http    *http.Client
}

func New(token, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.replicate.com"
	}
	if model == "" {
		model = "black-forest-labs/flux-schnell"
	}
	return &Client{Token: token, BaseURL: strings.TrimRight(baseURL, "/"), Model: model, http: &http.Client{Timeout: 60 * time.Second}}
}

// Generate runs the image model synchronously and returns the first
// output URL.
func (c *Client) Generate(ctx context.Context, promptText string) (string, error) {
	if c.Token == "" {
		return "", errors.New("missing REPLICATE_API_TOKEN")
	}
	payload := map[string]any{
		"input": map[string]any{
			"prompt":          promptText,
			"width":           768,
			"height":          768,
			"negative_prompt": "ugly, deformed, disfigured, poor quality, low quality",
		},
	}
	b, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/v1/models/%s/predictions", c.BaseURL, c.Model)
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("replicate status %d", resp.StatusCode)
	}
	var out struct {
		Output json.RawMessage `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return firstOutputURL(out.Output)
}

// firstOutputURL handles both output shapes the API returns: a single
// URL string or an array of them.
func firstOutputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("no output")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}
	return "", errors.New("no output")
}
