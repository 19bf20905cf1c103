package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"libris/internal/models"
)

const (
	// NoResponseText stands in for an empty success body.
	NoResponseText = "No response"
	// RequestErrorText is the fixed bot reply for any failed request.
	RequestErrorText = "Error: Could not get response."
)

// Client issues one query request per user turn. No retries, no timeout
// beyond the transport default, no cancellation of in-flight requests.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/openai/response",
	}
}

// Ask posts the query and returns the raw response body.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	payload, err := json.Marshal(models.UserQuery{UserQuery: query})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return string(body), nil
}

// Reply maps a request outcome to the bot turn's text: the body verbatim,
// the no-response placeholder for an empty body, or the fixed error text.
func Reply(body string, err error) string {
	if err != nil {
		return RequestErrorText
	}
	if body == "" {
		return NoResponseText
	}
	return body
}
