package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the catalog service that owns films and live events
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a catalog client
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTitle fetches a title by reference
func (c *Client) GetTitle(ctx context.Context, ref domain.TitleRef) (*Title, error) {
	url := fmt.Sprintf("%s/internal/titles/%s/%d", c.baseURL, ref.Kind, ref.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("catalog request for title %s failed: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrTitleNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: catalog rejected title %s", ErrInvalidResponse, ref)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var title Title
	if err := json.NewDecoder(resp.Body).Decode(&title); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	return &title, nil
}

// TitleExists reports whether the catalog knows the title
func (c *Client) TitleExists(ctx context.Context, ref domain.TitleRef) (bool, error) {
	_, err := c.GetTitle(ctx, ref)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrTitleNotFound):
		c.log.Info("title %s not found in catalog", ref)
		return false, nil
	default:
		return false, err
	}
}
