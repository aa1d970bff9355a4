package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wpmirror/wpmirror/internal/globalconfig"
	"github.com/wpmirror/wpmirror/internal/models"
	"github.com/wpmirror/wpmirror/internal/service"
)

// Client issues single-shot queries against the plugin registry. It never
// retries; callers decide whether a failed page or download is fatal.
type Client struct {
	BaseURL string
	HTTP    service.HTTPClient
}

func New(baseURL string, client service.HTTPClient) *Client {
	if baseURL == "" {
		baseURL = globalconfig.RegistryBaseURL
	}
	if client == nil {
		client = service.NewHTTPClient(globalconfig.HTTPTimeout)
	}
	return &Client{BaseURL: baseURL, HTTP: client}
}

func (c *Client) pageURL(page, perPage int) string {
	return fmt.Sprintf(
		"%s/plugins/info/1.2/?action=query_plugins&request[page]=%d&request[per_page]=%d",
		c.BaseURL, page, perPage,
	)
}

// FetchPage retrieves one page of the registry listing.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) (*models.QueryResponse, error) {
	url := c.pageURL(page, perPage)

	data, err := service.FetchBytes(ctx, c.HTTP, url, 0)
	if err != nil {
		return nil, err
	}

	var resp models.QueryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode page %d response: %w", page, err)
	}
	return &resp, nil
}

// FetchArchive downloads a plugin's zip distribution into memory, capped at
// globalconfig.MaxArchiveBytes.
func (c *Client) FetchArchive(ctx context.Context, url string) ([]byte, error) {
	return service.FetchBytes(ctx, c.HTTP, url, globalconfig.MaxArchiveBytes)
}

// Fetcher is the slice of Client the coordinator and the download manager
// depend on; tests substitute fakes.
type Fetcher interface {
	FetchPage(ctx context.Context, page, perPage int) (*models.QueryResponse, error)
	FetchArchive(ctx context.Context, url string) ([]byte, error)
}

var _ Fetcher = (*Client)(nil)
