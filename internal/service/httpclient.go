package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wpmirror/wpmirror/internal/errs"
	"github.com/wpmirror/wpmirror/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: timeout}}
}

// FetchBytes performs a single GET and returns the body, bounded by maxSize
// when maxSize > 0. One attempt, no retries; transport failures and non-2xx
// statuses both come back as *errs.NetworkError.
func FetchBytes(ctx context.Context, c HTTPClient, url string, maxSize int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{URL: url, Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errs.NetworkError{URL: url, Status: resp.StatusCode}
	}

	var src io.Reader = resp.Body
	if maxSize > 0 {
		src = io.LimitReader(resp.Body, maxSize)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &errs.NetworkError{URL: url, Err: err}
	}
	return data, nil
}
