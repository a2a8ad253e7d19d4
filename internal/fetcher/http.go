package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"winespace/internal/utils"
)

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 5 << 20

type HTTPFetcher struct {
	client *http.Client
	retry  utils.RetryHandler
}

func NewHTTPFetcher(timeout time.Duration) HTTPFetcher {
	return HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		retry:  utils.NewRetryHandler(timeout*3, time.Second, 3),
	}
}

func (f HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body string
	err := f.retry.Do(func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fetch page: %w, url: %s", err, url)
	}
	return body, nil
}

func (f HTTPFetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "WineSpace catalogue import")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
