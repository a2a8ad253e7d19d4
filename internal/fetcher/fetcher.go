// Package fetcher downloads supplier catalogue pages for the catalogue import.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"winespace/internal/config"
)

// Fetcher returns the HTML of the page at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// New picks the driver named in the scraper config.
func New(cnf config.Scraper) (Fetcher, error) {
	timeout := cnf.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch cnf.Driver {
	case "", "http":
		return NewHTTPFetcher(timeout), nil
	case "rod":
		return NewRodFetcher(timeout), nil
	default:
		return nil, fmt.Errorf("unknown scraper driver: %s", cnf.Driver)
	}
}
