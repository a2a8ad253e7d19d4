package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/rs/zerolog/log"
)

// browserProcess starts Chromium and hands back its control URL.
// *launcher.Launcher satisfies it.
type browserProcess interface {
	Launch() (string, error)
	Kill()
}

// RodFetcher renders the page in headless Chromium so catalogues built with
// client side scripts come back with their products.
type RodFetcher struct {
	timeout     time.Duration
	newLauncher func(ctx context.Context) browserProcess
}

func NewRodFetcher(timeout time.Duration) RodFetcher {
	return RodFetcher{
		timeout: timeout,
		newLauncher: func(ctx context.Context) browserProcess {
			return launcher.New().
				Headless(true).
				Leakless(false).
				Context(ctx)
		},
	}
}

func (f RodFetcher) Fetch(ctx context.Context, url string) (string, error) {
	l := f.newLauncher(ctx)
	// the process outlives a failed connect unless it is killed here
	defer l.Kill()

	u, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Warn().Err(err).Msg("close browser")
		}
	}()

	var html string
	err = rod.Try(func() {
		page := browser.Timeout(f.timeout).MustPage(url)
		page.MustWaitStable()
		html = page.MustHTML()
	})
	if err != nil {
		return "", fmt.Errorf("render page: %w, url: %s", err, url)
	}
	return html, nil
}
