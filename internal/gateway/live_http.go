package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/mangalrohit/podcastgen/internal/fetch"
)

// LiveHTTP is the live web-fetch gateway. It fetches over plain HTTP and,
// when enabled, falls back to a headless browser render for pages whose
// extracted text is too thin to have been server-rendered.
type LiveHTTP struct {
	options    *fetch.Options
	useBrowser bool
}

// NewLiveHTTP creates a live HTTP gateway.
func NewLiveHTTP(useBrowser bool) *LiveHTTP {
	return &LiveHTTP{
		options:    fetch.DefaultOptions(),
		useBrowser: useBrowser,
	}
}

// Fetch retrieves a URL and extracts its main text.
func (l *LiveHTTP) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	result, err := fetch.URL(ctx, url, l.options)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && result != nil {
			// Non-2xx with a body: report the status, let the stage
			// decide whether the page is still usable.
			return &FetchResult{URL: url, StatusCode: result.StatusCode, HTML: result.HTML}, nil
		}
		return nil, &ProviderError{Capability: "http", Message: "fetch failed", Cause: err}
	}

	text, _ := fetch.ExtractMainText(result.HTML, fetch.NewsPageSelectors())

	if l.useBrowser && fetch.ShouldUseBrowser(text) {
		if rendered, browserErr := fetch.WithBrowser(ctx, url, 30*time.Second); browserErr == nil {
			result.HTML = rendered
			text, _ = fetch.ExtractMainText(rendered, fetch.NewsPageSelectors())
		}
	}

	return &FetchResult{
		URL:        url,
		StatusCode: result.StatusCode,
		HTML:       result.HTML,
		Text:       text,
		Title:      fetch.ExtractTitle(result.HTML),
	}, nil
}
