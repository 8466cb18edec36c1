package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

// HTTPProvider fetches feed pages from a JSON endpoint. Page N is requested
// as GET {base}?page=N and must answer with a JSON array of events.
type HTTPProvider struct {
	base   string
	client *http.Client
}

// NewHTTPProvider builds a provider for the given feed URL. A nil client
// defaults to one with a 15 second timeout.
func NewHTTPProvider(base string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPProvider{base: base, client: client}
}

// GetAll returns one page of feed events, newest first.
func (p *HTTPProvider) GetAll(ctx context.Context, page int) ([]crawler.FeedEvent, error) {
	u, err := url.Parse(p.base)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed page %d: %w", page, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed page %d returned status %d", page, resp.StatusCode)
	}

	var events []crawler.FeedEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode feed page %d: %w", page, err)
	}
	return events, nil
}
