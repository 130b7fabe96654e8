package eventsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"chancebackend/internal/domain"
)

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher that GETs an external event description
// from the given URL. No retries are performed.
func NewHTTPFetcher(client *http.Client) domain.EventFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (*domain.ExternalEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrUpstream, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch external event: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: external source returned status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var data domain.ExternalEvent
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode external event: %v", domain.ErrUpstream, err)
	}
	return &data, nil
}
