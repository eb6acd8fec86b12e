package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"
)

// HTTPFeed reads price snapshots from a JSON endpoint. The endpoint is
// expected to serve a document of the form:
//
//	{"price": "200012345678", "decimals": 8, "version": 7}
//
// price is a decimal integer string at the given scale. Every call hits
// the endpoint again; stale data is the endpoint's problem to avoid.
type HTTPFeed struct {
	endpoint string
	client   *http.Client
}

// NewHTTPFeed creates a live feed client for the given endpoint.
func NewHTTPFeed(endpoint string, timeout time.Duration) *HTTPFeed {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPFeed{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type quoteDocument struct {
	Price    string `json:"price"`
	Decimals uint8  `json:"decimals"`
	Version  uint64 `json:"version"`
}

func (f *HTTPFeed) fetch(ctx context.Context) (quoteDocument, error) {
	var doc quoteDocument

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return doc, fmt.Errorf("%w: endpoint returned %s", ErrUnavailable, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return doc, fmt.Errorf("%w: malformed quote: %v", ErrUnavailable, err)
	}
	return doc, nil
}

// LatestPrice fetches a fresh snapshot from the endpoint.
func (f *HTTPFeed) LatestPrice(ctx context.Context) (Price, error) {
	doc, err := f.fetch(ctx)
	if err != nil {
		return Price{}, err
	}

	value, ok := new(big.Int).SetString(doc.Price, 10)
	if !ok {
		return Price{}, fmt.Errorf("%w: malformed price %q", ErrUnavailable, doc.Price)
	}

	p := Price{Value: value, Decimals: doc.Decimals}
	if err := p.Validate(); err != nil {
		return Price{}, err
	}
	return p, nil
}

// Version fetches the feed's reported version.
func (f *HTTPFeed) Version(ctx context.Context) (uint64, error) {
	doc, err := f.fetch(ctx)
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

var _ PriceFeed = (*HTTPFeed)(nil)
