// Package coingecko is a minimal client for the CoinGecko simple price API.
package coingecko

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

const maxBodyBytes = 1 << 20

var (
	// ErrNotFound is returned when the response has no entry for the coin id.
	ErrNotFound = errors.New("coin not found")
	// ErrMalformed is returned when the body is not a JSON object.
	ErrMalformed = errors.New("malformed price response")
)

// Quote is a price for one coin in one currency.
//
// Price is the raw JSON number text, exactly as the index returned it.
type Quote struct {
	ID       string
	Currency string
	Price    string
}

// Client queries the price index. It holds no state beyond the HTTP client.
type Client struct {
	baseURL string
	http    *http.Client
	timeout *time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout. It applies to the
// HTTP client from WithHTTPClient too, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{baseURL: DefaultBaseURL, http: &http.Client{}}
	for _, o := range opts {
		o(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c
}

// SimplePrice fetches the price of the coin id in vsCurrency.
//
// The id is sent as given; callers normalize it. The status code is not
// checked: any body that is a JSON object is inspected for the coin key.
func (c *Client) SimplePrice(ctx context.Context, id, vsCurrency string) (Quote, error) {
	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", vsCurrency)
	endpoint := c.baseURL + "/simple/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("get price: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Quote{}, fmt.Errorf("read price: %w", err)
	}
	return parseSimplePrice(body, id, vsCurrency, resp.StatusCode)
}

func parseSimplePrice(body []byte, id, vsCurrency string, status int) (Quote, error) {
	if !gjson.ValidBytes(body) {
		return Quote{}, fmt.Errorf("%w (HTTP %d)", ErrMalformed, status)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Quote{}, fmt.Errorf("%w (HTTP %d)", ErrMalformed, status)
	}

	coin := doc.Get(gjson.Escape(id))
	if !coin.Exists() {
		return Quote{}, ErrNotFound
	}
	price := coin.Get(gjson.Escape(vsCurrency))
	if !price.Exists() {
		return Quote{}, fmt.Errorf("no %q price for %q", vsCurrency, id)
	}

	raw := price.Raw
	if price.Type == gjson.String {
		raw = price.String()
	}
	return Quote{ID: id, Currency: vsCurrency, Price: raw}, nil
}
