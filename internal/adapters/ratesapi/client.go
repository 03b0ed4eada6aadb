package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// latestResponse is the subset of the provider payload that is used.
type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Client fetches rate tables from an exchangerate-api style endpoint: GET {baseURL}/{BASE}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient creates a Client for baseURL, e.g. https://api.exchangerate-api.com/v4/latest.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portsrepo.ExchangeRateFetcher = (*Client)(nil)

// FetchRates returns units of each currency per one unit of base. The deadline comes from ctx.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(strings.ToUpper(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewRateFetchError(0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewRateFetchError(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, apperrors.NewRateFetchError(resp.StatusCode, nil)
	}

	var payload latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, apperrors.NewRateFetchError(resp.StatusCode, fmt.Errorf("malformed payload: %w", err))
	}
	if len(payload.Rates) == 0 {
		return nil, apperrors.NewRateFetchError(resp.StatusCode, fmt.Errorf("malformed payload: no rates"))
	}
	if payload.Base != "" && !strings.EqualFold(payload.Base, base) {
		return nil, apperrors.NewRateFetchError(resp.StatusCode, fmt.Errorf("malformed payload: base %s, requested %s", payload.Base, base))
	}

	rates := make(map[string]decimal.Decimal, len(payload.Rates))
	for code, rate := range payload.Rates {
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}
