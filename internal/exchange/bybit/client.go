package bybit

import (
	"context"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
)

// marketFetcher performs one raw public market request
type marketFetcher func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Client wraps the Bybit API client for market data retrieval
type Client struct {
	httpClient  *bybit_api.Client
	fetchKline  marketFetcher
	fetchTicker marketFetcher
	retry       RetryConfig
	testnet     bool
}

// Config holds the configuration for the Bybit client. Market data is
// public, so the credentials may be empty.
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
	Retry     *RetryConfig
}

// NewClient creates a new Bybit client
func NewClient(config Config) *Client {
	baseURL := bybit_api.MAINNET
	if config.Testnet {
		baseURL = bybit_api.TESTNET
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	retry := DefaultRetryConfig()
	if config.Retry != nil {
		retry = *config.Retry
	}

	c := &Client{
		httpClient: httpClient,
		retry:      retry,
		testnet:    config.Testnet,
	}
	c.fetchKline = func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx)
	}
	c.fetchTicker = func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	}
	return c
}

// GetEnvironment returns a string describing the current environment
func (c *Client) GetEnvironment() string {
	if c.testnet {
		return "testnet"
	}
	return "mainnet"
}
