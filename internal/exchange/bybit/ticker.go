package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// GetTicker fetches the live 24h ticker of a symbol
func (c *Client) GetTicker(ctx context.Context, category, symbol string) (*types.Ticker, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if category == "" {
		category = "spot"
	}

	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}

	var ticker *types.Ticker
	err := c.RetryWithConfig(ctx, func() error {
		result, err := c.fetchTicker(ctx, params)
		if err != nil {
			return err
		}
		ticker, err = parseTickerResponse(result, symbol)
		return err
	}, c.retry)
	if err != nil {
		return nil, marketError("ticker", err)
	}
	return ticker, nil
}

func parseTickerResponse(response interface{}, symbol string) (*types.Ticker, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type %T", response)
	}
	if err := ParseAPIError(serverResp.RetCode, serverResp.RetMsg); err != nil {
		return nil, err
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var tickerResult struct {
		List []struct {
			Symbol       string `json:"symbol"`
			LastPrice    string `json:"lastPrice"`
			Bid1Price    string `json:"bid1Price"`
			Ask1Price    string `json:"ask1Price"`
			HighPrice24h string `json:"highPrice24h"`
			LowPrice24h  string `json:"lowPrice24h"`
			Volume24h    string `json:"volume24h"`
			Price24hPcnt string `json:"price24hPcnt"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &tickerResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticker result: %w", err)
	}

	for _, item := range tickerResult.List {
		if item.Symbol != symbol {
			continue
		}
		price, err := strconv.ParseFloat(item.LastPrice, 64)
		if err != nil {
			return nil, fmt.Errorf("ticker last price: %w", err)
		}
		return &types.Ticker{
			Symbol:    item.Symbol,
			Price:     price,
			Bid:       optionalFloat(item.Bid1Price),
			Ask:       optionalFloat(item.Ask1Price),
			High24h:   optionalFloat(item.HighPrice24h),
			Low24h:    optionalFloat(item.LowPrice24h),
			Volume:    optionalFloat(item.Volume24h),
			Change24h: optionalFloat(item.Price24hPcnt),
			Timestamp: time.Now().UTC(),
		}, nil
	}
	return nil, NewBybitError(ErrCodeSymbolNotFound, "ticker not found", symbol)
}

// optionalFloat parses a field Bybit may leave empty; empty or malformed is 0
func optionalFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// marketError wraps a failed market request, calling out rejected credentials
func marketError(what string, err error) error {
	if IsAuthenticationError(err) {
		return fmt.Errorf("failed to get %s: credentials rejected: %w", what, err)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
