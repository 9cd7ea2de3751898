package bybit

import (
	"context"

	"github.com/olaskid2005/SignalBot/pkg/types"
)

// KlineProvider serves Bybit klines as a bar series. The source passed to
// LoadData is the symbol; an empty source falls back to the configured one.
type KlineProvider struct {
	client *Client
	params KlineParams
}

// NewKlineProvider creates a provider fetching with the given defaults
func NewKlineProvider(client *Client, params KlineParams) *KlineProvider {
	return &KlineProvider{client: client, params: params}
}

// GetName returns the name of the data provider
func (p *KlineProvider) GetName() string {
	return "Bybit Provider"
}

// LoadData fetches the most recent klines for source
func (p *KlineProvider) LoadData(ctx context.Context, source string) ([]types.OHLCV, error) {
	params := p.params
	if source != "" {
		params.Symbol = source
	}
	klines, err := p.client.GetKlines(ctx, params)
	if err != nil {
		return nil, err
	}
	bars := make([]types.OHLCV, len(klines))
	for i, k := range klines {
		bars[i] = k.ToOHLCV()
	}
	return bars, nil
}
