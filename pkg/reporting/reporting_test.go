package reporting

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/internal/risk"
	"github.com/olaskid2005/SignalBot/internal/signal"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

func testBars(n int) []types.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.OHLCV, n)
	for i := range bars {
		base := 100 + 5*math.Sin(float64(i)/6) + float64(i)*0.1
		bars[i] = types.OHLCV{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      base - 0.5,
			High:      base + 1,
			Low:       base - 1,
			Close:     base,
			Volume:    1000 + float64(i),
		}
	}
	return bars
}

func testSnapshot(t *testing.T, bars []types.OHLCV) *indicators.Snapshot {
	t.Helper()
	suite, err := indicators.NewSuite(indicators.DefaultIndicatorConfig())
	require.NoError(t, err)
	snap, err := suite.Compute(bars, 2.0)
	require.NoError(t, err)
	return snap
}

func buyProposal() *risk.TradeProposal {
	return &risk.TradeProposal{
		Decision:        types.DecisionBuy,
		EntryPrice:      50000,
		PositionSize:    1,
		StopLossPrice:   49900,
		TakeProfitPrice: 50200,
		RiskRewardRatio: 2,
		RiskAmount:      100,
	}
}

func TestConsolePrintProposal(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).PrintProposal(buyProposal())

	out := buf.String()
	assert.Contains(t, out, "TRADE PROPOSAL")
	assert.Contains(t, out, "Buy")
	assert.Contains(t, out, "$49900.00")
	assert.Contains(t, out, "$50200.00")
	assert.Contains(t, out, "1:2.00")
}

func TestConsolePrintHoldProposal(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).PrintProposal(&risk.TradeProposal{Decision: types.DecisionHold, EntryPrice: 100})

	out := buf.String()
	assert.Contains(t, out, "Hold")
	assert.NotContains(t, out, "Stop Loss")
}

func TestConsolePrintTicker(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).PrintTicker(&types.Ticker{
		Symbol:    "BTCUSDT",
		Price:     50123.5,
		Bid:       50123.4,
		Ask:       50123.6,
		High24h:   51000,
		Low24h:    49000,
		Volume:    1234.5,
		Change24h: -0.0125,
	})

	out := buf.String()
	assert.Contains(t, out, "LIVE TICKER BTCUSDT")
	assert.Contains(t, out, "$50123.50")
	assert.Contains(t, out, "$50123.40 / $50123.60")
	assert.Contains(t, out, "-1.25%")
}

func TestConsolePrintSnapshotAndEvaluation(t *testing.T) {
	bars := testBars(80)
	snap := testSnapshot(t, bars)

	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.PrintSnapshot(snap)
	console.PrintEvaluation(&signal.Evaluation{
		Decision: types.DecisionSell,
		Path:     signal.PathRule,
		Score:    0.5,
	})
	console.PrintAdjustments([]signal.Adjustment{{Parameter: signal.RSIThresholdBuy, From: 30, To: 29}})

	out := buf.String()
	assert.Contains(t, out, indicators.SeriesRSI)
	assert.Contains(t, out, indicators.SeriesVWAP)
	// chikou needs future closes, so the last value is always undefined
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "SIGNAL EVALUATION")
	assert.Contains(t, out, "Sell")
	assert.Contains(t, out, signal.RSIThresholdBuy)
}

func TestExportExcel(t *testing.T) {
	bars := testBars(80)
	snap := testSnapshot(t, bars)
	path := filepath.Join(t.TempDir(), "out", "signals.xlsx")

	require.NoError(t, ExportExcel(path, bars, snap, buyProposal()))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	header, err := fx.GetCellValue(indicatorsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Timestamp", header)

	rsiCol, err := fx.GetCellValue(indicatorsSheet, "G1")
	require.NoError(t, err)
	assert.Equal(t, indicators.SeriesRSI, rsiCol)

	// RSI is undefined on the first bar and defined on the last
	first, err := fx.GetCellValue(indicatorsSheet, "G2")
	require.NoError(t, err)
	assert.Empty(t, first)

	last, err := fx.GetCellValue(indicatorsSheet, "G81")
	require.NoError(t, err)
	assert.NotEmpty(t, last)

	decision, err := fx.GetCellValue(proposalSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Buy", decision)
}

func TestWriteJSON(t *testing.T) {
	bars := testBars(80)
	snap := testSnapshot(t, bars)
	path := filepath.Join(t.TempDir(), "report.json")

	report := &Report{
		Symbol:     "BTCUSDT",
		Interval:   "1h",
		BarTime:    snap.Timestamp,
		Proposal:   buyProposal(),
		Indicators: LatestValues(snap),
	}
	require.NoError(t, WriteJSON(path, report))

	data, err := MarshalReport(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "BTCUSDT", decoded["symbol"])

	proposal := decoded["proposal"].(map[string]interface{})
	assert.Equal(t, "Buy", proposal["decision"])
	assert.Equal(t, 49900.0, proposal["stop_loss_price"])

	values := decoded["indicators"].(map[string]interface{})
	assert.Nil(t, values[indicators.SeriesChikou])
	assert.NotNil(t, values[indicators.SeriesRSI])
}

func TestRenderChart(t *testing.T) {
	bars := testBars(60)
	snap := testSnapshot(t, bars)

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, "BTCUSDT 1h", bars, snap))

	html := buf.String()
	assert.Contains(t, html, "Price")
	assert.Contains(t, html, "Bollinger (upper)")
	assert.Contains(t, html, "Bollinger (lower)")

	assert.Error(t, RenderChart(&buf, "empty", nil, nil))
}

func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("results", "BTCUSDT_1h"), DefaultOutputDir(" btcusdt ", "1H"))
	assert.Equal(t, filepath.Join("results", "UNKNOWN_unknown"), DefaultOutputDir("", ""))
}
