package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chartTypes "github.com/go-echarts/go-echarts/v2/types"

	"github.com/olaskid2005/SignalBot/internal/indicators"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// RenderChart writes an HTML candlestick chart of bars with the Bollinger
// bands from snap overlaid
func RenderChart(w io.Writer, title string, bars []types.OHLCV, snap *indicators.Snapshot) error {
	if len(bars) == 0 {
		return fmt.Errorf("no bars to chart")
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1600px",
			Height: "800px",
			Theme:  chartTypes.ThemeInfographic,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: true,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
			Type:       "inside",
		}),
	)

	klineX := make([]string, 0, len(bars))
	klineY := make([]opts.KlineData, 0, len(bars))
	for _, bar := range bars {
		klineX = append(klineX, bar.Timestamp.Format("2006-01-02 15:04"))
		klineY = append(klineY, opts.KlineData{Value: []float64{bar.Open, bar.Close, bar.Low, bar.High}})
	}

	kline.SetXAxis(klineX).
		AddSeries("Price", klineY).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        "#00da3c",
				Color0:       "#ec0000",
				BorderColor:  "#008F28",
				BorderColor0: "#8A0000",
			}),
		)

	if snap != nil {
		line := charts.NewLine()
		line.SetXAxis(klineX)
		for _, band := range []struct{ key, name string }{
			{indicators.SeriesBBUpper, "Bollinger (upper)"},
			{indicators.SeriesBBMiddle, "Bollinger (middle)"},
			{indicators.SeriesBBLower, "Bollinger (lower)"},
		} {
			out, ok := snap.Series[band.key]
			if !ok {
				continue
			}
			line.AddSeries(band.name, lineData(out, len(bars)))
		}
		kline.Overlap(line)
	}

	return kline.Render(w)
}

// RenderChartFile writes the chart to an HTML file
func RenderChartFile(path, title string, bars []types.OHLCV, snap *indicators.Snapshot) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return RenderChart(f, title, bars, snap)
}

func lineData(out indicators.Output, n int) []opts.LineData {
	items := make([]opts.LineData, n)
	for i := range items {
		if v, ok := out.At(i); ok {
			items[i] = opts.LineData{Value: v}
		} else {
			items[i] = opts.LineData{SymbolSize: 0}
		}
	}
	return items
}
