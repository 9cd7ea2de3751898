package indicators

import (
	"time"

	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// IndicatorConfig holds the parameters of every calculator in a Suite
type IndicatorConfig struct {
	RSIPeriod           int     `yaml:"rsi_period" json:"rsi_period"`
	EMAPeriod           int     `yaml:"ema_period" json:"ema_period"`
	SMAPeriod           int     `yaml:"sma_period" json:"sma_period"`
	MACDShort           int     `yaml:"macd_short" json:"macd_short"`
	MACDLong            int     `yaml:"macd_long" json:"macd_long"`
	MACDSignal          int     `yaml:"macd_signal" json:"macd_signal"`
	BollingerPeriod     int     `yaml:"bollinger_period" json:"bollinger_period"`
	ADXPeriod           int     `yaml:"adx_period" json:"adx_period"`
	IchimokuTenkan      int     `yaml:"ichimoku_tenkan" json:"ichimoku_tenkan"`
	IchimokuKijun       int     `yaml:"ichimoku_kijun" json:"ichimoku_kijun"`
	IchimokuSenkouB     int     `yaml:"ichimoku_senkou_b" json:"ichimoku_senkou_b"`
	IchimokuLag         int     `yaml:"ichimoku_lag" json:"ichimoku_lag"`
	MFIPeriod           int     `yaml:"mfi_period" json:"mfi_period"`
	MomentumPeriod      int     `yaml:"momentum_period" json:"momentum_period"`
	StochRSIPeriod      int     `yaml:"stoch_rsi_period" json:"stoch_rsi_period"`
}

// DefaultIndicatorConfig returns the conventional parameter set
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		RSIPeriod:           14,
		EMAPeriod:           20,
		SMAPeriod:           20,
		MACDShort:           12,
		MACDLong:            26,
		MACDSignal:          9,
		BollingerPeriod:     20,
		ADXPeriod:           14,
		IchimokuTenkan:      9,
		IchimokuKijun:       26,
		IchimokuSenkouB:     52,
		IchimokuLag:         26,
		MFIPeriod:           14,
		MomentumPeriod:      10,
		StochRSIPeriod:      14,
	}
}

// Series keys of a Snapshot, in display order
const (
	SeriesRSI           = "rsi"
	SeriesEMA           = "ema"
	SeriesSMA           = "sma"
	SeriesMACD          = "macd"
	SeriesMACDSignal    = "macd_signal"
	SeriesMACDHistogram = "macd_histogram"
	SeriesBBUpper       = "bb_upper"
	SeriesBBMiddle      = "bb_middle"
	SeriesBBLower       = "bb_lower"
	SeriesADX           = "adx"
	SeriesPlusDI        = "plus_di"
	SeriesMinusDI       = "minus_di"
	SeriesTenkan        = "ichimoku_tenkan"
	SeriesKijun         = "ichimoku_kijun"
	SeriesSenkouA       = "ichimoku_senkou_a"
	SeriesSenkouB       = "ichimoku_senkou_b"
	SeriesChikou        = "ichimoku_chikou"
	SeriesMFI           = "mfi"
	SeriesMomentum      = "momentum"
	SeriesStochRSI      = "stoch_rsi"
	SeriesVWAP          = "vwap"
)

// SeriesOrder lists every series key a complete Snapshot carries
var SeriesOrder = []string{
	SeriesRSI, SeriesEMA, SeriesSMA,
	SeriesMACD, SeriesMACDSignal, SeriesMACDHistogram,
	SeriesBBUpper, SeriesBBMiddle, SeriesBBLower,
	SeriesADX, SeriesPlusDI, SeriesMinusDI,
	SeriesTenkan, SeriesKijun, SeriesSenkouA, SeriesSenkouB, SeriesChikou,
	SeriesMFI, SeriesMomentum, SeriesStochRSI, SeriesVWAP,
}

// Snapshot is every indicator series computed over one bar window.
// Indicators that failed are missing from Series and listed in Errors,
// keyed by indicator name.
type Snapshot struct {
	Bars      int
	Timestamp time.Time
	Series    map[string]Output
	Errors    map[string]error
}

// Latest returns the last value of a series and whether it is defined
func (s *Snapshot) Latest(key string) (float64, bool) {
	out, ok := s.Series[key]
	if !ok {
		return 0, false
	}
	return out.Last()
}

// Keys returns the available series keys in display order
func (s *Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Series))
	for _, k := range SeriesOrder {
		if _, ok := s.Series[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Suite computes the full indicator set for a bar window. The Bollinger
// multiplier is supplied per call so the bands always match the thresholds
// the window is evaluated with.
type Suite struct {
	rsi             *RSI
	ema             *EMA
	sma             *SMA
	macd            *MACD
	bollingerPeriod int
	adx             *ADX
	ichimoku        *Ichimoku
	mfi             *MFI
	momentum        *Momentum
	stochRSI        *StochasticRSI
	vwap            *VWAP
}

// NewSuite builds every calculator, failing on the first invalid parameter
func NewSuite(cfg IndicatorConfig) (*Suite, error) {
	s := &Suite{vwap: NewVWAP()}
	var err error
	if s.rsi, err = NewRSI(cfg.RSIPeriod); err != nil {
		return nil, err
	}
	if s.ema, err = NewEMA(cfg.EMAPeriod); err != nil {
		return nil, err
	}
	if s.sma, err = NewSMA(cfg.SMAPeriod); err != nil {
		return nil, err
	}
	if s.macd, err = NewMACD(cfg.MACDShort, cfg.MACDLong, cfg.MACDSignal); err != nil {
		return nil, err
	}
	if _, err = NewBollingerBands(cfg.BollingerPeriod, 1); err != nil {
		return nil, err
	}
	s.bollingerPeriod = cfg.BollingerPeriod
	if s.adx, err = NewADX(cfg.ADXPeriod); err != nil {
		return nil, err
	}
	if s.ichimoku, err = NewIchimoku(cfg.IchimokuTenkan, cfg.IchimokuKijun, cfg.IchimokuSenkouB, cfg.IchimokuLag); err != nil {
		return nil, err
	}
	if s.mfi, err = NewMFI(cfg.MFIPeriod); err != nil {
		return nil, err
	}
	if s.momentum, err = NewMomentum(cfg.MomentumPeriod); err != nil {
		return nil, err
	}
	if s.stochRSI, err = NewStochasticRSI(cfg.StochRSIPeriod); err != nil {
		return nil, err
	}
	return s, nil
}

// Compute runs every indicator over data, building the Bollinger bands with
// bandMultiplier standard deviations. A failing indicator is recorded in
// Snapshot.Errors and the rest still run.
func (s *Suite) Compute(data []types.OHLCV, bandMultiplier float64) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, errs.NewInsufficientDataError("Suite", 0, 1)
	}
	last := data[len(data)-1].Timestamp

	snap := &Snapshot{
		Bars:      len(data),
		Timestamp: last,
		Series:    make(map[string]Output, len(SeriesOrder)),
		Errors:    make(map[string]error),
	}
	closes := Closes(data)

	fail := func(name string, err error) {
		snap.Errors[name] = err
	}

	rsi, err := s.rsi.Calculate(closes)
	if err != nil {
		fail(s.rsi.GetName(), err)
		fail(s.stochRSI.GetName(), err)
	} else {
		snap.Series[SeriesRSI] = rsi
		if stoch, err := s.stochRSI.Calculate(rsi); err != nil {
			fail(s.stochRSI.GetName(), err)
		} else {
			snap.Series[SeriesStochRSI] = stoch
		}
	}

	if ema, err := s.ema.Calculate(closes); err != nil {
		fail(s.ema.GetName(), err)
	} else {
		snap.Series[SeriesEMA] = ema
	}
	if sma, err := s.sma.Calculate(closes); err != nil {
		fail(s.sma.GetName(), err)
	} else {
		snap.Series[SeriesSMA] = sma
	}
	if macd, err := s.macd.Calculate(closes); err != nil {
		fail(s.macd.GetName(), err)
	} else {
		snap.Series[SeriesMACD] = macd.MACD
		snap.Series[SeriesMACDSignal] = macd.Signal
		snap.Series[SeriesMACDHistogram] = macd.Histogram
	}
	if bb, err := NewBollingerBands(s.bollingerPeriod, bandMultiplier); err != nil {
		fail("BollingerBands", err)
	} else if bands, err := bb.Calculate(closes); err != nil {
		fail(bb.GetName(), err)
	} else {
		snap.Series[SeriesBBUpper] = bands.Upper
		snap.Series[SeriesBBMiddle] = bands.Middle
		snap.Series[SeriesBBLower] = bands.Lower
	}
	if adx, err := s.adx.Calculate(data); err != nil {
		fail(s.adx.GetName(), err)
	} else {
		snap.Series[SeriesADX] = adx.ADX
		snap.Series[SeriesPlusDI] = adx.PlusDI
		snap.Series[SeriesMinusDI] = adx.MinusDI
	}
	if ichi, err := s.ichimoku.Calculate(data); err != nil {
		fail(s.ichimoku.GetName(), err)
	} else {
		snap.Series[SeriesTenkan] = ichi.Tenkan
		snap.Series[SeriesKijun] = ichi.Kijun
		snap.Series[SeriesSenkouA] = ichi.SenkouA
		snap.Series[SeriesSenkouB] = ichi.SenkouB
		snap.Series[SeriesChikou] = ichi.Chikou
	}
	if mfi, err := s.mfi.Calculate(data); err != nil {
		fail(s.mfi.GetName(), err)
	} else {
		snap.Series[SeriesMFI] = mfi
	}
	if mom, err := s.momentum.Calculate(closes); err != nil {
		fail(s.momentum.GetName(), err)
	} else {
		snap.Series[SeriesMomentum] = mom
	}
	if vwap, err := s.vwap.Calculate(data); err != nil {
		fail(s.vwap.GetName(), err)
	} else {
		snap.Series[SeriesVWAP] = vwap
	}

	return snap, nil
}
