package indicators

import (
	errs "github.com/olaskid2005/SignalBot/internal/errors"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// PriceIndicator maps a price series (usually closes) to one aligned output.
type PriceIndicator interface {
	Calculate(prices []float64) (Output, error)
	GetName() string
	GetRequiredPeriods() int
}

// BarIndicator maps a bar series to one aligned output.
type BarIndicator interface {
	Calculate(data []types.OHLCV) (Output, error)
	GetName() string
	GetRequiredPeriods() int
}

func validatePeriod(name, param string, period int) error {
	if period <= 0 {
		return errs.NewConfigurationError(name, "new", param+" must be greater than 0").
			WithContext(param, period)
	}
	return nil
}

// checkLength rejects empty or short input before any computation happens.
func checkLength(name string, available, required int) error {
	if available == 0 || available < required {
		return errs.NewInsufficientDataError(name, available, required)
	}
	return nil
}
