package data

import (
	"github.com/olaskid2005/SignalBot/internal/logger"
	"github.com/olaskid2005/SignalBot/pkg/types"
)

// normalizeBars sorts file rows into time order and drops repeated
// timestamps. Either repair is logged with the number of rows it touched.
func normalizeBars(data []types.OHLCV, source string, log logger.Logger) []types.OHLCV {
	outOfOrder := 0
	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			outOfOrder++
		}
	}
	if outOfOrder > 0 {
		log.Warn("reordered bars",
			logger.String("source", source),
			logger.Int("out_of_order", outOfOrder))
	}

	sorted := SortByTimestamp(data)
	unique := RemoveDuplicates(sorted)
	if dropped := len(sorted) - len(unique); dropped > 0 {
		log.Warn("dropped duplicate bars",
			logger.String("source", source),
			logger.Int("dropped", dropped))
	}
	return unique
}
