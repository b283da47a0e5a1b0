package shame

import "math"

const ValueSampleSize = 40

type ValueEstimate struct {
	LibraryValue    int  `json:"library_value"`
	PlayedValue     int  `json:"played_value"`
	UnplayedValue   int  `json:"unplayed_value"`
	PlayedCount     int  `json:"played_count"`
	UnplayedCount   int  `json:"unplayed_count"`
	PlayedSampled   int  `json:"played_sampled"`
	UnplayedSampled int  `json:"unplayed_sampled"`
	IsEstimate      bool `json:"is_estimate"`
}

// SplitByPlayed separates games with any playtime from those with none.
func SplitByPlayed(games []Game) (played, unplayed []Game) {
	for _, g := range games {
		if g.Playtime > 0 {
			played = append(played, g)
		} else {
			unplayed = append(unplayed, g)
		}
	}
	return played, unplayed
}

// EstimateValue prices a library. With full set, the sampled slices are
// expected to be the whole library and prices are summed. Otherwise the
// average price of each sample is extrapolated across its bucket.
func EstimateValue(playedCount, unplayedCount int, sampledPlayed, sampledUnplayed []Game, store map[int]StoreInfo, full bool) ValueEstimate {
	playedPrices := knownPrices(sampledPlayed, store)
	unplayedPrices := knownPrices(sampledUnplayed, store)

	est := ValueEstimate{
		PlayedCount:     playedCount,
		UnplayedCount:   unplayedCount,
		PlayedSampled:   len(playedPrices),
		UnplayedSampled: len(unplayedPrices),
		IsEstimate:      !full,
	}

	var playedValue, unplayedValue float64
	if full {
		playedValue = sum(playedPrices)
		unplayedValue = sum(unplayedPrices)
	} else {
		playedValue = average(playedPrices) * float64(playedCount)
		unplayedValue = average(unplayedPrices) * float64(unplayedCount)
	}

	est.PlayedValue = int(math.Round(playedValue))
	est.UnplayedValue = int(math.Round(unplayedValue))
	est.LibraryValue = int(math.Round(playedValue + unplayedValue))
	return est
}

func knownPrices(games []Game, store map[int]StoreInfo) []float64 {
	var prices []float64
	for _, g := range games {
		info, ok := store[g.AppID]
		if !ok {
			continue
		}
		if price, ok := ExtractUSDPrice(info.Price); ok && price > 0 {
			prices = append(prices, price)
		}
	}
	return prices
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}
