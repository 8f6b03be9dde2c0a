package series

import (
	"context"
	"fmt"
	"sync"
	"time"

	"asset-tracker/internal/models"
	"asset-tracker/internal/timebucket"
)

type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityHour Granularity = "hour"
)

const (
	MinWindow     = 1
	MaxHourWindow = 48
)

// ValidationError is a client-caused parameter error, surfaced before any
// query is issued.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Store is the raw bucketed-row source. Rows come back ordered by key
// ascending, at or after the given floor key.
type Store interface {
	GoldPricesSince(ctx context.Context, hourKey string) ([]models.GoldPriceHourly, error)
	ExchangeRatesSince(ctx context.Context, hourKey string) ([]models.ExchangeRateHourly, error)
	DailySummariesSince(ctx context.Context, date string) ([]models.DailySummary, error)
}

// Result is a gap-free window of bucket values for both metrics. Keys is
// chronological (oldest first) and both maps contain exactly those keys.
type Result struct {
	Granularity  Granularity        `json:"granularity"`
	Keys         []string           `json:"keys"`
	GoldPrice    map[string]float64 `json:"gold_price"`
	ExchangeRate map[string]float64 `json:"exchange_rate"`
}

// Reader rebuilds a complete forward-filled series from the sparse bucketed
// rows: the last known non-zero value carries across missing buckets, and
// buckets before the first observation get 0.
type Reader struct {
	store Store
}

func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) Read(ctx context.Context, granularity Granularity, window int, now time.Time) (*Result, error) {
	switch granularity {
	case GranularityHour:
		if window < MinWindow || window > MaxHourWindow {
			return nil, &ValidationError{msg: fmt.Sprintf("hour window must be between %d and %d, got %d", MinWindow, MaxHourWindow, window)}
		}
		return r.readHourly(ctx, window, now)
	case GranularityDay:
		if window < MinWindow {
			return nil, &ValidationError{msg: fmt.Sprintf("day window must be at least %d, got %d", MinWindow, window)}
		}
		return r.readDaily(ctx, window, now)
	default:
		return nil, &ValidationError{msg: fmt.Sprintf("unknown granularity %q", granularity)}
	}
}

func (r *Reader) readHourly(ctx context.Context, window int, now time.Time) (*Result, error) {
	keys := timebucket.RecentHourKeys(window, now)
	// Query one bucket below the window floor so a row landing just outside
	// (clock drift between key generation and query) is still picked up.
	floor := timebucket.RecentHourKeys(window+1, now)[window]

	// The two metrics live in separate tables; fetch them concurrently.
	var goldRows []models.GoldPriceHourly
	var rateRows []models.ExchangeRateHourly
	var goldErr, rateErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		goldRows, goldErr = r.store.GoldPricesSince(ctx, floor)
	}()
	go func() {
		defer wg.Done()
		rateRows, rateErr = r.store.ExchangeRatesSince(ctx, floor)
	}()
	wg.Wait()
	if goldErr != nil {
		return nil, fmt.Errorf("gold price query: %w", goldErr)
	}
	if rateErr != nil {
		return nil, fmt.Errorf("exchange rate query: %w", rateErr)
	}

	goldByKey := make(map[string]float64, len(goldRows))
	for _, row := range goldRows {
		goldByKey[row.HourKey] = row.Price
	}
	rateByKey := make(map[string]float64, len(rateRows))
	for _, row := range rateRows {
		rateByKey[row.HourKey] = row.Rate
	}

	return fill(GranularityHour, keys, goldByKey, rateByKey), nil
}

func (r *Reader) readDaily(ctx context.Context, window int, now time.Time) (*Result, error) {
	keys := timebucket.RecentDayDates(window, now)
	floor := timebucket.RecentDayDates(window+1, now)[window]

	// Both metrics live in one daily summary row; a single query suffices.
	rows, err := r.store.DailySummariesSince(ctx, floor)
	if err != nil {
		return nil, fmt.Errorf("daily summary query: %w", err)
	}

	goldByKey := make(map[string]float64, len(rows))
	rateByKey := make(map[string]float64, len(rows))
	for _, row := range rows {
		goldByKey[row.Date] = row.GoldPrice
		rateByKey[row.Date] = row.ExchangeRate
	}

	return fill(GranularityDay, keys, goldByKey, rateByKey), nil
}

// fill walks the window oldest to newest carrying the last known non-zero
// value forward. A stored zero counts as absent: 0 doubles as the "no data
// yet" sentinel for buckets before the first observation.
func fill(granularity Granularity, recentFirst []string, goldByKey, rateByKey map[string]float64) *Result {
	n := len(recentFirst)
	keys := make([]string, n)
	for i, k := range recentFirst {
		keys[n-1-i] = k
	}

	res := &Result{
		Granularity:  granularity,
		Keys:         keys,
		GoldPrice:    make(map[string]float64, n),
		ExchangeRate: make(map[string]float64, n),
	}
	var lastGold, lastRate float64
	for _, k := range keys {
		if v, ok := goldByKey[k]; ok && v != 0 {
			lastGold = v
		}
		if v, ok := rateByKey[k]; ok && v != 0 {
			lastRate = v
		}
		res.GoldPrice[k] = lastGold
		res.ExchangeRate[k] = lastRate
	}
	return res
}
