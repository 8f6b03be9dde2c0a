package snapshot

import (
	"context"
	"sync"
	"time"

	"asset-tracker/internal/models"
	"asset-tracker/internal/services/quotes"
	"asset-tracker/internal/timebucket"
)

// Store persists the three bucketed market tables. Each upsert is keyed so a
// repeated write within the same bucket overwrites instead of appending.
type Store interface {
	UpsertGoldPrice(ctx context.Context, row *models.GoldPriceHourly) (created bool, err error)
	UpsertExchangeRate(ctx context.Context, row *models.ExchangeRateHourly) (created bool, err error)
	UpsertDailySummary(ctx context.Context, row *models.DailySummary) (created bool, err error)
}

const (
	TableGoldPrice    = "gold_price_hourly"
	TableExchangeRate = "exchange_rate_hourly"
	TableDailySummary = "daily_summaries"
)

// WriteOutcome reports one table's upsert result.
type WriteOutcome struct {
	Table   string `json:"table"`
	Created bool   `json:"created"`
	Error   string `json:"error,omitempty"`
}

func (o WriteOutcome) OK() bool {
	return o.Error == ""
}

type Result struct {
	DayKey    string         `json:"day_key"`
	HourKey   string         `json:"hour_key"`
	Gold      quotes.Quote   `json:"gold"`
	Rate      quotes.Quote   `json:"exchange_rate"`
	Writes    []WriteOutcome `json:"writes"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

// Writer fetches one gold quote and one USD/CNY quote and upserts them into
// the hourly tables and the daily summary.
type Writer struct {
	gold  quotes.Fetcher
	fx    quotes.Fetcher
	store Store
}

func NewWriter(gold, fx quotes.Fetcher, store Store) *Writer {
	return &Writer{gold: gold, fx: fx, store: store}
}

// Run fetches both quotes concurrently, then writes the snapshot. Any fetch
// failure aborts before a single write is issued.
func (w *Writer) Run(ctx context.Context, now time.Time) (*Result, error) {
	start := time.Now()

	var goldQ, rateQ quotes.Quote
	var goldErr, rateErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		goldQ, goldErr = w.gold.FetchQuote(ctx)
	}()
	go func() {
		defer wg.Done()
		rateQ, rateErr = w.fx.FetchQuote(ctx)
	}()
	wg.Wait()

	if goldErr != nil {
		return nil, goldErr
	}
	if rateErr != nil {
		return nil, rateErr
	}

	res := w.WriteSnapshot(ctx, goldQ, rateQ, now)
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res, nil
}

// WriteSnapshot performs the three keyed upserts concurrently. The writes are
// independent: a failure in one does not roll back the others, and every
// outcome is reported to the caller.
func (w *Writer) WriteSnapshot(ctx context.Context, gold, rate quotes.Quote, now time.Time) *Result {
	hourKey := timebucket.HourKey(now)
	res := &Result{
		DayKey:  timebucket.DayKey(now),
		HourKey: hourKey,
		Gold:    gold,
		Rate:    rate,
	}

	outcomes := make([]WriteOutcome, 3)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		created, err := w.store.UpsertGoldPrice(ctx, &models.GoldPriceHourly{
			HourKey:         hourKey,
			Price:           gold.Value,
			SourceUpdatedAt: gold.SourceUpdatedAt,
		})
		outcomes[0] = outcome(TableGoldPrice, created, err)
	}()
	go func() {
		defer wg.Done()
		created, err := w.store.UpsertExchangeRate(ctx, &models.ExchangeRateHourly{
			HourKey:         hourKey,
			Rate:            rate.Value,
			SourceUpdatedAt: rate.SourceUpdatedAt,
		})
		outcomes[1] = outcome(TableExchangeRate, created, err)
	}()
	go func() {
		defer wg.Done()
		created, err := w.store.UpsertDailySummary(ctx, &models.DailySummary{
			Date:              timebucket.DayDate(now),
			GoldPrice:         gold.Value,
			GoldUpdatedAt:     gold.SourceUpdatedAt,
			ExchangeRate:      rate.Value,
			ExchangeUpdatedAt: rate.SourceUpdatedAt,
		})
		outcomes[2] = outcome(TableDailySummary, created, err)
	}()
	wg.Wait()

	res.Writes = outcomes
	return res
}

func outcome(table string, created bool, err error) WriteOutcome {
	o := WriteOutcome{Table: table, Created: created}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}
