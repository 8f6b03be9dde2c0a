package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"asset-tracker/internal/models"
	"asset-tracker/internal/services/quotes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	quote quotes.Quote
	err   error
}

func (f *mockFetcher) FetchQuote(ctx context.Context) (quotes.Quote, error) {
	return f.quote, f.err
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) UpsertGoldPrice(ctx context.Context, row *models.GoldPriceHourly) (bool, error) {
	args := m.Called(ctx, row)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) UpsertExchangeRate(ctx context.Context, row *models.ExchangeRateHourly) (bool, error) {
	args := m.Called(ctx, row)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) UpsertDailySummary(ctx context.Context, row *models.DailySummary) (bool, error) {
	args := m.Called(ctx, row)
	return args.Bool(0), args.Error(1)
}

var testNow = time.Date(2025, 6, 1, 2, 30, 0, 0, time.UTC) // 10:30 Jun 1 business-local

func TestRunWritesAllThreeTables(t *testing.T) {
	goldAt := time.Date(2025, 6, 1, 2, 25, 0, 0, time.UTC)
	rateAt := time.Date(2025, 6, 1, 2, 20, 0, 0, time.UTC)
	gold := &mockFetcher{quote: quotes.Quote{Value: 552.4, SourceUpdatedAt: goldAt}}
	fx := &mockFetcher{quote: quotes.Quote{Value: 7.13, SourceUpdatedAt: rateAt}}

	store := new(mockStore)
	store.On("UpsertGoldPrice", mock.Anything, mock.MatchedBy(func(r *models.GoldPriceHourly) bool {
		return r.HourKey == "2025060110" && r.Price == 552.4 && r.SourceUpdatedAt.Equal(goldAt)
	})).Return(true, nil)
	store.On("UpsertExchangeRate", mock.Anything, mock.MatchedBy(func(r *models.ExchangeRateHourly) bool {
		return r.HourKey == "2025060110" && r.Rate == 7.13
	})).Return(true, nil)
	store.On("UpsertDailySummary", mock.Anything, mock.MatchedBy(func(r *models.DailySummary) bool {
		return r.Date == "2025-06-01" && r.GoldPrice == 552.4 && r.ExchangeRate == 7.13
	})).Return(true, nil)

	res, err := NewWriter(gold, fx, store).Run(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, "20250601", res.DayKey)
	assert.Equal(t, "2025060110", res.HourKey)
	require.Len(t, res.Writes, 3)
	for _, w := range res.Writes {
		assert.True(t, w.OK())
		assert.True(t, w.Created)
	}
	store.AssertExpectations(t)
}

func TestRunFetchFailureAbortsBeforeAnyWrite(t *testing.T) {
	upErr := &quotes.UpstreamError{Source: "gold", Err: errors.New("timeout")}
	gold := &mockFetcher{err: upErr}
	fx := &mockFetcher{quote: quotes.Quote{Value: 7.13}}

	store := new(mockStore)

	_, err := NewWriter(gold, fx, store).Run(context.Background(), testNow)
	require.Error(t, err)
	var ue *quotes.UpstreamError
	assert.ErrorAs(t, err, &ue)
	store.AssertNotCalled(t, "UpsertGoldPrice", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "UpsertExchangeRate", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "UpsertDailySummary", mock.Anything, mock.Anything)
}

func TestWriteSnapshotPartialFailureReportedPerTable(t *testing.T) {
	store := new(mockStore)
	store.On("UpsertGoldPrice", mock.Anything, mock.Anything).Return(false, errors.New("deadlock"))
	store.On("UpsertExchangeRate", mock.Anything, mock.Anything).Return(false, nil)
	store.On("UpsertDailySummary", mock.Anything, mock.Anything).Return(true, nil)

	w := NewWriter(nil, nil, store)
	res := w.WriteSnapshot(context.Background(), quotes.Quote{Value: 550}, quotes.Quote{Value: 7.1}, testNow)

	require.Len(t, res.Writes, 3)
	byTable := map[string]WriteOutcome{}
	for _, o := range res.Writes {
		byTable[o.Table] = o
	}
	assert.False(t, byTable[TableGoldPrice].OK())
	assert.Contains(t, byTable[TableGoldPrice].Error, "deadlock")
	assert.True(t, byTable[TableExchangeRate].OK())
	assert.False(t, byTable[TableExchangeRate].Created) // overwrite, not insert
	assert.True(t, byTable[TableDailySummary].OK())
	assert.True(t, byTable[TableDailySummary].Created)
}

func TestWriteSnapshotSameBucketOverwrites(t *testing.T) {
	// Second call in the same hour carries Created=false from the store:
	// last-write-wins upsert, no duplicate row.
	store := new(mockStore)
	store.On("UpsertGoldPrice", mock.Anything, mock.Anything).Return(false, nil)
	store.On("UpsertExchangeRate", mock.Anything, mock.Anything).Return(false, nil)
	store.On("UpsertDailySummary", mock.Anything, mock.Anything).Return(false, nil)

	w := NewWriter(nil, nil, store)
	res := w.WriteSnapshot(context.Background(), quotes.Quote{Value: 551}, quotes.Quote{Value: 7.2}, testNow)
	for _, o := range res.Writes {
		assert.True(t, o.OK())
		assert.False(t, o.Created)
	}
}
