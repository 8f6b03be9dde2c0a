package series

import (
	"context"
	"errors"
	"testing"
	"time"

	"asset-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GoldPricesSince(ctx context.Context, hourKey string) ([]models.GoldPriceHourly, error) {
	args := m.Called(ctx, hourKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GoldPriceHourly), args.Error(1)
}

func (m *mockStore) ExchangeRatesSince(ctx context.Context, hourKey string) ([]models.ExchangeRateHourly, error) {
	args := m.Called(ctx, hourKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRateHourly), args.Error(1)
}

func (m *mockStore) DailySummariesSince(ctx context.Context, date string) ([]models.DailySummary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailySummary), args.Error(1)
}

// 10:30 Jun 1 business-local.
var testNow = time.Date(2025, 6, 1, 2, 30, 0, 0, time.UTC)

func TestReadHourlyForwardFill(t *testing.T) {
	store := new(mockStore)
	// Window of 5: 06..10 business-local. Observations at 06 and 08 only.
	store.On("GoldPricesSince", mock.Anything, "2025060105").Return([]models.GoldPriceHourly{
		{HourKey: "2025060106", Price: 5},
		{HourKey: "2025060108", Price: 7},
	}, nil)
	store.On("ExchangeRatesSince", mock.Anything, "2025060105").Return([]models.ExchangeRateHourly{
		{HourKey: "2025060107", Rate: 7.1},
	}, nil)

	res, err := NewReader(store).Read(context.Background(), GranularityHour, 5, testNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025060106", "2025060107", "2025060108", "2025060109", "2025060110"}, res.Keys)
	assert.Equal(t, map[string]float64{
		"2025060106": 5,
		"2025060107": 5,
		"2025060108": 7,
		"2025060109": 7,
		"2025060110": 7,
	}, res.GoldPrice)
	assert.Equal(t, map[string]float64{
		"2025060106": 0, // before first observation
		"2025060107": 7.1,
		"2025060108": 7.1,
		"2025060109": 7.1,
		"2025060110": 7.1,
	}, res.ExchangeRate)
}

func TestReadHourlyStoredZeroTreatedAsAbsent(t *testing.T) {
	store := new(mockStore)
	store.On("GoldPricesSince", mock.Anything, mock.Anything).Return([]models.GoldPriceHourly{
		{HourKey: "2025060109", Price: 550},
		{HourKey: "2025060110", Price: 0},
	}, nil)
	store.On("ExchangeRatesSince", mock.Anything, mock.Anything).Return([]models.ExchangeRateHourly{}, nil)

	res, err := NewReader(store).Read(context.Background(), GranularityHour, 2, testNow)
	require.NoError(t, err)
	// The zero row does not reset the carried value.
	assert.Equal(t, 550.0, res.GoldPrice["2025060110"])
}

func TestReadDailyWindowCompleteAcrossGap(t *testing.T) {
	store := new(mockStore)
	store.On("DailySummariesSince", mock.Anything, "2025-05-28").Return([]models.DailySummary{
		{Date: "2025-05-30", GoldPrice: 540, ExchangeRate: 7.05},
	}, nil)

	res, err := NewReader(store).Read(context.Background(), GranularityDay, 3, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-30", "2025-05-31", "2025-06-01"}, res.Keys)
	assert.Equal(t, 540.0, res.GoldPrice["2025-05-31"])
	assert.Equal(t, 540.0, res.GoldPrice["2025-06-01"])
	assert.Equal(t, 7.05, res.ExchangeRate["2025-06-01"])
	assert.Len(t, res.GoldPrice, 3)
	assert.Len(t, res.ExchangeRate, 3)
}

func TestReadDailyLeadingGapDefaultsToZero(t *testing.T) {
	store := new(mockStore)
	store.On("DailySummariesSince", mock.Anything, mock.Anything).Return([]models.DailySummary{}, nil)

	res, err := NewReader(store).Read(context.Background(), GranularityDay, 2, testNow)
	require.NoError(t, err)
	for _, k := range res.Keys {
		assert.Equal(t, 0.0, res.GoldPrice[k])
		assert.Equal(t, 0.0, res.ExchangeRate[k])
	}
}

func TestReadBoundsRejection(t *testing.T) {
	store := new(mockStore)
	r := NewReader(store)

	cases := []struct {
		granularity Granularity
		window      int
		wantErr     bool
	}{
		{GranularityHour, 0, true},
		{GranularityHour, 49, true},
		{GranularityHour, 48, false},
		{GranularityHour, 1, false},
		{GranularityDay, 0, true},
		{GranularityDay, 1, false},
		{Granularity("week"), 5, true},
	}
	store.On("GoldPricesSince", mock.Anything, mock.Anything).Return([]models.GoldPriceHourly{}, nil)
	store.On("ExchangeRatesSince", mock.Anything, mock.Anything).Return([]models.ExchangeRateHourly{}, nil)
	store.On("DailySummariesSince", mock.Anything, mock.Anything).Return([]models.DailySummary{}, nil)

	for _, tc := range cases {
		_, err := r.Read(context.Background(), tc.granularity, tc.window, testNow)
		if tc.wantErr {
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve, "granularity=%s window=%d", tc.granularity, tc.window)
		} else {
			assert.NoError(t, err, "granularity=%s window=%d", tc.granularity, tc.window)
		}
	}
}

func TestReadValidationFailsBeforeQuery(t *testing.T) {
	store := new(mockStore)
	_, err := NewReader(store).Read(context.Background(), GranularityHour, 49, testNow)
	require.Error(t, err)
	store.AssertNotCalled(t, "GoldPricesSince", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "ExchangeRatesSince", mock.Anything, mock.Anything)
}

func TestReadQueryErrorFailsWholeRead(t *testing.T) {
	store := new(mockStore)
	store.On("GoldPricesSince", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	store.On("ExchangeRatesSince", mock.Anything, mock.Anything).Return([]models.ExchangeRateHourly{}, nil)

	_, err := NewReader(store).Read(context.Background(), GranularityHour, 5, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gold price query")
}

func TestReadWindowCompleteness(t *testing.T) {
	store := new(mockStore)
	store.On("GoldPricesSince", mock.Anything, mock.Anything).Return([]models.GoldPriceHourly{}, nil)
	store.On("ExchangeRatesSince", mock.Anything, mock.Anything).Return([]models.ExchangeRateHourly{}, nil)

	res, err := NewReader(store).Read(context.Background(), GranularityHour, 48, testNow)
	require.NoError(t, err)
	assert.Len(t, res.Keys, 48)
	assert.Equal(t, "2025060110", res.Keys[47]) // bucket containing now
	for i := 1; i < len(res.Keys); i++ {
		assert.Less(t, res.Keys[i-1], res.Keys[i])
	}
}
