package database

import (
	"context"

	"asset-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarketStore is the gorm-backed implementation of the snapshot writer's and
// series reader's storage contracts.
type MarketStore struct {
	db *gorm.DB
}

func NewMarketStore(db *gorm.DB) *MarketStore {
	return &MarketStore{db: db}
}

func (s *MarketStore) UpsertGoldPrice(ctx context.Context, row *models.GoldPriceHourly) (bool, error) {
	created, err := s.missing(ctx, &models.GoldPriceHourly{}, "hour_key = ?", row.HourKey)
	if err != nil {
		return false, err
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hour_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(row).Error
	return created, err
}

func (s *MarketStore) UpsertExchangeRate(ctx context.Context, row *models.ExchangeRateHourly) (bool, error) {
	created, err := s.missing(ctx, &models.ExchangeRateHourly{}, "hour_key = ?", row.HourKey)
	if err != nil {
		return false, err
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hour_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
	}).Create(row).Error
	return created, err
}

func (s *MarketStore) UpsertDailySummary(ctx context.Context, row *models.DailySummary) (bool, error) {
	created, err := s.missing(ctx, &models.DailySummary{}, "date = ?", row.Date)
	if err != nil {
		return false, err
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"gold_price", "gold_updated_at", "exchange_rate", "exchange_updated_at", "updated_at",
		}),
	}).Create(row).Error
	return created, err
}

// missing reports whether no row matches yet, i.e. the upsert will insert.
func (s *MarketStore) missing(ctx context.Context, model interface{}, query string, arg interface{}) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *MarketStore) GoldPricesSince(ctx context.Context, hourKey string) ([]models.GoldPriceHourly, error) {
	var rows []models.GoldPriceHourly
	err := s.db.WithContext(ctx).
		Where("hour_key >= ?", hourKey).
		Order("hour_key asc").
		Find(&rows).Error
	return rows, err
}

func (s *MarketStore) ExchangeRatesSince(ctx context.Context, hourKey string) ([]models.ExchangeRateHourly, error) {
	var rows []models.ExchangeRateHourly
	err := s.db.WithContext(ctx).
		Where("hour_key >= ?", hourKey).
		Order("hour_key asc").
		Find(&rows).Error
	return rows, err
}

func (s *MarketStore) DailySummariesSince(ctx context.Context, date string) ([]models.DailySummary, error) {
	var rows []models.DailySummary
	err := s.db.WithContext(ctx).
		Where("date >= ?", date).
		Order("date asc").
		Find(&rows).Error
	return rows, err
}

// LatestGoldPrice returns the newest hourly gold row, or nil when the table
// is empty.
func (s *MarketStore) LatestGoldPrice(ctx context.Context) (*models.GoldPriceHourly, error) {
	var row models.GoldPriceHourly
	err := s.db.WithContext(ctx).Order("hour_key desc").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// LatestExchangeRate returns the newest hourly rate row, or nil when the
// table is empty.
func (s *MarketStore) LatestExchangeRate(ctx context.Context) (*models.ExchangeRateHourly, error) {
	var row models.ExchangeRateHourly
	err := s.db.WithContext(ctx).Order("hour_key desc").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
