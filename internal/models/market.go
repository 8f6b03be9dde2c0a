package models

import "time"

// GoldPriceHourly stores one gold quote per business-timezone hour bucket.
// A new fetch within the same hour overwrites the row instead of appending.
type GoldPriceHourly struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	HourKey string  `json:"hour_key" gorm:"size:10;uniqueIndex;not null"`
	Price   float64 `json:"price"`
	// SourceUpdatedAt is the update instant reported by the upstream quote
	// source, not the local write time.
	SourceUpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (GoldPriceHourly) TableName() string {
	return "gold_price_hourly"
}

// ExchangeRateHourly stores one USD/CNY quote per business-timezone hour bucket.
type ExchangeRateHourly struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	HourKey         string    `json:"hour_key" gorm:"size:10;uniqueIndex;not null"`
	Rate            float64   `json:"rate"`
	SourceUpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (ExchangeRateHourly) TableName() string {
	return "exchange_rate_hourly"
}

// DailySummary keeps the latest gold price and exchange rate seen on a
// business-timezone day. Later snapshots within the same day overwrite all
// four value/timestamp fields together.
type DailySummary struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Date              string    `json:"date" gorm:"size:10;uniqueIndex;not null"` // YYYY-MM-DD
	GoldPrice         float64   `json:"gold_price"`
	GoldUpdatedAt     time.Time `json:"gold_updated_at" gorm:"column:gold_updated_at"`
	ExchangeRate      float64   `json:"exchange_rate"`
	ExchangeUpdatedAt time.Time `json:"exchange_updated_at" gorm:"column:exchange_updated_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (DailySummary) TableName() string {
	return "daily_summaries"
}
