package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositRecord is one cash deposit transaction.
type DepositRecord struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	BankName      string          `json:"bank_name" gorm:"size:100;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	Note          string          `json:"note" gorm:"type:text"`
	TransactionAt time.Time       `json:"transaction_at" gorm:"index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (DepositRecord) TableName() string {
	return "deposit_records"
}

// CurrencyPurchase is one foreign-currency purchase (amount in the foreign
// currency, cost in CNY).
type CurrencyPurchase struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Currency      string          `json:"currency" gorm:"size:10;not null"` // e.g. USD
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	CostCNY       decimal.Decimal `json:"cost_cny" gorm:"type:decimal(20,4);not null"`
	Channel       string          `json:"channel" gorm:"size:100"`
	TransactionAt time.Time       `json:"transaction_at" gorm:"index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (CurrencyPurchase) TableName() string {
	return "currency_purchases"
}

// GoldPurchase is one physical-gold purchase in grams.
type GoldPurchase struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Grams         decimal.Decimal `json:"grams" gorm:"type:decimal(20,4);not null"`
	CostCNY       decimal.Decimal `json:"cost_cny" gorm:"type:decimal(20,4);not null"`
	Channel       string          `json:"channel" gorm:"size:100"`
	TransactionAt time.Time       `json:"transaction_at" gorm:"index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (GoldPurchase) TableName() string {
	return "gold_purchases"
}

// DebtRecord is one receivable: money lent out that is expected back.
type DebtRecord struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Debtor        string          `json:"debtor" gorm:"size:100;not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	Note          string          `json:"note" gorm:"type:text"`
	Settled       bool            `json:"settled" gorm:"default:false"`
	TransactionAt time.Time       `json:"transaction_at" gorm:"index;not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (DebtRecord) TableName() string {
	return "debt_records"
}
