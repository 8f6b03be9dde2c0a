package chart

import (
	"sort"
	"strings"

	"asset-tracker/internal/models"
	"asset-tracker/internal/timebucket"

	"github.com/shopspring/decimal"
)

// DepositPoint is one aggregated chart point: all deposits on one business
// day summed, with the distinct bank names merged.
type DepositPoint struct {
	Date   string          `json:"date"`
	Banks  string          `json:"banks"`
	Amount decimal.Decimal `json:"amount"`
}

// AggregateDepositsByDay groups deposit records by their business-timezone
// day, summing amounts and joining distinct bank names comma-separated in
// first-seen order. Only days with at least one record appear; output is
// ordered by date ascending.
func AggregateDepositsByDay(records []models.DepositRecord) []DepositPoint {
	type group struct {
		amount decimal.Decimal
		banks  []string
		seen   map[string]struct{}
	}
	groups := make(map[string]*group)
	for _, rec := range records {
		date := timebucket.DayDate(rec.TransactionAt)
		g, ok := groups[date]
		if !ok {
			g = &group{seen: make(map[string]struct{})}
			groups[date] = g
		}
		g.amount = g.amount.Add(rec.Amount)
		if _, dup := g.seen[rec.BankName]; !dup {
			g.seen[rec.BankName] = struct{}{}
			g.banks = append(g.banks, rec.BankName)
		}
	}

	dates := make([]string, 0, len(groups))
	for date := range groups {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]DepositPoint, 0, len(dates))
	for _, date := range dates {
		g := groups[date]
		points = append(points, DepositPoint{
			Date:   date,
			Banks:  strings.Join(g.banks, ","),
			Amount: g.amount,
		})
	}
	return points
}
