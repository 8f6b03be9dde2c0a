package api

import (
	"net/http"

	"asset-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetPortfolioSummary values every asset class in CNY. FX and gold holdings
// are converted with the latest stored quotes; a missing quote leaves the
// class valued at its recorded cost.
func (h *APIHandler) GetPortfolioSummary(c *gin.Context) {
	ctx := c.Request.Context()

	depositTotal, err := h.sumDecimal(&models.DepositRecord{}, "COALESCE(SUM(amount), 0)", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	usdTotal, err := h.sumDecimal(&models.CurrencyPurchase{}, "COALESCE(SUM(amount), 0)", "currency = 'USD'")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	currencyCost, err := h.sumDecimal(&models.CurrencyPurchase{}, "COALESCE(SUM(cost_cny), 0)", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	goldGrams, err := h.sumDecimal(&models.GoldPurchase{}, "COALESCE(SUM(grams), 0)", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	goldCost, err := h.sumDecimal(&models.GoldPurchase{}, "COALESCE(SUM(cost_cny), 0)", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	debtTotal, err := h.sumDecimal(&models.DebtRecord{}, "COALESCE(SUM(amount), 0)", "settled = false")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	goldRow, err := h.market.LatestGoldPrice(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	rateRow, err := h.market.LatestExchangeRate(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	currencyValue := currencyCost
	var usdRate float64
	if rateRow != nil {
		usdRate = rateRow.Rate
		currencyValue = usdTotal.Mul(decimal.NewFromFloat(rateRow.Rate))
	}
	goldValue := goldCost
	var goldPrice float64
	if goldRow != nil {
		goldPrice = goldRow.Price
		goldValue = goldGrams.Mul(decimal.NewFromFloat(goldRow.Price))
	}

	total := depositTotal.Add(currencyValue).Add(goldValue).Add(debtTotal)

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  "ok",
		"data": gin.H{
			"deposits_total": depositTotal,
			"currency": gin.H{
				"usd_amount": usdTotal,
				"cost_cny":   currencyCost,
				"value_cny":  currencyValue,
			},
			"gold": gin.H{
				"grams":     goldGrams,
				"cost_cny":  goldCost,
				"value_cny": goldValue,
			},
			"debts_outstanding": debtTotal,
			"total_cny":         total,
			"quotes": gin.H{
				"gold_price":    goldPrice,
				"exchange_rate": usdRate,
			},
		},
	})
}

func (h *APIHandler) sumDecimal(model interface{}, expr, where string) (decimal.Decimal, error) {
	q := h.db.Model(model).Select(expr)
	if where != "" {
		q = q.Where(where)
	}
	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
