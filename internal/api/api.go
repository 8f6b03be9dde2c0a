package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"asset-tracker/internal/models"
	"asset-tracker/internal/services/quotes"
	"asset-tracker/internal/services/series"
	"asset-tracker/internal/services/snapshot"
	"asset-tracker/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type snapshotRunner interface {
	Run(ctx context.Context, now time.Time) (*snapshot.Result, error)
}

type seriesReader interface {
	Read(ctx context.Context, granularity series.Granularity, window int, now time.Time) (*series.Result, error)
}

// MarketSource exposes the latest stored quotes, used to value FX and gold
// holdings in the portfolio summary.
type MarketSource interface {
	LatestGoldPrice(ctx context.Context) (*models.GoldPriceHourly, error)
	LatestExchangeRate(ctx context.Context) (*models.ExchangeRateHourly, error)
}

type APIHandler struct {
	db     *gorm.DB
	writer snapshotRunner
	reader seriesReader
	market MarketSource
	hub    *ws.Hub
}

func SetupRoutes(r *gin.RouterGroup, db *gorm.DB, writer snapshotRunner, reader seriesReader, market MarketSource, hub *ws.Hub) *APIHandler {
	handler := &APIHandler{
		db:     db,
		writer: writer,
		reader: reader,
		market: market,
		hub:    hub,
	}

	marketGroup := r.Group("/market")
	{
		marketGroup.POST("/snapshot", handler.TriggerSnapshot)
		marketGroup.GET("/history", handler.GetMarketHistory)
	}

	deposits := r.Group("/deposits")
	{
		deposits.POST("", handler.CreateDeposit)
		deposits.GET("", handler.ListDeposits)
		deposits.GET("/daily", handler.GetDepositDaily)
		deposits.PUT("/:id", handler.UpdateDeposit)
		deposits.DELETE("/:id", handler.DeleteDeposit)
	}

	currency := r.Group("/currency-purchases")
	{
		currency.POST("", handler.CreateCurrencyPurchase)
		currency.GET("", handler.ListCurrencyPurchases)
		currency.PUT("/:id", handler.UpdateCurrencyPurchase)
		currency.DELETE("/:id", handler.DeleteCurrencyPurchase)
	}

	gold := r.Group("/gold-purchases")
	{
		gold.POST("", handler.CreateGoldPurchase)
		gold.GET("", handler.ListGoldPurchases)
		gold.PUT("/:id", handler.UpdateGoldPurchase)
		gold.DELETE("/:id", handler.DeleteGoldPurchase)
	}

	debts := r.Group("/debts")
	{
		debts.POST("", handler.CreateDebt)
		debts.GET("", handler.ListDebts)
		debts.PUT("/:id", handler.UpdateDebt)
		debts.DELETE("/:id", handler.DeleteDebt)
	}

	r.GET("/portfolio/summary", handler.GetPortfolioSummary)
	r.GET("/export/records", handler.ExportRecords)

	return handler
}

// TriggerSnapshot fetches both quotes and writes the three bucketed rows.
// An upstream fetch failure means nothing was written; individual write
// failures are reported per table in the response.
func (h *APIHandler) TriggerSnapshot(c *gin.Context) {
	res, err := h.writer.Run(c.Request.Context(), time.Now())
	if err != nil {
		var ue *quotes.UpstreamError
		if errors.As(err, &ue) {
			c.JSON(http.StatusBadGateway, gin.H{"error": ue.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if h.hub != nil {
		h.hub.Publish("snapshot", res)
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": res})
}

// GetMarketHistory returns the forward-filled gold and USD/CNY series.
// GET /api/v1/market/history?granularity=day|hour&window=N
func (h *APIHandler) GetMarketHistory(c *gin.Context) {
	granularity := series.Granularity(c.DefaultQuery("granularity", "day"))

	defaultWindow := "30"
	if granularity == series.GranularityHour {
		defaultWindow = "24"
	}
	window, err := strconv.Atoi(c.DefaultQuery("window", defaultWindow))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window must be a number"})
		return
	}

	res, err := h.reader.Read(c.Request.Context(), granularity, window, time.Now())
	if err != nil {
		var ve *series.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": res})
}
