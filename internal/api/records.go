package api

import (
	"net/http"
	"strconv"
	"time"

	"asset-tracker/internal/models"
	"asset-tracker/internal/services/chart"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Record CRUD: field presence/type/range checks, then pass-through to storage.

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func notFoundOrDBError(c *gin.Context, err error) {
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
}

// ---------- deposits ----------

type depositRequest struct {
	BankName      string          `json:"bank_name" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	TransactionAt time.Time       `json:"transaction_at" binding:"required"`
}

func (r *depositRequest) validate(c *gin.Context) bool {
	if !r.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return false
	}
	return true
}

func (h *APIHandler) CreateDeposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	rec := models.DepositRecord{
		BankName:      req.BankName,
		Amount:        req.Amount,
		Note:          req.Note,
		TransactionAt: req.TransactionAt,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) ListDeposits(c *gin.Context) {
	var recs []models.DepositRecord
	if err := h.db.Order("transaction_at desc").Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": recs})
}

func (h *APIHandler) UpdateDeposit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	var rec models.DepositRecord
	if err := h.db.First(&rec, id).Error; err != nil {
		notFoundOrDBError(c, err)
		return
	}
	rec.BankName = req.BankName
	rec.Amount = req.Amount
	rec.Note = req.Note
	rec.TransactionAt = req.TransactionAt
	if err := h.db.Save(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) DeleteDeposit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := h.db.Delete(&models.DepositRecord{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "deleted"})
}

// GetDepositDaily returns one aggregated point per business day for the
// deposit chart.
func (h *APIHandler) GetDepositDaily(c *gin.Context) {
	var recs []models.DepositRecord
	if err := h.db.Order("transaction_at asc").Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": chart.AggregateDepositsByDay(recs)})
}

// ---------- currency purchases ----------

type currencyPurchaseRequest struct {
	Currency      string          `json:"currency" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	CostCNY       decimal.Decimal `json:"cost_cny"`
	Channel       string          `json:"channel"`
	TransactionAt time.Time       `json:"transaction_at" binding:"required"`
}

func (r *currencyPurchaseRequest) validate(c *gin.Context) bool {
	if !r.Amount.IsPositive() || !r.CostCNY.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and cost_cny must be positive"})
		return false
	}
	return true
}

func (h *APIHandler) CreateCurrencyPurchase(c *gin.Context) {
	var req currencyPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	rec := models.CurrencyPurchase{
		Currency:      req.Currency,
		Amount:        req.Amount,
		CostCNY:       req.CostCNY,
		Channel:       req.Channel,
		TransactionAt: req.TransactionAt,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) ListCurrencyPurchases(c *gin.Context) {
	var recs []models.CurrencyPurchase
	if err := h.db.Order("transaction_at desc").Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": recs})
}

func (h *APIHandler) UpdateCurrencyPurchase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req currencyPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	var rec models.CurrencyPurchase
	if err := h.db.First(&rec, id).Error; err != nil {
		notFoundOrDBError(c, err)
		return
	}
	rec.Currency = req.Currency
	rec.Amount = req.Amount
	rec.CostCNY = req.CostCNY
	rec.Channel = req.Channel
	rec.TransactionAt = req.TransactionAt
	if err := h.db.Save(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) DeleteCurrencyPurchase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := h.db.Delete(&models.CurrencyPurchase{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "deleted"})
}

// ---------- gold purchases ----------

type goldPurchaseRequest struct {
	Grams         decimal.Decimal `json:"grams"`
	CostCNY       decimal.Decimal `json:"cost_cny"`
	Channel       string          `json:"channel"`
	TransactionAt time.Time       `json:"transaction_at" binding:"required"`
}

func (r *goldPurchaseRequest) validate(c *gin.Context) bool {
	if !r.Grams.IsPositive() || !r.CostCNY.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grams and cost_cny must be positive"})
		return false
	}
	return true
}

func (h *APIHandler) CreateGoldPurchase(c *gin.Context) {
	var req goldPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	rec := models.GoldPurchase{
		Grams:         req.Grams,
		CostCNY:       req.CostCNY,
		Channel:       req.Channel,
		TransactionAt: req.TransactionAt,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) ListGoldPurchases(c *gin.Context) {
	var recs []models.GoldPurchase
	if err := h.db.Order("transaction_at desc").Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": recs})
}

func (h *APIHandler) UpdateGoldPurchase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req goldPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	var rec models.GoldPurchase
	if err := h.db.First(&rec, id).Error; err != nil {
		notFoundOrDBError(c, err)
		return
	}
	rec.Grams = req.Grams
	rec.CostCNY = req.CostCNY
	rec.Channel = req.Channel
	rec.TransactionAt = req.TransactionAt
	if err := h.db.Save(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) DeleteGoldPurchase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := h.db.Delete(&models.GoldPurchase{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "deleted"})
}

// ---------- debts ----------

type debtRequest struct {
	Debtor        string          `json:"debtor" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	Settled       bool            `json:"settled"`
	TransactionAt time.Time       `json:"transaction_at" binding:"required"`
}

func (r *debtRequest) validate(c *gin.Context) bool {
	if !r.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return false
	}
	return true
}

func (h *APIHandler) CreateDebt(c *gin.Context) {
	var req debtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	rec := models.DebtRecord{
		Debtor:        req.Debtor,
		Amount:        req.Amount,
		Note:          req.Note,
		Settled:       req.Settled,
		TransactionAt: req.TransactionAt,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) ListDebts(c *gin.Context) {
	var recs []models.DebtRecord
	if err := h.db.Order("transaction_at desc").Find(&recs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": recs})
}

func (h *APIHandler) UpdateDebt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req debtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validate(c) {
		return
	}
	var rec models.DebtRecord
	if err := h.db.First(&rec, id).Error; err != nil {
		notFoundOrDBError(c, err)
		return
	}
	rec.Debtor = req.Debtor
	rec.Amount = req.Amount
	rec.Note = req.Note
	rec.Settled = req.Settled
	rec.TransactionAt = req.TransactionAt
	if err := h.db.Save(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "ok", "data": rec})
}

func (h *APIHandler) DeleteDebt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res := h.db.Delete(&models.DebtRecord{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": "deleted"})
}
