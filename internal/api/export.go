package api

import (
	"fmt"
	"net/http"

	"asset-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02 15:04"

// ExportRecords writes all four asset classes into one .xlsx workbook, one
// sheet per class.
func (h *APIHandler) ExportRecords(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	if err := h.writeDepositSheet(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	if err := h.writeCurrencySheet(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	if err := h.writeGoldSheet(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	if err := h.writeDebtSheet(f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	// drop the default sheet left over from NewFile
	_ = f.DeleteSheet("Sheet1")

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="asset-records.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func (h *APIHandler) writeDepositSheet(f *excelize.File) error {
	var recs []models.DepositRecord
	if err := h.db.Order("transaction_at asc").Find(&recs).Error; err != nil {
		return err
	}
	const sheet = "Deposits"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Bank", "Amount (CNY)", "Note"}); err != nil {
		return err
	}
	for i, r := range recs {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{r.TransactionAt.Format(dateLayout), r.BankName, r.Amount.String(), r.Note}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (h *APIHandler) writeCurrencySheet(f *excelize.File) error {
	var recs []models.CurrencyPurchase
	if err := h.db.Order("transaction_at asc").Find(&recs).Error; err != nil {
		return err
	}
	const sheet = "Currency Purchases"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Currency", "Amount", "Cost (CNY)", "Channel"}); err != nil {
		return err
	}
	for i, r := range recs {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{r.TransactionAt.Format(dateLayout), r.Currency, r.Amount.String(), r.CostCNY.String(), r.Channel}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (h *APIHandler) writeGoldSheet(f *excelize.File) error {
	var recs []models.GoldPurchase
	if err := h.db.Order("transaction_at asc").Find(&recs).Error; err != nil {
		return err
	}
	const sheet = "Gold Purchases"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Grams", "Cost (CNY)", "Channel"}); err != nil {
		return err
	}
	for i, r := range recs {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{r.TransactionAt.Format(dateLayout), r.Grams.String(), r.CostCNY.String(), r.Channel}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (h *APIHandler) writeDebtSheet(f *excelize.File) error {
	var recs []models.DebtRecord
	if err := h.db.Order("transaction_at asc").Find(&recs).Error; err != nil {
		return err
	}
	const sheet = "Debts"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Debtor", "Amount (CNY)", "Settled", "Note"}); err != nil {
		return err
	}
	for i, r := range recs {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{r.TransactionAt.Format(dateLayout), r.Debtor, r.Amount.String(), r.Settled, r.Note}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
