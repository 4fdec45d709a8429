package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/nhz04/BANKING/internal/ledger"
	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves an account's transaction history as a download.
type ExportHandler struct {
	Query *ledger.Query
}

func NewExportHandler(query *ledger.Query) *ExportHandler {
	return &ExportHandler{Query: query}
}

var exportHeaders = []string{"ID", "Type", "Amount", "Balance", "Timestamp"}

// ExportTransactions writes the full history as CSV (default) or XLSX,
// selected with ?format=csv|xlsx.
func (h *ExportHandler) ExportTransactions(c *gin.Context) {
	accountNo := c.Param("accountNo")
	txs, err := h.Query.GetHistory(c.Request.Context(), accountNo)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		h.writeCSV(c, accountNo, txs)
	case "xlsx":
		h.writeXLSX(c, accountNo, txs)
	default:
		util.Error(c, http.StatusBadRequest, "format must be csv or xlsx")
	}
}

func (h *ExportHandler) writeCSV(c *gin.Context, accountNo string, txs []models.Transaction) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s_%s.csv\"",
		accountNo, time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, tx := range txs {
		writer.Write([]string{
			tx.TxID,
			tx.Type,
			tx.Amount.String(),
			tx.Balance.String(),
			tx.CreatedAt.Format(time.RFC3339),
		})
	}
}

func (h *ExportHandler) writeXLSX(c *gin.Context, accountNo string, txs []models.Transaction) {
	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, tx := range txs {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), tx.TxID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), tx.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Amount.String())
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), tx.Balance.String())
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), tx.CreatedAt.Format(time.RFC3339))
	}

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 24)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s_%s.xlsx\"",
		accountNo, time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "export failed")
	}
}
