package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nhz04/BANKING/internal/ledger"
	"github.com/nhz04/BANKING/internal/money"
	"github.com/nhz04/BANKING/internal/util"

	"github.com/gin-gonic/gin"
)

// AccountHandler exposes account mutations and lookups over HTTP.
type AccountHandler struct {
	Service  *ledger.Service
	Query    *ledger.Query
	PageSize int
}

func NewAccountHandler(service *ledger.Service, query *ledger.Query, pageSize int) *AccountHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &AccountHandler{
		Service:  service,
		Query:    query,
		PageSize: pageSize,
	}
}

// writeLedgerError maps domain errors to HTTP status codes in one place.
func writeLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrAlreadyExists),
		errors.Is(err, ledger.ErrInsufficientFunds):
		util.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInvalidInput),
		errors.Is(err, ledger.ErrInvalidAmount):
		util.Error(c, http.StatusBadRequest, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, "internal error")
	}
}

type createAccountReq struct {
	AccountNo      string      `json:"account_no" binding:"required"`
	Name           string      `json:"name" binding:"required"`
	InitialBalance money.Money `json:"initial_balance"`
}

type amountReq struct {
	Amount money.Money `json:"amount"`
}

// CreateAccount opens a new account with an optional opening balance.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req createAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid request data")
		return
	}

	account, err := h.Service.Create(c.Request.Context(), req.AccountNo, req.Name, req.InitialBalance)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Created(c, util.Response{
		"message": "account created successfully",
		"account": account,
	})
}

// ListAccounts returns all accounts in creation order.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.Query.ListAccounts(c.Request.Context())
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"accounts": accounts})
}

// GetAccount returns a single account by number.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.Query.GetAccount(c.Request.Context(), c.Param("accountNo"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"account": account})
}

// DeleteAccount removes an account unconditionally.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("accountNo")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "account deleted successfully"})
}

// Deposit adds funds to an account.
func (h *AccountHandler) Deposit(c *gin.Context) {
	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid amount")
		return
	}

	account, _, err := h.Service.Deposit(c.Request.Context(), c.Param("accountNo"), req.Amount)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": fmt.Sprintf("deposited %s successfully", req.Amount),
		"account": account,
	})
}

// Withdraw removes funds from an account.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid amount")
		return
	}

	account, _, err := h.Service.Withdraw(c.Request.Context(), c.Param("accountNo"), req.Amount)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": fmt.Sprintf("withdrew %s successfully", req.Amount),
		"account": account,
	})
}

// GetTransactions returns an account's history, oldest first. Paging is
// optional: without a page parameter the full history is returned.
func (h *AccountHandler) GetTransactions(c *gin.Context) {
	txs, err := h.Query.GetHistory(c.Request.Context(), c.Param("accountNo"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	pageStr := c.Query("page")
	if pageStr == "" {
		util.Success(c, util.Response{"transactions": txs})
		return
	}

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 100 {
		size = h.PageSize
	}

	total := len(txs)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	util.Success(c, util.Response{
		"transactions": txs[start:end],
		"total":        total,
		"page":         page,
		"size":         size,
	})
}
