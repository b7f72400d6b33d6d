package handlers

import (
	"net/http"

	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers all transaction-related routes.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PATCH("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Records a signed amount against an account; the account and user balances are refreshed in the same database transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Zero amount or malformed body"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account or category not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Account or category not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the user's transactions, newest first, filterable by kind, month/year, account and category.
// @Tags transactions
// @Produce json
// @Param kind query string false "income or outgo"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param account query string false "Account ID"
// @Param category query string false "Category ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	transactions, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(transactions, nextToken))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Edits an editable transaction; affected account balances are refreshed in the same database transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Transaction is locked"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction; the account and user balances are refreshed in the same database transaction.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Transaction not found")
		return
	}
	c.Status(http.StatusNoContent)
}
