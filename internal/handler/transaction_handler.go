package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/xtbfolio/xtbfolio/internal/service"
	"github.com/xtbfolio/xtbfolio/internal/xe"
	"go.uber.org/zap"
)

// TransactionHandler exposes transaction CRUD.
type TransactionHandler struct {
	logger             *zap.Logger
	transactionService *service.TransactionService
}

func NewTransactionHandler(logger *zap.Logger, transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		logger:             logger,
		transactionService: transactionService,
	}
}

// Create adds a single transaction
// POST /api/transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req service.TransactionCreate
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	transaction, err := h.transactionService.AddTransaction(ctx, req)
	if err != nil {
		h.logger.Error("failed to create transaction", zap.Error(err))
		return err
	}

	return c.JSON(http.StatusCreated, transaction)
}

// List returns a sorted page of transactions
// GET /api/transactions?sortBy=openTime&order=DESC&limit=10&offset=0&symbol=AAPL
func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	query := service.TransactionQuery{
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
		Limit:  cast.ToInt(c.QueryParam("limit")),
		Offset: cast.ToInt(c.QueryParam("offset")),
		Symbol: c.QueryParam("symbol"),
		GetAll: cast.ToBool(c.QueryParam("getAll")),
	}

	page, err := h.transactionService.ListTransactions(ctx, query)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// GetByID returns one transaction
// GET /api/transactions/:id
func (h *TransactionHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		return xe.ErrInvalidParams
	}

	transaction, err := h.transactionService.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transaction)
}

// Update applies a partial update
// PUT /api/transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		return xe.ErrInvalidParams
	}

	var req service.TransactionUpdate
	if err := c.Bind(&req); err != nil {
		return xe.ErrInvalidParams
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	transaction, err := h.transactionService.UpdateTransaction(ctx, id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, transaction)
}

// Delete removes a transaction
// DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id := cast.ToUint(c.Param("id"))
	if id == 0 {
		return xe.ErrInvalidParams
	}

	if err := h.transactionService.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	transactions := g.Group("/transactions")

	transactions.POST("", h.Create)
	transactions.GET("", h.List)
	transactions.GET("/:id", h.GetByID)
	transactions.PUT("/:id", h.Update)
	transactions.DELETE("/:id", h.Delete)
}
