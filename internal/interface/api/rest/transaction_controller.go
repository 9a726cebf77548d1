package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docvault-api/internal/application/ports"
	dto "docvault-api/internal/interface/api/rest/dto/transaction"
	"docvault-api/internal/interface/api/rest/validator"
)

type TransactionController struct {
	transactionService ports.TransactionService
	logger             *zap.Logger
	now                func() time.Time
}

func NewTransactionController(
	r *gin.Engine,
	transactionService ports.TransactionService,
	logger *zap.Logger,
) *TransactionController {
	tc := &TransactionController{
		transactionService: transactionService,
		logger:             logger,
		now:                time.Now,
	}

	r.GET(RouteUserTransactions, tc.GetTransactionsPageHandler)
	r.GET(RouteUserTransactionsRange, tc.GetTransactionsRangeHandler)

	return tc
}

func (tc *TransactionController) GetTransactionsPageHandler(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	limit, err := validator.ValidateLimit(c.Query("limit"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	ts, err := tc.transactionService.FindPage(c.Request.Context(), id, page, limit)
	if err != nil {
		internalError(c, "error fetching transactions")
		tc.logger.Error("FindPage() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    &dto.Page{Transactions: dto.ToResponseTransactions(ts)},
	})
}

func (tc *TransactionController) GetTransactionsRangeHandler(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	now := tc.now()
	if c.Query("start_date") == "" {
		badRequest(c, "start_date is required")
		return
	}
	from, err := validator.ValidateDate(c.Query("start_date"), now)
	if err != nil {
		badRequest(c, "start_date: "+err.Error())
		return
	}
	to := now.UTC()
	if end := c.Query("end_date"); end != "" {
		if to, err = validator.ValidateDate(end, now); err != nil {
			badRequest(c, "end_date: "+err.Error())
			return
		}
	}
	if from.After(to) {
		badRequest(c, "start_date must not be after end_date")
		return
	}

	ts, err := tc.transactionService.FindRange(c.Request.Context(), id, from, to)
	if err != nil {
		internalError(c, "error fetching transactions")
		tc.logger.Error("FindRange() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Code:    http.StatusOK,
		Message: "success",
		Data:    &dto.Page{Transactions: dto.ToResponseTransactions(ts)},
	})
}
