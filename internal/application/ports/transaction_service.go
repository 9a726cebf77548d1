package ports

import (
	"context"
	"time"

	"docvault-api/internal/domain/transaction"
	"docvault-api/internal/domain/user"
)

type TransactionService interface {
	FindPage(ctx context.Context, userID user.ID, page, limit int) (transaction.Transactions, error)
	FindRange(ctx context.Context, userID user.ID, from, to time.Time) (transaction.Transactions, error)
}
