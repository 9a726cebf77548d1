package services

import (
	"context"
	"time"

	"docvault-api/internal/application/ports"
	"docvault-api/internal/domain/transaction"
	"docvault-api/internal/domain/user"
)

type TransactionService struct {
	transactionRepository transaction.Repository
}

func NewTransactionService(transactionRepository transaction.Repository) ports.TransactionService {
	return &TransactionService{transactionRepository: transactionRepository}
}

func (ts *TransactionService) FindPage(ctx context.Context, userID user.ID, page, limit int) (transaction.Transactions, error) {
	return ts.transactionRepository.FetchPage(ctx, userID, page, limit)
}

// FindRange includes the whole of the end day.
func (ts *TransactionService) FindRange(ctx context.Context, userID user.ID, from, to time.Time) (transaction.Transactions, error) {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	return ts.transactionRepository.FetchRange(ctx, userID, from, to)
}
