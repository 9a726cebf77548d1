package transaction

import (
	"context"
	"time"

	"docvault-api/internal/domain/transaction"
	"docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) transaction.Repository {
	return &Repository{db: db}
}

// FetchPage returns the page-th (1-based) slice of limit transactions, newest first.
func (r *Repository) FetchPage(ctx context.Context, userID user.ID, page, limit int) (transaction.Transactions, error) {
	return r.fetch(ctx, SelectTransactionsPage, uint64(userID), limit, (page-1)*limit)
}

// FetchRange returns transactions created in [from, to), newest first.
func (r *Repository) FetchRange(ctx context.Context, userID user.ID, from, to time.Time) (transaction.Transactions, error) {
	return r.fetch(ctx, SelectTransactionsRange, uint64(userID), from, to)
}

func (r *Repository) fetch(ctx context.Context, query string, args ...any) (transaction.Transactions, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts Transactions
	for rows.Next() {
		t := new(Transaction)

		if err = rows.Scan(
			&t.ID,
			&t.UserID,
			&t.InitiatorName,
			&t.ReceiverName,
			&t.Amount,
			&t.Type,
			&t.FundsFlow,
			&t.Currency,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}

		ts = append(ts, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ts), nil
}
