package transaction

import (
	"context"
	"time"

	"docvault-api/internal/domain/user"
)

type Repository interface {
	FetchPage(ctx context.Context, userID user.ID, page, limit int) (Transactions, error)
	FetchRange(ctx context.Context, userID user.ID, from, to time.Time) (Transactions, error)
}
