package transaction

import (
	domain "docvault-api/internal/domain/transaction"
	"docvault-api/internal/domain/user"
)

func fromDBModels(models Transactions) domain.Transactions {
	ts := make(domain.Transactions, len(models))
	for idx, t := range models {
		ts[idx] = &domain.Transaction{
			ID:            t.ID,
			UserID:        user.ID(t.UserID),
			InitiatorName: t.InitiatorName,
			ReceiverName:  t.ReceiverName,
			Amount:        t.Amount,
			Type:          t.Type,
			FundsFlow:     t.FundsFlow,
			Currency:      t.Currency,
			CreatedAt:     t.CreatedAt,
		}
	}

	return ts
}
