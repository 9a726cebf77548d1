package transaction

import (
	"docvault-api/internal/domain/transaction"
)

const dateTimeLayout = "2006-01-02 15:04:05"

func ToResponseTransaction(tDomain transaction.Transaction) Transaction {
	return Transaction{
		TransactionID: tDomain.ID,
		FundsFlow:     tDomain.Direction(),
		Amount:        tDomain.Amount,
		Currency:      tDomain.Currency,
		Type:          tDomain.Type,
		ReceiverName:  tDomain.ReceiverName,
		InitiatorName: tDomain.InitiatorName,
		DateTime:      tDomain.CreatedAt.UTC().Format(dateTimeLayout),
	}
}

func ToResponseTransactions(tsDomain transaction.Transactions) Transactions {
	ts := make(Transactions, len(tsDomain))
	for idx, t := range tsDomain {
		ts[idx] = ToResponseTransaction(*t)
	}

	return ts
}
