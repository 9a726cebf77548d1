package transaction

import (
	"time"

	"docvault-api/internal/domain/user"
)

const FundsFlowReceiving = 1

type (
	Transaction struct {
		ID            uint64
		UserID        user.ID
		InitiatorName string
		ReceiverName  string
		Amount        string
		Type          string
		FundsFlow     int16
		Currency      string
		CreatedAt     time.Time
	}
	Transactions []*Transaction
)

func (t *Transaction) Direction() string {
	if t.FundsFlow == FundsFlowReceiving {
		return "receiving"
	}
	return "sending"
}
