package transaction

import "time"

type (
	Transaction struct {
		ID            uint64
		UserID        uint64
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
