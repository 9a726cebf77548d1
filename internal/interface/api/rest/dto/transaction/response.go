package transaction

type (
	Transaction struct {
		TransactionID uint64 `json:"transaction_id"`
		FundsFlow     string `json:"funds_flow"`
		Amount        string `json:"amount"`
		Currency      string `json:"currency"`
		Type          string `json:"type"`
		ReceiverName  string `json:"receiver_name"`
		InitiatorName string `json:"initiator_name"`
		DateTime      string `json:"date_time"`
	}
	Transactions []Transaction

	Page struct {
		Transactions Transactions `json:"transactions"`
	}

	ResponseData struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    *Page  `json:"data,omitempty"`
	}
)
