package transaction

const (
	SelectTransactionsPage = `
		SELECT id, user_id, initiator_name, receiver_name, amount::text, transaction_type, funds_flow, currency, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	SelectTransactionsRange = `
		SELECT id, user_id, initiator_name, receiver_name, amount::text, transaction_type, funds_flow, currency, created_at
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC, id DESC
	`
)
