package user

const (
	SelectUserByID = `
		SELECT id, cognito_id, first_name, last_name, email, email_verified, info_verification_status, birthday, residential_address, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	SelectIDByCognitoID = `SELECT id FROM users WHERE cognito_id = $1`
	SelectVerificationByUserID = `
		SELECT id, user_id, document_list, status, status_message, created_at, updated_at
		FROM user_verification
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	UpdateUserInfoByID = `
		UPDATE users
		SET first_name = $1,
		    last_name = $2,
		    birthday = $3,
		    residential_address = $4,
		    updated_at = now()
		WHERE id = $5
	`
	SelectActiveCardsByUserID = `
		SELECT id, user_id, card_number, expire_date, balance::text, currency, status, card_form, card_type
		FROM cards
		WHERE user_id = $1 AND status = 1
		ORDER BY id
	`
)
