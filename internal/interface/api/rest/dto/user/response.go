package user

type (
	Address struct {
		Address1 string `json:"address1"`
		Address2 string `json:"address2,omitempty"`
		City     string `json:"city"`
		Province string `json:"province"`
		Postal   string `json:"postal"`
	}

	User struct {
		ID                     uint64   `json:"id"`
		CognitoID              string   `json:"cognito_id"`
		FirstName              string   `json:"first_name"`
		LastName               string   `json:"last_name"`
		Email                  string   `json:"email"`
		EmailVerified          bool     `json:"email_verified"`
		InfoVerificationStatus int16    `json:"info_verification_status"`
		Birthday               *string  `json:"birthday"`
		ResidentialAddress     *Address `json:"residential_address"`
	}

	Verification struct {
		ID            uint64   `json:"id"`
		UserID        uint64   `json:"user_id"`
		DocumentList  []uint64 `json:"document_list"`
		Status        int16    `json:"status"`
		StatusMessage string   `json:"status_message"`
	}

	Card struct {
		CardID         uint64 `json:"card_id"`
		CardHolderName string `json:"card_holder_name"`
		CardNumber     string `json:"card_number"`
		Balance        string `json:"balance"`
		Currency       string `json:"currency"`
		ExpiryDate     string `json:"expiry_date"`
		CardType       int16  `json:"card_type"`
		CardForm       int16  `json:"card_form"`
		Status         string `json:"status"`
	}

	Home struct {
		InfoVerificationStatus int16  `json:"info_verification_status"`
		EmailVerified          bool   `json:"email_verified"`
		Cards                  []Card `json:"cards"`
	}

	Lookup struct {
		ID uint64 `json:"id"`
	}

	EmailExists struct {
		Exists bool `json:"exists"`
	}

	ResponseData struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}
)
