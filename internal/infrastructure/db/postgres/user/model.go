package user

import "time"

type (
	User struct {
		ID                     uint64
		CognitoID              string
		FirstName              string
		LastName               string
		Email                  string
		EmailVerified          bool
		InfoVerificationStatus int16
		Birthday               *time.Time
		ResidentialAddress     []byte

		CreatedAt time.Time
		UpdatedAt *time.Time
	}

	Verification struct {
		ID            uint64
		UserID        uint64
		DocumentList  []byte
		Status        int16
		StatusMessage string

		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Card struct {
		ID         uint64
		UserID     uint64
		CardNumber string
		ExpireDate time.Time
		Balance    string
		Currency   string
		Status     int16
		CardForm   int16
		CardType   int16
	}
	Cards []*Card
)
