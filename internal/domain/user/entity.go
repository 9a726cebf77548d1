package user

import (
	"time"
)

const (
	VerificationUnverified VerificationStatus = 0
	VerificationPending    VerificationStatus = 1
	VerificationFailed     VerificationStatus = 2
	VerificationPassed     VerificationStatus = 3
)

type (
	ID                 uint64
	VerificationStatus int16

	Address struct {
		Address1 string `json:"address1"`
		Address2 string `json:"address2,omitempty"`
		City     string `json:"city"`
		Province string `json:"province"`
		Postal   string `json:"postal"`
	}
	User struct {
		ID                     ID
		CognitoID              string
		FirstName              string
		LastName               string
		Email                  string
		EmailVerified          bool
		InfoVerificationStatus int16
		Birthday               *time.Time
		ResidentialAddress     *Address

		CreatedAt time.Time
		UpdatedAt *time.Time
	}

	// Info is the self-declared part of a profile a user submits before verification.
	Info struct {
		FirstName          string
		LastName           string
		Birthday           time.Time
		ResidentialAddress Address
	}

	Verification struct {
		ID            uint64
		UserID        ID
		DocumentList  []uint64
		Status        VerificationStatus
		StatusMessage string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

// Locked reports whether the profile may no longer be changed by the user.
func (s VerificationStatus) Locked() bool {
	return s == VerificationPending || s == VerificationPassed
}
