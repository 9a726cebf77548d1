package user

import "time"

const (
	CardExpired  CardStatus = 0
	CardActive   CardStatus = 1
	CardLost     CardStatus = 2
	CardInReview CardStatus = 3
)

type (
	CardStatus int16
	Card       struct {
		ID         uint64
		UserID     ID
		CardNumber string
		ExpireDate time.Time
		Balance    string
		Currency   string
		Status     CardStatus
		CardForm   int16
		CardType   int16
	}
	Cards []*Card

	Home struct {
		FirstName              string
		LastName               string
		EmailVerified          bool
		InfoVerificationStatus int16
		Cards                  Cards
	}
)

func (s CardStatus) String() string {
	switch s {
	case CardActive:
		return "Active"
	case CardExpired:
		return "Expired"
	case CardLost:
		return "Lost"
	default:
		return "In Review"
	}
}
