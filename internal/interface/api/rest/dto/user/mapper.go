package user

import (
	"strings"
	"time"

	"docvault-api/internal/domain/user"
)

const dateLayout = "2006-01-02"

func ToResponseUser(uDomain user.User) User {
	u := User{
		ID:                     uint64(uDomain.ID),
		CognitoID:              uDomain.CognitoID,
		FirstName:              uDomain.FirstName,
		LastName:               uDomain.LastName,
		Email:                  uDomain.Email,
		EmailVerified:          uDomain.EmailVerified,
		InfoVerificationStatus: uDomain.InfoVerificationStatus,
	}
	if uDomain.Birthday != nil {
		b := uDomain.Birthday.Format(dateLayout)
		u.Birthday = &b
	}
	if a := uDomain.ResidentialAddress; a != nil {
		u.ResidentialAddress = &Address{
			Address1: a.Address1,
			Address2: a.Address2,
			City:     a.City,
			Province: a.Province,
			Postal:   a.Postal,
		}
	}

	return u
}

func ToResponseVerification(v user.Verification) Verification {
	docs := v.DocumentList
	if docs == nil {
		docs = []uint64{}
	}

	return Verification{
		ID:            v.ID,
		UserID:        uint64(v.UserID),
		DocumentList:  docs,
		Status:        int16(v.Status),
		StatusMessage: v.StatusMessage,
	}
}

func ToResponseHome(h user.Home) Home {
	holder := strings.TrimSpace(h.FirstName + " " + h.LastName)
	cards := make([]Card, len(h.Cards))
	for idx, c := range h.Cards {
		cards[idx] = Card{
			CardID:         c.ID,
			CardHolderName: holder,
			CardNumber:     c.CardNumber,
			Balance:        c.Balance,
			Currency:       c.Currency,
			ExpiryDate:     c.ExpireDate.Format(dateLayout),
			CardType:       c.CardType,
			CardForm:       c.CardForm,
			Status:         c.Status.String(),
		}
	}

	return Home{
		InfoVerificationStatus: h.InfoVerificationStatus,
		EmailVerified:          h.EmailVerified,
		Cards:                  cards,
	}
}

// ToDomainInfo expects a request already accepted by validator.ValidateUserInfo.
func ToDomainInfo(r InfoRequest) (user.Info, error) {
	dob, err := time.Parse(dateLayout, strings.TrimSpace(r.DateOfBirth))
	if err != nil {
		return user.Info{}, err
	}

	info := user.Info{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Birthday:  dob,
	}
	if a := r.PhysicalAddress; a != nil {
		info.ResidentialAddress = user.Address{
			Address1: strings.TrimSpace(a.Address1),
			Address2: strings.TrimSpace(a.Address2),
			City:     strings.TrimSpace(a.City),
			Province: strings.TrimSpace(a.Province),
			Postal:   strings.TrimSpace(a.Postal),
		}
	}

	return info, nil
}
