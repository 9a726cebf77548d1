package user

import (
	"encoding/json"
	"fmt"

	domain "docvault-api/internal/domain/user"
)

func fromDBModel(model *User) (*domain.User, error) {
	u := &domain.User{
		ID:                     domain.ID(model.ID),
		CognitoID:              model.CognitoID,
		FirstName:              model.FirstName,
		LastName:               model.LastName,
		Email:                  model.Email,
		EmailVerified:          model.EmailVerified,
		InfoVerificationStatus: model.InfoVerificationStatus,
		Birthday:               model.Birthday,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	// '{}' is the column default for users who never submitted an address
	if len(model.ResidentialAddress) > 0 && string(model.ResidentialAddress) != "{}" {
		addr := new(domain.Address)
		if err := json.Unmarshal(model.ResidentialAddress, addr); err != nil {
			return nil, fmt.Errorf("decoding residential_address of user %d: %w", model.ID, err)
		}
		u.ResidentialAddress = addr
	}

	return u, nil
}

func fromVerificationModel(model *Verification) (*domain.Verification, error) {
	v := &domain.Verification{
		ID:            model.ID,
		UserID:        domain.ID(model.UserID),
		Status:        domain.VerificationStatus(model.Status),
		StatusMessage: model.StatusMessage,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if len(model.DocumentList) > 0 {
		if err := json.Unmarshal(model.DocumentList, &v.DocumentList); err != nil {
			return nil, fmt.Errorf("decoding document_list of verification %d: %w", model.ID, err)
		}
	}

	return v, nil
}

func fromCardModels(models Cards) domain.Cards {
	cs := make(domain.Cards, len(models))
	for idx, c := range models {
		cs[idx] = &domain.Card{
			ID:         c.ID,
			UserID:     domain.ID(c.UserID),
			CardNumber: c.CardNumber,
			ExpireDate: c.ExpireDate,
			Balance:    c.Balance,
			Currency:   c.Currency,
			Status:     domain.CardStatus(c.Status),
			CardForm:   c.CardForm,
			CardType:   c.CardType,
		}
	}

	return cs
}
