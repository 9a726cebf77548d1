package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByID, uint64(id)).Scan(
		&u.ID,
		&u.CognitoID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.EmailVerified,
		&u.InfoVerificationStatus,
		&u.Birthday,
		&u.ResidentialAddress,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u)
}

func (r *Repository) FetchUserIDByCognitoID(ctx context.Context, cognitoID string) (user.ID, error) {
	var id uint64
	if err := r.db.QueryRow(ctx, SelectIDByCognitoID, cognitoID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: cognito id %s", user.ErrUserNotFound, cognitoID)
		}
		return 0, err
	}

	return user.ID(id), nil
}

// FetchVerification returns the latest verification record, or nil, nil when the
// user never started one.
func (r *Repository) FetchVerification(ctx context.Context, id user.ID) (*user.Verification, error) {
	v := new(Verification)
	err := r.db.QueryRow(ctx, SelectVerificationByUserID, uint64(id)).Scan(
		&v.ID,
		&v.UserID,
		&v.DocumentList,
		&v.Status,
		&v.StatusMessage,

		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromVerificationModel(v)
}

func (r *Repository) UpdateUserInfo(ctx context.Context, id user.ID, info user.Info) (int64, error) {
	addr, err := json.Marshal(info.ResidentialAddress)
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, UpdateUserInfoByID,
		info.FirstName, info.LastName, info.Birthday, addr, uint64(id),
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *Repository) FetchActiveCards(ctx context.Context, id user.ID) (user.Cards, error) {
	rows, err := r.db.Query(ctx, SelectActiveCardsByUserID, uint64(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cs Cards
	for rows.Next() {
		c := new(Card)

		if err = rows.Scan(
			&c.ID,
			&c.UserID,
			&c.CardNumber,
			&c.ExpireDate,
			&c.Balance,
			&c.Currency,
			&c.Status,
			&c.CardForm,
			&c.CardType,
		); err != nil {
			return nil, err
		}

		cs = append(cs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromCardModels(cs), nil
}
