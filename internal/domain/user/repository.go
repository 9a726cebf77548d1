package user

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserIDByCognitoID(ctx context.Context, cognitoID string) (ID, error)
	FetchVerification(ctx context.Context, id ID) (*Verification, error)
	UpdateUserInfo(ctx context.Context, id ID, info Info) (int64, error)
	FetchActiveCards(ctx context.Context, id ID) (Cards, error)
}
