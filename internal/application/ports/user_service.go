package ports

import (
	"context"

	"docvault-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	FindUserIDByCognitoID(ctx context.Context, cognitoID string) (user.ID, error)
	FindVerification(ctx context.Context, id user.ID) (*user.Verification, error)
	SubmitUserInfo(ctx context.Context, id user.ID, info user.Info) error
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	FindHome(ctx context.Context, id user.ID) (*user.Home, error)
}
