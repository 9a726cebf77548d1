package ports

import "context"

type IdentityProvider interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}
