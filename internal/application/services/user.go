package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"docvault-api/internal/application/ports"
	domain "docvault-api/internal/domain/user"
	"docvault-api/internal/infrastructure/mq"
)

var (
	ErrVerificationLocked = errors.New("user info cannot be changed while verification is pending or passed")
	ErrUserInfoNotUpdated = errors.New("user info was not updated")
)

type UserService struct {
	userRepository domain.Repository
	identity       ports.IdentityProvider
	events         ports.EventPublisher
	logger         *zap.Logger
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	identity ports.IdentityProvider,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		identity:       identity,
		events:         events,
		logger:         logger,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	return u, nil
}

func (us *UserService) FindUserIDByCognitoID(ctx context.Context, cognitoID string) (domain.ID, error) {
	return us.userRepository.FetchUserIDByCognitoID(ctx, cognitoID)
}

func (us *UserService) FindVerification(ctx context.Context, id domain.ID) (*domain.Verification, error) {
	v, err := us.userRepository.FetchVerification(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrUserNotFound
	}

	return v, nil
}

// SubmitUserInfo stores the self-declared profile. Names are trimmed and
// NFC-normalised so that visually equal names compare equal.
func (us *UserService) SubmitUserInfo(ctx context.Context, id domain.ID, info domain.Info) error {
	v, err := us.userRepository.FetchVerification(ctx, id)
	if err != nil {
		return err
	}
	if v != nil && v.Status.Locked() {
		return ErrVerificationLocked
	}

	info.FirstName = normalizeName(info.FirstName)
	info.LastName = normalizeName(info.LastName)

	n, err := us.userRepository.UpdateUserInfo(ctx, id, info)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: user %d", ErrUserInfoNotUpdated, id)
	}

	if us.events != nil {
		select {
		case us.events.GetInputChan() <- mq.NewEvent(mq.ActionUserUpdated, uint64(id), mq.UserPayload{
			FirstName: info.FirstName,
			LastName:  info.LastName,
		}):
		default:
			us.logger.Warn("event buffer full, dropping user event", zap.Uint64("user_id", uint64(id)))
		}
	}

	if us.mCounter != nil {
		us.mCounter.WithLabelValues("user_info_submitted_total").Inc()
	}

	return nil
}

func (us *UserService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return us.identity.EmailExists(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (us *UserService) FindHome(ctx context.Context, id domain.ID) (*domain.Home, error) {
	u, err := us.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cards, err := us.userRepository.FetchActiveCards(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.Home{
		FirstName:              u.FirstName,
		LastName:               u.LastName,
		EmailVerified:          u.EmailVerified,
		InfoVerificationStatus: u.InfoVerificationStatus,
		Cards:                  cards,
	}, nil
}

func normalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
