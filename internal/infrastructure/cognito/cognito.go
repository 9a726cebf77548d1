package cognito

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"

	"docvault-api/config"
	"docvault-api/internal/application/ports"
)

var errEmptyResult = errors.New("cognito returned a user without a username")

type adminGetUserAPI interface {
	AdminGetUser(ctx context.Context, in *cip.AdminGetUserInput, optFns ...func(*cip.Options)) (*cip.AdminGetUserOutput, error)
}

// Client answers identity questions from a Cognito user pool.
type Client struct {
	logger     *zap.Logger
	api        adminGetUserAPI
	userPoolID string
}

func New(ctx context.Context, logger *zap.Logger, cfg config.Cognito) (*Client, error) {
	if cfg.UserPoolID == "" {
		return nil, fmt.Errorf("cognito user pool is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Client{
		logger:     logger,
		api:        cip.NewFromConfig(awsCfg),
		userPoolID: cfg.UserPoolID,
	}, nil
}

// EmailExists reports whether the email is registered as a username in the pool.
func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	out, err := c.api.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		var notFound *types.UserNotFoundException
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("error getting user: %w", err)
	}
	if out == nil || aws.ToString(out.Username) == "" {
		return false, errEmptyResult
	}

	return true, nil
}

var _ ports.IdentityProvider = (*Client)(nil)
