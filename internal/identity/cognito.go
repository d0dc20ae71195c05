package identity

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"

	"pulsefit/server/internal/config"
	"pulsefit/server/internal/metrics"
)

// Page size for ListUsers requests.
const listUsersLimit = 60

// cognitoClient implements AdminClient on AWS Cognito.
type cognitoClient struct {
	client *cognitoidentityprovider.Client
}

// NewCognitoClient creates an AdminClient backed by the Cognito admin API.
// Static credentials from config take precedence; otherwise the default AWS
// credential chain applies.
func NewCognitoClient(ctx context.Context, cfg config.CognitoConfig) (AdminClient, error) {
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return &cognitoClient{
		client: cognitoidentityprovider.NewFromConfig(awsSDKConfig),
	}, nil
}

// ListUsers fetches users from the pool and flattens their attributes.
func (c *cognitoClient) ListUsers(ctx context.Context, userPoolID string) ([]User, error) {
	out, err := c.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(userPoolID),
		Limit:      aws.Int32(listUsersLimit),
	})
	if err != nil {
		metrics.IdentityRequests.WithLabelValues("listUsers", metrics.OutcomeError).Inc()
		return nil, err
	}
	metrics.IdentityRequests.WithLabelValues("listUsers", metrics.OutcomeOK).Inc()

	users := make([]User, 0, len(out.Users))
	for _, record := range out.Users {
		user := User{
			Username:             aws.ToString(record.Username),
			Enabled:              record.Enabled,
			UserStatus:           string(record.UserStatus),
			UserCreateDate:       formatDate(record.UserCreateDate),
			UserLastModifiedDate: formatDate(record.UserLastModifiedDate),
		}
		for _, attr := range record.Attributes {
			if aws.ToString(attr.Name) == "email" {
				user.Email = aws.ToString(attr.Value)
			}
		}
		users = append(users, user)
	}
	return users, nil
}

func (c *cognitoClient) EnableUser(ctx context.Context, userPoolID, username string) error {
	_, err := c.client.AdminEnableUser(ctx, &cognitoidentityprovider.AdminEnableUserInput{
		UserPoolId: aws.String(userPoolID),
		Username:   aws.String(username),
	})
	c.count("enableUser", err)
	return err
}

func (c *cognitoClient) DisableUser(ctx context.Context, userPoolID, username string) error {
	_, err := c.client.AdminDisableUser(ctx, &cognitoidentityprovider.AdminDisableUserInput{
		UserPoolId: aws.String(userPoolID),
		Username:   aws.String(username),
	})
	c.count("disableUser", err)
	return err
}

func (c *cognitoClient) DeleteUser(ctx context.Context, userPoolID, username string) error {
	_, err := c.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(userPoolID),
		Username:   aws.String(username),
	})
	c.count("deleteUser", err)
	return err
}

func (c *cognitoClient) count(action string, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.IdentityRequests.WithLabelValues(action, outcome).Inc()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
