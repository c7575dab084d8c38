package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"cloudaudit/pkg/logging"
)

// ClientOptions selects the shared-config profile and region. Empty values
// fall back to the SDK defaults.
type ClientOptions struct {
	Profile string
	Region  string
}

// ClientSet holds the service clients of one invocation
type ClientSet struct {
	RDS RDSClientAPI
	EC2 EC2ClientAPI
	S3  S3ClientAPI
	STS STSClientAPI

	Region    string
	AccountID string
}

// LoadConfig loads the shared AWS configuration for the given options
func LoadConfig(ctx context.Context, opts ClientOptions) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, NewAWSError(ErrConfigurationError, "", "",
			fmt.Sprintf("unable to load AWS SDK config for profile %q", profileName(opts.Profile)), err)
	}
	if cfg.Region == "" {
		return aws.Config{}, NewAWSError(ErrConfigurationError, "", "",
			fmt.Sprintf("no region configured for profile %q; pass --region", profileName(opts.Profile)), nil)
	}
	return cfg, nil
}

// NewClientSetFromConfig constructs every service client from cfg
func NewClientSetFromConfig(cfg aws.Config) *ClientSet {
	return &ClientSet{
		RDS:    rds.NewFromConfig(cfg),
		EC2:    ec2.NewFromConfig(cfg),
		S3:     s3.NewFromConfig(cfg),
		STS:    sts.NewFromConfig(cfg),
		Region: cfg.Region,
	}
}

// NewClientSet loads the configuration, constructs the clients and verifies
// the credential before any audit call is made.
func NewClientSet(ctx context.Context, opts ClientOptions, logger logging.Logger) (*ClientSet, error) {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	clients := NewClientSetFromConfig(cfg)
	if err := clients.VerifyIdentity(ctx, logger); err != nil {
		return nil, err
	}
	return clients, nil
}

// VerifyIdentity calls GetCallerIdentity and records the account id
func (c *ClientSet) VerifyIdentity(ctx context.Context, logger logging.Logger) error {
	resp, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ClassifyAWSError(err, STSResourceType, "")
	}

	c.AccountID = aws.ToString(resp.Account)
	logger.Info("Authenticated as %s in account %s (%s)", aws.ToString(resp.Arn), c.AccountID, c.Region)
	return nil
}

func profileName(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
