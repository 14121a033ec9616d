// Package deploy drives CloudFormation with the rendered template and reads
// deployment state back from the platform.
//
// The driver performs no validation of its own beyond the account preflight:
// invalid names, network misconfiguration, quota limits, and image pull
// failures are all surfaced by the engine at plan or deploy time.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/efs"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
)

// CallerIdentityAPI is the STS surface the account preflight needs.
// *sts.Client satisfies it; tests substitute a stub.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Clients wraps the AWS SDK clients the driver uses.
type Clients struct {
	CloudFormation *cloudformation.Client
	STS            CallerIdentityAPI
	ELBv2          *elbv2.Client
	ECS            *ecs.Client
	EFS            *efs.Client

	logger  zerolog.Logger
	profile string
	region  string
}

// ClientOption allows customizing the Clients.
type ClientOption func(*Clients)

// WithProfile sets the AWS profile for the clients.
func WithProfile(profile string) ClientOption {
	return func(c *Clients) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the clients.
func WithRegion(region string) ClientOption {
	return func(c *Clients) {
		c.region = region
	}
}

// NewClients creates the AWS SDK clients with the given options.
func NewClients(ctx context.Context, logger zerolog.Logger, opts ...ClientOption) (*Clients, error) {
	c := &Clients{logger: logger}

	for _, opt := range opts {
		opt(c)
	}

	var configOpts []func(*config.LoadOptions) error
	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}
	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	c.CloudFormation = cloudformation.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)
	c.ELBv2 = elbv2.NewFromConfig(cfg)
	c.ECS = ecs.NewFromConfig(cfg)
	c.EFS = efs.NewFromConfig(cfg)

	return c, nil
}

// ErrAccountMismatch is returned by Preflight when the caller's account does
// not match the configured target account.
var ErrAccountMismatch = errors.New("caller account does not match configured account")

// Preflight resolves the caller identity and, when expectedAccount is set,
// refuses to proceed against any other account. This is the only
// account-level check the driver performs.
func (c *Clients) Preflight(ctx context.Context, expectedAccount string) (string, error) {
	out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("resolving caller identity: %w", err)
	}
	account := ""
	if out.Account != nil {
		account = *out.Account
	}

	if expectedAccount != "" && account != expectedAccount {
		c.logger.Error().
			Str("caller_account", account).
			Str("configured_account", expectedAccount).
			Msg("account mismatch")
		return account, fmt.Errorf("%w: caller is %s, configured %s", ErrAccountMismatch, account, expectedAccount)
	}

	return account, nil
}
