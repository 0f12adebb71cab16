// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package aws wraps the SSM Parameter Store calls used by putparam.
//
// The only mutating call is PutParameter with Overwrite disabled, and it is
// issued only after GetParameter reported the parameter as not found.
package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	perrors "git.sr.ht/~wombelix/putparam/internal/errors"
	"git.sr.ht/~wombelix/putparam/internal/tags"
)

// SSMAPI defines the interface for AWS SSM operations
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// Client represents an AWS SSM client
type Client struct {
	SSMClient SSMAPI
}

// Options select the credentials and region of a Client. Empty fields fall
// back to the SDK's environment and shared config conventions.
type Options struct {
	Region  string
	Profile string
	Role    string
}

// NewClientFunc is the type for the client creation function
type NewClientFunc func(context.Context, Options) (*Client, error)

// DefaultNewClient is the default implementation of NewClientFunc
var DefaultNewClient NewClientFunc = func(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if opts.Role != "" {
		stsClient := sts.NewFromConfig(cfg)
		provider := stscreds.NewAssumeRoleProvider(stsClient, opts.Role)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return &Client{
		SSMClient: ssm.NewFromConfig(cfg),
	}, nil
}

// NewClient is the function used to create new AWS SSM clients
var NewClient = DefaultNewClient

func loadOptions(opts Options) []func(*config.LoadOptions) error {
	var out []func(*config.LoadOptions) error
	if opts.Profile != "" {
		out = append(out, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		out = append(out, config.WithRegion(opts.Region))
	}
	return out
}

// Parameter is a SecureString parameter to create.
type Parameter struct {
	Name     string
	Value    string
	KMSKeyID string
	Tags     tags.List
}

// Outcome reports what Provision did.
type Outcome int

const (
	// OutcomeExists means the parameter was already present and left alone.
	OutcomeExists Outcome = iota
	// OutcomeDryRun means the parameter is absent and would have been created.
	OutcomeDryRun
	// OutcomeCreated means the parameter was created.
	OutcomeCreated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExists:
		return "exists"
	case OutcomeDryRun:
		return "dry-run"
	case OutcomeCreated:
		return "created"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// IsNotFound reports whether err is SSM's ParameterNotFound.
func IsNotFound(err error) bool {
	var pnf *ssmtypes.ParameterNotFound
	if errors.As(err, &pnf) {
		return true
	}
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "ParameterNotFound"
}

// ParameterExists checks for a parameter without decrypting it.
func (c *Client) ParameterExists(ctx context.Context, name string) (bool, error) {
	withDecryption := false
	input := &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &withDecryption,
	}

	_, err := c.SSMClient.GetParameter(ctx, input)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	var ae smithy.APIError
	if errors.As(err, &ae) && ae.ErrorCode() == "AccessDeniedException" {
		return false, &perrors.StoreError{Op: "get parameter", Name: name, Err: fmt.Errorf("AccessDenied: insufficient permissions: %w", err)}
	}
	return false, &perrors.StoreError{Op: "get parameter", Name: name, Err: err}
}

// CreateSecureString creates p as a SecureString. It never overwrites.
func (c *Client) CreateSecureString(ctx context.Context, p Parameter) error {
	overwrite := false
	input := &ssm.PutParameterInput{
		Name:      &p.Name,
		Value:     &p.Value,
		Type:      ssmtypes.ParameterTypeSecureString,
		Overwrite: &overwrite,
		Tags:      toSSMTags(p.Tags),
	}

	if p.KMSKeyID != "" {
		input.KeyId = aws.String(p.KMSKeyID)
	}

	_, err := c.SSMClient.PutParameter(ctx, input)
	if err != nil {
		return &perrors.StoreError{Op: "put parameter", Name: p.Name, Err: err}
	}

	return nil
}

// Provision creates p unless it already exists. With dryRun set the create
// call is skipped and OutcomeDryRun is returned instead.
func (c *Client) Provision(ctx context.Context, p Parameter, dryRun bool) (Outcome, error) {
	exists, err := c.ParameterExists(ctx, p.Name)
	if err != nil {
		return 0, err
	}
	if exists {
		return OutcomeExists, nil
	}
	if dryRun {
		return OutcomeDryRun, nil
	}
	if err := c.CreateSecureString(ctx, p); err != nil {
		return 0, err
	}
	return OutcomeCreated, nil
}

func toSSMTags(list tags.List) []ssmtypes.Tag {
	if len(list) == 0 {
		return nil
	}
	out := make([]ssmtypes.Tag, 0, len(list))
	for _, t := range list {
		out = append(out, ssmtypes.Tag{
			Key:   aws.String(t.Key),
			Value: aws.String(t.Value),
		})
	}
	return out
}
