// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.sr.ht/~wombelix/putparam/internal/aws"
	"git.sr.ht/~wombelix/putparam/internal/config"
	perrors "git.sr.ht/~wombelix/putparam/internal/errors"
	"git.sr.ht/~wombelix/putparam/internal/secret"
	"git.sr.ht/~wombelix/putparam/internal/tags"
	"git.sr.ht/~wombelix/putparam/internal/validation"
	"github.com/spf13/cobra"
)

// request is the parsed command line.
type request struct {
	Name    string
	Source  secret.Source
	DryRun  bool
	Profile string
}

// parseRequest validates the positional argument and the value flags.
func parseRequest(cmd *cobra.Command, args []string) (*request, error) {
	if len(args) == 0 {
		printUsage(cmd)
		return nil, &perrors.UsageError{Message: "missing PARAM_NAME"}
	}
	if len(args) > 1 {
		printUsage(cmd)
		return nil, &perrors.UsageError{Message: fmt.Sprintf("unexpected arguments: %v", args[1:])}
	}

	generate := cmd.Flags().Changed("generate")
	literal := cmd.Flags().Changed("value")
	if generate && literal {
		return nil, &perrors.ConflictError{Flags: []string{"generate", "value"}}
	}

	name := args[0]
	if err := validation.ValidateParameterName(name); err != nil {
		return nil, &perrors.ValidationError{Field: "PARAM_NAME", Err: err}
	}

	req := &request{Name: name, DryRun: dryRun, Profile: profile}
	switch {
	case generate:
		req.Source = secret.Generated(generateBits)
	case literal:
		req.Source = secret.Literal(paramValue)
	default:
		req.Source = secret.Default()
	}
	return req, nil
}

// runCreate resolves the value and tags and creates the parameter.
func runCreate(cmd *cobra.Command, args []string) error {
	req, err := parseRequest(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Warn("Failed to load config", "error", err)
		cfg = &config.Config{}
	}

	// Flags take precedence over the config file
	if req.Profile == "" {
		req.Profile = cfg.Profile
	}
	awsRegion := firstNonEmpty(region, cfg.Region)
	awsRole := firstNonEmpty(role, cfg.Role)
	kmsKeyID := firstNonEmpty(kmsKey, cfg.KMS)

	if err := validation.ValidateRegion(awsRegion); err != nil {
		return &perrors.ValidationError{Field: "region", Err: err}
	}
	if err := validation.ValidateRoleARN(awsRole); err != nil {
		return &perrors.ValidationError{Field: "role", Err: err}
	}
	if err := validation.ValidateKMSKey(kmsKeyID); err != nil {
		return &perrors.ValidationError{Field: "kms", Err: err}
	}

	fmt.Fprintf(out, "Parameter Name: %s\n", req.Name)

	value, err := secret.Resolve(req.Source)
	if err != nil {
		return err
	}
	switch req.Source.Mode {
	case secret.ModeLiteral:
		if req.DryRun {
			fmt.Fprintf(out, "[DRYRUN] Using provided value: %s\n", value)
		} else {
			fmt.Fprintln(out, "Using provided value")
		}
	case secret.ModeGenerated:
		if req.DryRun {
			fmt.Fprintf(out, "[DRYRUN] Generated key of bit length %d: %s\n", req.Source.Bits, value)
		} else {
			fmt.Fprintf(out, "Generated key of bit length %d\n", req.Source.Bits)
		}
	default:
		slog.Warn("No value provided, using placeholder which needs to be replaced with a real value", "value", secret.Placeholder)
		fmt.Fprintf(out, "No value provided. Using default value: '%s' which needs to be replaced with a real value.\n", secret.Placeholder)
	}

	loader := &tags.Loader{
		FileName:      firstNonEmpty(tagsFile, cfg.TagsFile),
		Dirs:          tagDirs,
		Provisioner:   cfg.Provisioner,
		DeployedUsing: tags.DeployedUsingValue(os.Args[0]),
	}
	tagList := loader.Load()

	fmt.Fprintln(out, "Tags to be used:")
	for _, t := range tagList {
		fmt.Fprintf(out, "  %s: %s\n", t.Key, t.Value)
	}

	ctx := context.Background()
	client, err := aws.NewClient(ctx, aws.Options{
		Region:  awsRegion,
		Profile: req.Profile,
		Role:    awsRole,
	})
	if err != nil {
		return fmt.Errorf("failed to create AWS client: %w", err)
	}

	fmt.Fprintf(out, "Checking for SSM Parameter: %s ...\n", req.Name)
	outcome, err := client.Provision(ctx, aws.Parameter{
		Name:     req.Name,
		Value:    value,
		KMSKeyID: kmsKeyID,
		Tags:     tagList,
	}, req.DryRun)
	if err != nil {
		return err
	}

	switch outcome {
	case aws.OutcomeExists:
		fmt.Fprintln(out, "Parameter already exists. Skipping.")
	case aws.OutcomeDryRun:
		fmt.Fprintln(out, "...parameter does not exist...")
		fmt.Fprintf(out, "[DRYRUN] Would store parameter: %s\n", req.Name)
	case aws.OutcomeCreated:
		fmt.Fprintln(out, "...parameter does not exist...")
		fmt.Fprintf(out, "Stored parameter: %s\n", req.Name)
	}
	slog.Debug("Provisioning finished", "parameter", req.Name, "outcome", outcome.String())

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
