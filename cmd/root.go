// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package cmd implements the command-line interface for putparam.
//
// putparam is a single cobra command meant to run inside a CI/CD pipeline
// (CodeBuild, for example). It creates one SecureString parameter in SSM
// Parameter Store, tagged from the template-configuration.json next to the
// deployment template, and never overwrites a parameter that already exists.
//
// Flags:
//   - --generate BITS: store a random hex key of BITS bits
//   - --value VALUE: store VALUE as given
//   - --dryrun: check for the parameter but do not create it
//   - --profile, --region, --role: AWS session selection
//   - --kms: KMS key for the SecureString (default: AWS managed key)
//   - --tags-file: name of the tag configuration file
//   - --loglevel: Set logging verbosity (debug, info, warn, error)
//   - --version: Display version information
package cmd

import (
	"fmt"

	perrors "git.sr.ht/~wombelix/putparam/internal/errors"
	"git.sr.ht/~wombelix/putparam/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Build information, set via ldflags during build
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Command-line flags
	logLevel     string
	showVersion  bool
	generateBits int
	paramValue   string
	dryRun       bool
	profile      string
	region       string
	role         string
	kmsKey       string
	tagsFile     string

	// tagDirs are searched in order for the tag configuration file.
	tagDirs = []string{".", ".."}

	rootCmd = &cobra.Command{
		Use:   "putparam PARAM_NAME [--generate BITS | --value VALUE] [--dryrun] [--profile PROFILE]",
		Short: "Create a SecureString parameter in SSM Parameter Store",
		Long: `putparam creates a SecureString parameter in AWS SSM Parameter Store.

The value is either given with --value, generated with --generate BITS
(a random hex key of that many bits), or left as the placeholder 'BLANK'
which must be replaced before real use.

Tags are read from template-configuration.json in the current or parent
directory (common for SAM deployments). $NAME$ placeholders in tag values
are replaced with environment variables. The Provisioner and DeployedUsing
tags are always set.

IT WILL NOT OVERWRITE AN EXISTING PARAMETER. Delete it first, or update it
with the AWS CLI or the console.`,
		Example: `  putparam /webservices/myapp/CacheData_SecureDataKey --generate 256
  putparam /app/Key --value s3cr3t --profile dev --dryrun`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "putparam version %s (commit %s, built on %s)\n", version, commit, date)
				return nil
			}
			return runCreate(cmd, args)
		},
	}
)

func init() {
	registerFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(logLevel, cmd.ErrOrStderr())
		return nil
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		printUsage(cmd)
		return &perrors.UsageError{Message: "invalid arguments", Err: err}
	})
}

// registerFlags declares every flag of the command.
func registerFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&logLevel, "loglevel", "info", "Log level (debug, info, warn, error)")
	f.BoolVar(&showVersion, "version", false, "Show version information")
	f.IntVar(&generateBits, "generate", 0, "Generate a random key with the specified number of bits (mutually exclusive with --value)")
	f.StringVar(&paramValue, "value", "", "Use the provided value directly (mutually exclusive with --generate)")
	f.BoolVar(&dryRun, "dryrun", false, "Check if the parameter exists but don't create it")
	f.StringVar(&profile, "profile", "", "AWS profile to use for the request")
	f.StringVar(&region, "region", "", "AWS region (optional, default: from AWS config or environment)")
	f.StringVar(&role, "role", "", "AWS role ARN to assume (optional)")
	f.StringVar(&kmsKey, "kms", "", "KMS key ID, alias or ARN for the SecureString (optional)")
	f.StringVar(&tagsFile, "tags-file", "", "Tag configuration file name (default: template-configuration.json)")
}

// printUsage writes the usage text to stderr.
func printUsage(cmd *cobra.Command) {
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
