// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package validation rejects malformed parameter names, regions, KMS keys and
// role ARNs before any AWS client is built.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxParameterNameLength is the longest fully qualified name SSM accepts.
const MaxParameterNameLength = 1011

var (
	parameterNameRegex = regexp.MustCompile(`^/[a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)*$`)
	regionRegex        = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
	kmsKeyIDRegex      = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	kmsAliasRegex      = regexp.MustCompile(`^alias/[a-zA-Z0-9/_-]+$`)
	kmsArnRegex        = regexp.MustCompile(`^arn:aws:kms:[a-z]{2}(-[a-z]+)+-\d:\d{12}:(key/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}|alias/[a-zA-Z0-9/_-]+)$`)
	roleArnRegex       = regexp.MustCompile(`^arn:aws:iam::\d{12}:role/[a-zA-Z0-9+=,.@_-]+(/[a-zA-Z0-9+=,.@_-]+)*$`)
)

// ValidateParameterName accepts only fully qualified hierarchical names such as
// /app/db/password: a leading slash, non-empty segments of letters, digits,
// '.', '_' or '-', and at most MaxParameterNameLength characters.
func ValidateParameterName(name string) error {
	if name == "" {
		return fmt.Errorf("parameter name cannot be empty")
	}
	if !strings.HasPrefix(name, "/") {
		return fmt.Errorf("parameter name must start with '/'")
	}
	if strings.HasSuffix(name, "/") {
		return fmt.Errorf("parameter name must not end with '/'")
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("parameter name must not contain consecutive '/'")
	}
	if len(name) > MaxParameterNameLength {
		return fmt.Errorf("parameter name exceeds %d characters", MaxParameterNameLength)
	}
	if !parameterNameRegex.MatchString(name) {
		return fmt.Errorf("invalid parameter name format: %s", name)
	}
	return nil
}

// ValidateRegion accepts names shaped like eu-central-1. An empty region is
// left to the SDK to resolve.
func ValidateRegion(region string) error {
	if region == "" {
		return nil
	}
	if !regionRegex.MatchString(region) {
		return fmt.Errorf("invalid region format: %s", region)
	}
	return nil
}

// ValidateKMSKey accepts a key ID, an alias, or a key or alias ARN. An empty
// key means the account's default aws/ssm key.
func ValidateKMSKey(key string) error {
	if key == "" {
		return nil
	}

	if kmsKeyIDRegex.MatchString(key) || kmsAliasRegex.MatchString(key) || kmsArnRegex.MatchString(key) {
		return nil
	}

	return fmt.Errorf("invalid KMS key format: %s", key)
}

// ValidateRoleARN accepts arn:aws:iam::<12 digit account>:role/<path/name>.
// An empty ARN means no role is assumed.
func ValidateRoleARN(arn string) error {
	if arn == "" {
		return nil
	}
	if !roleArnRegex.MatchString(arn) {
		return fmt.Errorf("invalid role ARN format: %s", arn)
	}
	return nil
}
