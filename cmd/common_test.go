// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"git.sr.ht/~wombelix/putparam/internal/aws"
	"git.sr.ht/~wombelix/putparam/internal/tags"
)

// testSetup provides common test setup functionality
type testSetup struct {
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	tmpDir     string
	mock       *aws.MockSSMClient
	clientOpts []aws.Options
}

// setupTest isolates HOME, the working directory and the tag search path in
// a temporary directory, resets all flags and installs a mock SSM client.
func setupTest(t *testing.T) *testSetup {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	origNewClient := aws.NewClient
	origTagDirs := tagDirs
	origLogger := slog.Default()

	ts := &testSetup{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		tmpDir: tmpDir,
		mock:   &aws.MockSSMClient{},
	}

	aws.NewClient = func(ctx context.Context, opts aws.Options) (*aws.Client, error) {
		ts.clientOpts = append(ts.clientOpts, opts)
		return &aws.Client{SSMClient: ts.mock}, nil
	}
	tagDirs = []string{tmpDir}

	rootCmd.ResetFlags()
	registerFlags(rootCmd)
	rootCmd.SetOut(ts.stdout)
	rootCmd.SetErr(ts.stderr)

	t.Cleanup(func() {
		aws.NewClient = origNewClient
		tagDirs = origTagDirs
		slog.SetDefault(origLogger)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		if err := os.Chdir(origWd); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})

	return ts
}

// run executes the root command with args.
func (ts *testSetup) run(args ...string) error {
	rootCmd.SetArgs(args)
	return Execute()
}

// setupTagsFile writes a tag configuration file to the search directory.
func (ts *testSetup) setupTagsFile(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(ts.tmpDir, tags.DefaultFileName), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write tags file: %v", err)
	}
}

// setupConfigFile creates a test configuration file in the working directory
func (ts *testSetup) setupConfigFile(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(ts.tmpDir, ".putparam.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}
