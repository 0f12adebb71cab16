// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type testEnv struct {
	tmpDir string
	origWd string
}

func setupTestEnv(t *testing.T) *testEnv {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	return &testEnv{tmpDir: tmpDir, origWd: origWd}
}

func (te *testEnv) cleanup(t *testing.T) {
	if err := os.Chdir(te.origWd); err != nil {
		t.Errorf("Failed to change back to original directory: %v", err)
	}
}

func (te *testEnv) workDir(t *testing.T) string {
	dir := filepath.Join(te.tmpDir, "work")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	te := setupTestEnv(t)
	t.Cleanup(func() { te.cleanup(t) })

	homeContent := []byte(`
region: eu-central-1
profile: home
role: arn:aws:iam::123456789012:role/home
kms: alias/home-key
provisioner: Jenkins
`)
	if err := os.WriteFile(filepath.Join(te.tmpDir, FileName), homeContent, 0644); err != nil {
		t.Fatalf("Failed to write home config: %v", err)
	}

	work := te.workDir(t)
	localContent := []byte(`
region: us-west-2
kms: alias/local-key
tags_file: tags.json
`)
	if err := os.WriteFile(filepath.Join(work, FileName), localContent, 0644); err != nil {
		t.Fatalf("Failed to write local config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := &Config{
		Region:      "us-west-2",
		Profile:     "home",
		Role:        "arn:aws:iam::123456789012:role/home",
		KMS:         "alias/local-key",
		TagsFile:    "tags.json",
		Provisioner: "Jenkins",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigNoFiles(t *testing.T) {
	te := setupTestEnv(t)
	t.Cleanup(func() { te.cleanup(t) })
	te.workDir(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, &Config{}) {
		t.Errorf("LoadConfig() = %+v, want empty config", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "invalid yaml", content: "region: [unclosed"},
		{name: "tags file with path", content: "tags_file: ../tags.json", wantErr: ErrInvalidConfig},
		{name: "profile with whitespace", content: "profile: ' ci '", wantErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := setupTestEnv(t)
			t.Cleanup(func() { te.cleanup(t) })
			work := te.workDir(t)

			if err := os.WriteFile(filepath.Join(work, FileName), []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("LoadConfig() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeForLog(t *testing.T) {
	got := sanitizeForLog("a\nb\rc\td\x1be")
	if got != "abcde" {
		t.Errorf("sanitizeForLog() = %q, want %q", got, "abcde")
	}
}
