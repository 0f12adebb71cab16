// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package tags loads the deployment tags attached to a new parameter.
//
// Tags come from the "Tags" object of a template-configuration.json file, the
// file SAM and CloudFormation pipelines already keep next to the template.
// Values may reference environment variables as $NAME$ placeholders:
//
//	{
//	  "Tags": {
//	    "Environment": "$DEPLOY_ENVIRONMENT$",
//	    "Deploy": "$PREFIX$ - $DEPLOY_ENVIRONMENT$"
//	  }
//	}
//
// A missing or broken file never fails the load. The provenance tags
// Provisioner and DeployedUsing are always present exactly once.
package tags

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/gjson"
)

const (
	// DefaultFileName is the tag configuration file searched for.
	DefaultFileName = "template-configuration.json"

	// KeyProvisioner names the tool that provisioned the parameter.
	KeyProvisioner = "Provisioner"
	// KeyDeployedUsing names the script that stored the parameter.
	KeyDeployedUsing = "DeployedUsing"

	// DefaultProvisioner is the Provisioner value unless configured otherwise.
	DefaultProvisioner = "CodeBuild"
)

var (
	// ErrInvalidJSON is returned by Parse when the file is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrNoTags is returned by Parse when the document has no top-level Tags object.
	ErrNoTags = errors.New("no Tags object")

	placeholderRegex = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)\$`)
)

// Tag is a single key/value pair.
type Tag struct {
	Key   string
	Value string
}

// List is an ordered set of tags.
type List []Tag

// Set overwrites the value of the tag with key, or appends it.
func (l *List) Set(key, value string) {
	for i := range *l {
		if (*l)[i].Key == key {
			(*l)[i].Value = value
			return
		}
	}
	*l = append(*l, Tag{Key: key, Value: value})
}

// Loader finds and parses the tag configuration file.
type Loader struct {
	// FileName defaults to DefaultFileName.
	FileName string
	// Dirs are searched in order; defaults to the current directory and its parent.
	Dirs []string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Logger receives warnings; defaults to slog.Default().
	Logger *slog.Logger

	Provisioner   string
	DeployedUsing string
}

// DeployedUsingValue names the given program as the creator.
func DeployedUsingValue(program string) string {
	return "Build Script " + filepath.Base(program)
}

// Load returns the configured tags followed by the provenance tags.
func (l *Loader) Load() List {
	logger := l.logger()
	name := l.fileName()

	var list List
	path, ok := l.find()
	if !ok {
		logger.Warn("Tag configuration not found in current or parent directory, using default tags", "file", name)
	} else {
		logger.Debug("Found tag configuration", "path", path)
		parsed, err := l.loadFile(path)
		if err != nil {
			logger.Warn("Could not read tags from configuration, using default tags", "path", path, "error", err)
		} else {
			list = parsed
		}
	}

	provisioner := l.Provisioner
	if provisioner == "" {
		provisioner = DefaultProvisioner
	}
	deployedUsing := l.DeployedUsing
	if deployedUsing == "" {
		deployedUsing = DeployedUsingValue(os.Args[0])
	}
	list.Set(KeyProvisioner, provisioner)
	list.Set(KeyDeployedUsing, deployedUsing)

	return list
}

func (l *Loader) loadFile(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, l.lookupEnv(), l.logger())
}

// Parse extracts the Tags object from a configuration document, substituting
// placeholders in string values. Entries keep their document order; a
// repeated key keeps its first position and its last value.
func Parse(data []byte, lookup func(string) (string, bool), logger *slog.Logger) (List, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrNoTags
	}
	tagsObj := doc.Get("Tags")
	if !tagsObj.IsObject() {
		return nil, ErrNoTags
	}

	var list List
	tagsObj.ForEach(func(key, value gjson.Result) bool {
		v := value.Raw
		if value.Type == gjson.String {
			var missing []string
			v, missing = Expand(value.Str, lookup)
			for _, name := range missing {
				logger.Warn("Environment variable not found, keeping placeholder", "variable", name, "tag", key.String())
			}
		}
		list.Set(key.String(), v)
		return true
	})

	return list, nil
}

// Expand replaces every $NAME$ placeholder whose variable is set. The scan is
// a single pass over the original text; substituted values are not
// re-scanned. Names of unset variables are returned once each, in order.
func Expand(s string, lookup func(string) (string, bool)) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := placeholderRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		if v, ok := lookup(name); ok {
			return v
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}

func (l *Loader) find() (string, bool) {
	dirs := l.Dirs
	if len(dirs) == 0 {
		dirs = []string{".", ".."}
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, l.fileName())
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func (l *Loader) fileName() string {
	if l.FileName == "" {
		return DefaultFileName
	}
	return l.FileName
}

func (l *Loader) lookupEnv() func(string) (string, bool) {
	if l.LookupEnv == nil {
		return os.LookupEnv
	}
	return l.LookupEnv
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}
