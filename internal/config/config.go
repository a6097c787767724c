package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkaran/relpub/internal/validator"
)

// ConfigFileName is the default name of the publisher configuration file.
const ConfigFileName = "relpub.yml"

// ConfigEnvVar names an environment variable which, when set, points at the
// configuration file to use.
const ConfigEnvVar = "RELPUB_CONFIG"

const DefaultConfigContent = `# Release Publisher Configuration

# REPOSITORY
#
# The forge repository the release is published to. The named remote is
# repointed at this URL on every run, so the file is the single source of
# truth for where releases go.
repositoryUrl: "https://example.com/your-org/your-repo.git"
remote: "origin"
branch: "main"

# RELEASE
#
# The release tag is force-moved to the current commit on every run:
# re-publishing the same logical version moves the tag rather than failing.
tag: "v0.1"

# ARTIFACT
#
# Path to the prebuilt archive to attach, resolved relative to this file's
# directory. relpub never builds the artifact itself; if it is missing the
# run aborts before anything is pushed.
asset: "dist/app.zip"

# Shown verbatim when the asset is missing. List the exact commands a
# developer should run to produce it.
buildHint:
  - "go run scripts/build/main.go"

release:
  title: "v0.1"
  notes: "Prebuilt release archive. See the changelog for details."
`

// configSchemaID is the id the embedded schema is registered under.
const configSchemaID = "relpub://config.schema.json"

// configSchema validates the decoded configuration document before any
// field-level checks run, so typos and unknown keys fail loudly.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["repositoryUrl", "tag", "asset"],
  "additionalProperties": false,
  "properties": {
    "repositoryUrl": {"type": "string", "minLength": 1},
    "remote": {"type": "string", "minLength": 1},
    "branch": {"type": "string", "minLength": 1},
    "tag": {"type": "string", "minLength": 1},
    "asset": {"type": "string", "minLength": 1},
    "buildHint": {"type": "array", "items": {"type": "string"}},
    "release": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "title": {"type": "string"},
        "notes": {"type": "string"}
      }
    }
  }
}`

// ReleaseConfig holds the metadata attached to the hosted release.
type ReleaseConfig struct {
	Title string `yaml:"title"`
	Notes string `yaml:"notes"`
}

type Config struct {
	RepositoryURL string        `yaml:"repositoryUrl"`
	Remote        string        `yaml:"remote"`
	Branch        string        `yaml:"branch"`
	Tag           string        `yaml:"tag"`
	Asset         string        `yaml:"asset"`
	BuildHint     []string      `yaml:"buildHint"`
	Release       ReleaseConfig `yaml:"release"`

	// baseDir is the directory containing the config file. All relative
	// paths (the asset in particular) resolve against it, so the publisher
	// behaves the same regardless of the caller's working directory.
	baseDir string
}

// Load reads, schema-validates and field-validates the configuration at path.
func Load(path string, compiler validator.Compiler) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &MissingConfigError{Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if vErr := validateDocument(data, compiler); vErr != nil {
		return nil, vErr
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, &InvalidYAMLError{Wrapped: err}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	config.baseDir = filepath.Dir(absPath)

	if vErr := config.Validate(); vErr != nil {
		return nil, vErr
	}

	return &config, nil
}

// validateDocument checks the raw YAML against the embedded JSON schema.
// The document is round-tripped through encoding/json so the instance the
// compiler sees carries JSON-native types.
func validateDocument(data []byte, compiler validator.Compiler) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &InvalidYAMLError{Wrapped: err}
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return &InvalidYAMLError{Wrapped: err}
	}
	var instance any
	if err := json.Unmarshal(jsonData, &instance); err != nil {
		return &InvalidYAMLError{Wrapped: err}
	}

	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return err
	}
	if err := compiler.AddSchema(configSchemaID, schemaDoc); err != nil {
		return err
	}
	v, err := compiler.Compile(configSchemaID)
	if err != nil {
		return err
	}

	if err := v.Validate(instance); err != nil {
		return &SchemaViolationError{Wrapped: err}
	}
	return nil
}

// Validate applies defaults and checks fields the JSON schema cannot express.
func (c *Config) Validate() error {
	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.Branch == "" {
		c.Branch = "main"
	}
	if c.Release.Title == "" {
		c.Release.Title = c.Tag
	}

	if err := validateRepositoryURL("repositoryUrl", c.RepositoryURL); err != nil {
		return err
	}
	return nil
}

// BaseDir returns the directory containing the config file.
func (c *Config) BaseDir() string {
	return c.baseDir
}

// AssetPath resolves the configured asset path against the config directory.
func (c *Config) AssetPath() string {
	if filepath.IsAbs(c.Asset) {
		return c.Asset
	}
	return filepath.Join(c.baseDir, c.Asset)
}

// validateRepositoryURL accepts https and ssh URLs plus scp-like
// "git@host:path" syntax, the forms git itself accepts for a remote.
func validateRepositoryURL(prop, val string) error {
	if strings.Contains(val, "@") && strings.Contains(val, ":") && !strings.Contains(val, "://") {
		return nil
	}

	u, pErr := url.Parse(val)
	if pErr != nil {
		return &InvalidURLError{Property: prop, Value: val, Wrapped: pErr}
	}
	if u.Scheme != "https" && u.Scheme != "ssh" {
		return &InvalidURLError{
			Property: prop,
			Value:    val,
			Wrapped:  fmt.Errorf("scheme must be https or ssh"),
		}
	}
	return nil
}
