package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AuthMode selects how the client authenticates against Jira.
type AuthMode string

const (
	AuthBasic AuthMode = "basic" // email + API token
	AuthPAT   AuthMode = "pat"   // personal access token (Bearer)
)

// Config is the fully resolved connection configuration for one invocation.
type Config struct {
	Endpoint string   // Jira base URL without trailing slash
	User     string   // account email, empty in PAT mode
	Token    string   // API token or PAT, already dereferenced
	Project  string   // optional default project key
	AuthMode AuthMode // basic or pat
}

// ErrUnknownProfile marks a profile lookup that matched nothing.
var ErrUnknownProfile = errors.New("unknown profile")

// ConfigError reports missing or invalid credentials, profiles or config files.
type ConfigError struct {
	msg string
	err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string { return e.msg }

// Unwrap returns the wrapped error, if any.
func (e *ConfigError) Unwrap() error { return e.err }

// newConfigError builds a ConfigError with a formatted message.
func newConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// fileConfig is the raw on-disk shape. The presence of a "projects" mapping
// tags the file as multi-profile; otherwise the top-level fields form a
// single legacy profile.
type fileConfig struct {
	Endpoint string    `yaml:"endpoint"`
	User     string    `yaml:"user"`
	Token    string    `yaml:"token"`
	Project  string    `yaml:"project"`
	Auth     string    `yaml:"auth"`
	Default  string    `yaml:"default"`
	Projects yaml.Node `yaml:"projects"`
}

// isMultiProfile reports whether the file declares a projects mapping.
func (f *fileConfig) isMultiProfile() bool {
	return !f.Projects.IsZero() && f.Projects.Kind == yaml.MappingNode
}

// profileConfig is one named profile inside a multi-profile file.
type profileConfig struct {
	Endpoint string `yaml:"endpoint"`
	User     string `yaml:"user"`
	Token    string `yaml:"token"`
	Project  string `yaml:"project"`
	Auth     string `yaml:"auth"`
}

// profileEntry pairs a profile with its declared name, preserving file order.
type profileEntry struct {
	Name string
	profileConfig
}

// profiles decodes the projects mapping in declaration order.
func (f *fileConfig) profiles() ([]profileEntry, error) {
	if !f.isMultiProfile() {
		return nil, nil
	}

	// yaml.Node mapping content alternates key and value nodes.
	content := f.Projects.Content
	out := make([]profileEntry, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		var pc profileConfig
		if err := content[i+1].Decode(&pc); err != nil {
			return nil, fmt.Errorf("decode profile %q: %w", content[i].Value, err)
		}
		out = append(out, profileEntry{Name: content[i].Value, profileConfig: pc})
	}
	return out, nil
}
