package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/containeroo/resolver"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config file locations, searched in order. First file found wins.
const (
	dotfileName = ".config.yml"
	homeRelPath = ".config/jiraterm/config.yml"
)

// Environment variables consulted when no config file is found.
const (
	EnvBaseURL    = "JIRA_BASE_URL"
	EnvEmail      = "JIRA_EMAIL"
	EnvAPIToken   = "JIRA_API_TOKEN"
	EnvProject    = "JIRA_DEFAULT_PROJECT"
	EnvAuthMethod = "JIRA_AUTH_METHOD"
)

// Resolver locates and resolves connection configuration from layered
// sources: an explicit path, the working-directory dotfile, a fixed file
// under the home directory, and finally environment variables (with an
// optional .env overlay).
type Resolver struct {
	Path    string              // explicit config file path, skips searching
	WorkDir string              // defaults to "."
	HomeDir string              // defaults to os.UserHomeDir()
	GetEnv  func(string) string // defaults to os.Getenv
}

// Resolve returns the Config for the given profile name. An empty profile
// selects the declared default (or the first declared profile) in
// multi-profile files and is ignored for legacy flat files.
func (r Resolver) Resolve(profile string) (Config, error) {
	if r.WorkDir == "" {
		r.WorkDir = "."
	}
	if r.GetEnv == nil {
		r.GetEnv = os.Getenv
	}

	lookup := r.envLookup()

	path, found := r.findFile()
	if !found {
		if profile != "" {
			return Config{}, &ConfigError{
				msg: fmt.Sprintf("profile %q not found: no config file", profile),
				err: ErrUnknownProfile,
			}
		}
		return r.fromEnv(lookup)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, newConfigError("read config: %v", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, newConfigError("invalid config %s: %v", path, err)
	}

	raw, err := selectProfile(&fc, profile)
	if err != nil {
		return Config{}, err
	}

	return r.build(raw, lookup)
}

// findFile returns the config file to use, if any.
func (r Resolver) findFile() (string, bool) {
	var candidates []string
	if r.Path != "" {
		candidates = []string{r.Path}
	} else {
		candidates = []string{filepath.Join(r.WorkDir, dotfileName)}
		if home := r.homeDir(); home != "" {
			candidates = append(candidates, filepath.Join(home, homeRelPath))
		}
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// homeDir returns the configured or detected home directory.
func (r Resolver) homeDir() string {
	if r.HomeDir != "" {
		return r.HomeDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// selectProfile picks the profile to use from the file, honoring explicit
// names (case-insensitive), the declared default, and declaration order.
func selectProfile(fc *fileConfig, name string) (profileConfig, error) {
	if !fc.isMultiProfile() {
		if name != "" {
			return profileConfig{}, &ConfigError{
				msg: fmt.Sprintf("profile %q not found: config file has no profiles", name),
				err: ErrUnknownProfile,
			}
		}
		return profileConfig{
			Endpoint: fc.Endpoint,
			User:     fc.User,
			Token:    fc.Token,
			Project:  fc.Project,
			Auth:     fc.Auth,
		}, nil
	}

	entries, err := fc.profiles()
	if err != nil {
		return profileConfig{}, newConfigError("%v", err)
	}
	if len(entries) == 0 {
		return profileConfig{}, newConfigError("config file declares an empty projects section")
	}

	pick := name
	if pick == "" {
		pick = fc.Default
	}
	if pick == "" {
		return entries[0].profileConfig, nil
	}

	for _, e := range entries {
		if strings.EqualFold(e.Name, pick) {
			return e.profileConfig, nil
		}
	}

	if name == "" {
		// a default that names nothing is a broken file, not a lookup miss
		return profileConfig{}, newConfigError("default profile %q not declared in projects", fc.Default)
	}
	return profileConfig{}, &ConfigError{
		msg: fmt.Sprintf("profile %q not found", name),
		err: ErrUnknownProfile,
	}
}

// build finalizes a raw profile: per-field env fallback, token dereference,
// auth mode, and required-field validation.
func (r Resolver) build(raw profileConfig, lookup func(string) string) (Config, error) {
	if raw.Endpoint == "" {
		raw.Endpoint = lookup(EnvBaseURL)
	}
	if raw.User == "" {
		raw.User = lookup(EnvEmail)
	}
	if raw.Token == "" {
		raw.Token = lookup(EnvAPIToken)
	}
	if raw.Project == "" {
		raw.Project = lookup(EnvProject)
	}
	if raw.Auth == "" {
		raw.Auth = lookup(EnvAuthMethod)
	}

	mode, err := parseAuthMode(raw.Auth)
	if err != nil {
		return Config{}, err
	}

	token := raw.Token
	if token != "" {
		resolved, err := resolver.ResolveVariable(token)
		if err != nil {
			return Config{}, newConfigError("resolve token: %v", err)
		}
		token = strings.TrimSpace(resolved)
	}

	cfg := Config{
		Endpoint: strings.TrimRight(raw.Endpoint, "/"),
		User:     raw.User,
		Token:    token,
		Project:  raw.Project,
		AuthMode: mode,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fromEnv resolves configuration purely from environment variables.
func (r Resolver) fromEnv(lookup func(string) string) (Config, error) {
	return r.build(profileConfig{}, lookup)
}

// envLookup returns an environment lookup that falls back to a .env file
// in the working directory when the process environment has no value.
func (r Resolver) envLookup() func(string) string {
	var dotenv map[string]string
	loaded := false

	return func(key string) string {
		if v := r.GetEnv(key); v != "" {
			return v
		}
		if !loaded {
			loaded = true
			dotenv, _ = godotenv.Read(filepath.Join(r.WorkDir, ".env"))
		}
		return dotenv[key]
	}
}

// parseAuthMode maps the auth field (or JIRA_AUTH_METHOD) to an AuthMode.
func parseAuthMode(s string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return AuthBasic, nil
	case "pat", "bearer":
		return AuthPAT, nil
	default:
		return "", newConfigError("invalid auth mode %q: must be basic or pat", s)
	}
}

// validate checks required fields, collecting every missing one.
func (c Config) validate() error {
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, EnvBaseURL+"/endpoint")
	}
	if c.User == "" && c.AuthMode == AuthBasic {
		missing = append(missing, EnvEmail+"/user")
	}
	if c.Token == "" {
		missing = append(missing, EnvAPIToken+"/token")
	}

	if len(missing) > 0 {
		return newConfigError("missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
