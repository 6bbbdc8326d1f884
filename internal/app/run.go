package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gi8lino/jiraterm/internal/cli"
	"github.com/gi8lino/jiraterm/internal/config"
	"github.com/gi8lino/jiraterm/internal/jira"
	"github.com/gi8lino/jiraterm/internal/logging"
	"github.com/gi8lino/jiraterm/internal/render"
	"github.com/gi8lino/jiraterm/internal/utils"

	"github.com/containeroo/tinyflags"
)

// requestTimeout bounds every API call of an invocation.
const requestTimeout = 30 * time.Second

// Run executes one jiraterm invocation: parse flags, resolve configuration,
// perform the API calls of the selected subcommand, and render to out.
func Run(ctx context.Context, version, commit string, args []string, out, errOut io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse command-line flags
	cmd, err := cli.ParseArgs(version, args, out, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(out, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger
	logger := logging.SetupLogger(cmd.LogFormat, cmd.Debug, errOut)
	logger.Debug("starting jiraterm", "version", version, "commit", commit)

	resolver := config.Resolver{Path: cmd.ConfigPath, GetEnv: getEnv}

	// Global commands that never hit the API
	if cmd.Name == "" {
		switch {
		case cmd.Examples:
			cli.PrintExamples(out)
			return nil
		case cmd.Dump:
			return dumpConfig(resolver, cmd, out)
		default:
			return fmt.Errorf("no command given (issue, search, comments); run with --help")
		}
	}

	// Resolve configuration and the project scope of the invocation
	cfg, project, err := resolveScope(resolver, cmd)
	if err != nil {
		return err
	}

	client, err := newClient(cfg, cmd.Insecure, logger)
	if err != nil {
		return err
	}

	styles := render.NewStyles(cmd.ASCII)

	switch cmd.Name {
	case "issue":
		return runIssue(ctx, client, cmd, project, out, styles)
	case "search":
		return runSearch(ctx, client, cmd, out, styles)
	case "comments":
		return runComments(ctx, client, cmd, out, styles)
	}
	return nil
}

// resolveScope resolves the Config and the project key bounding listings.
// The -p argument is tried as a profile name first; when no profile matches
// it is treated as a project key against the default profile.
func resolveScope(r config.Resolver, cmd cli.Command) (config.Config, string, error) {
	if cmd.Scope != "" {
		cfg, err := r.Resolve(cmd.Scope)
		if err == nil {
			return cfg, cfg.Project, nil
		}
		if !errors.Is(err, config.ErrUnknownProfile) {
			return config.Config{}, "", err
		}

		cfg, err = r.Resolve(cmd.Profile)
		if err != nil {
			return config.Config{}, "", err
		}
		return cfg, cmd.Scope, nil
	}

	cfg, err := r.Resolve(cmd.Profile)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, cfg.Project, nil
}

// newClient builds the authenticated Jira client from a resolved Config.
func newClient(cfg config.Config, insecure bool, logger *slog.Logger) (*jira.Client, error) {
	apiURL, err := url.Parse(cfg.Endpoint + "/rest/api/3/")
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}

	var auth jira.AuthFunc
	var method string
	if cfg.AuthMode == config.AuthPAT {
		auth, method, err = jira.ResolveAuth(cfg.Token, "", "")
	} else {
		auth, method, err = jira.ResolveAuth("", cfg.User, cfg.Token)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("jira auth",
		"method", method,
		"header", utils.ObfuscateHeader(utils.GetAuthorizationHeader(auth)),
	)

	return jira.NewClient(apiURL, auth, insecure, requestTimeout), nil
}

// dumpConfig prints the resolved configuration with the token redacted.
func dumpConfig(r config.Resolver, cmd cli.Command, out io.Writer) error {
	cfg, err := r.Resolve(cmd.Profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Endpoint: %s\n", cfg.Endpoint)
	fmt.Fprintf(out, "User: %s\n", cfg.User)
	fmt.Fprintf(out, "Project: %s\n", cfg.Project)
	fmt.Fprintf(out, "Auth: %s\n", cfg.AuthMode)
	fmt.Fprintf(out, "Token: %s\n", utils.RedactToken(cfg.Token))
	return nil
}
