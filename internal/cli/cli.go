package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/gi8lino/jiraterm/internal/logging"

	"github.com/containeroo/tinyflags"
)

// Defaults shared with the original CLI surface.
const (
	DefaultWidth      = 100 // output width for wrapping text
	DefaultMaxResults = 20  // max results per search
)

// Command aggregates the parsed subcommand and all flags of one invocation.
type Command struct {
	Name string // "issue", "search", "comments" or "" for the bare program

	Key string // issue/comments positional argument
	JQL string // search positional argument

	Scope         string // -p: project key or profile name
	MaxResults    int    // -n: bound for the API fetch
	Describe      bool   // print descriptions in listings
	NoDescription bool   // suppress description on single-issue view
	ShowComments  bool   // append comment thread to single-issue view
	Filter        string // local field:value filter expression
	Columns       string // comma-separated column names
	Width         int    // terminal width for tables and wrapping
	Template      string // Go template rendered per issue instead of a table

	// Global flags
	ConfigPath string
	Profile    string
	Dump       bool
	ASCII      bool
	Examples   bool
	Insecure   bool
	Debug      bool
	LogFormat  logging.LogFormat
}

// ParseArgs parses CLI arguments into a Command, dispatching on the first
// non-flag argument as the subcommand name.
func ParseArgs(version string, args []string, out io.Writer, getEnv func(string) string) (Command, error) {
	cmd := Command{Width: DefaultWidth, MaxResults: DefaultMaxResults}

	name := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name = args[0]
		args = args[1:]
	}

	switch name {
	case "":
		return parseRoot(version, args, out, getEnv, cmd)
	case "issue":
		return parseIssue(args, out, getEnv, cmd)
	case "search":
		return parseSearch(args, out, getEnv, cmd)
	case "comments":
		return parseComments(args, out, getEnv, cmd)
	default:
		return Command{}, fmt.Errorf("unknown command %q (known: issue, search, comments)", name)
	}
}

// newFlagSet builds a flag set with shared environment handling.
func newFlagSet(name string, out io.Writer, getEnv func(string) string) *tinyflags.FlagSet {
	tf := tinyflags.NewFlagSet(name, tinyflags.ContinueOnError)
	tf.SetGetEnvFn(getEnv)
	tf.EnvPrefix("JIRATERM")
	tf.SetOutput(out)
	return tf
}

// registerCommon adds the flags every subcommand accepts. The returned
// function must be called after Parse to finish assignment.
func registerCommon(tf *tinyflags.FlagSet, cmd *Command) func() {
	tf.StringVar(&cmd.ConfigPath, "config", "", "Path to config file (overrides the default search)").Value()
	tf.StringVar(&cmd.Profile, "profile", "", "Configuration profile to use").Value()
	tf.BoolVar(&cmd.ASCII, "ascii", false, "Disable terminal styling").Value()
	tf.BoolVar(&cmd.Insecure, "insecure", false, "Skip TLS certificate verification").Value()
	tf.BoolVar(&cmd.Debug, "debug", false, "Enable debug logging").Value()
	logFormat := tf.String("log-format", "text", "Log format").Choices("text", "json").Short("l").Value()

	return func() {
		cmd.LogFormat = logging.LogFormat(*logFormat)
	}
}

// parseRoot handles the bare program: global flags like --dump and --examples.
func parseRoot(version string, args []string, out io.Writer, getEnv func(string) string, cmd Command) (Command, error) {
	tf := newFlagSet("jiraterm", out, getEnv)
	tf.Version(version)

	tf.BoolVar(&cmd.Dump, "dump", false, "Print resolved configuration (token redacted) and exit").Value()
	tf.BoolVar(&cmd.Examples, "examples", false, "Print usage examples and exit").Value()
	finish := registerCommon(tf, &cmd)

	if err := tf.Parse(args); err != nil {
		return Command{}, err
	}
	finish()

	return cmd, nil
}

// parseIssue handles `issue [KEY]` with its listing and detail flags.
func parseIssue(args []string, out io.Writer, getEnv func(string) string, cmd Command) (Command, error) {
	cmd.Name = "issue"
	cmd.Key, args = takePositional(args)

	tf := newFlagSet("jiraterm issue", out, getEnv)
	tf.StringVar(&cmd.Scope, "project", "", "Project key or profile name to scope the listing").Short("p").Placeholder("PROJECT").Value()
	tf.IntVar(&cmd.MaxResults, "max-results", DefaultMaxResults, "Max results to return").Short("n").Value()
	tf.BoolVar(&cmd.Describe, "describe", false, "Also print descriptions when listing").Value()
	tf.BoolVar(&cmd.NoDescription, "no-description", false, "Do not show the issue description").Value()
	tf.BoolVar(&cmd.ShowComments, "show-comments", false, "Also print the comment thread").Value()
	tf.StringVar(&cmd.Filter, "filter", "", `Local filter, e.g. 'status:"In Progress",labels:web'`).Placeholder("EXPR").Value()
	tf.StringVar(&cmd.Columns, "columns", "", "Comma-separated listing columns").Short("c").Placeholder("COLS").Value()
	tf.IntVar(&cmd.Width, "width", DefaultWidth, "Output width for wrapping text").Value()
	tf.StringVar(&cmd.Template, "template", "", "Go template rendered per issue instead of a table").Value()
	finish := registerCommon(tf, &cmd)

	if err := tf.Parse(args); err != nil {
		return Command{}, err
	}
	finish()

	return cmd, nil
}

// parseSearch handles `search JQL`.
func parseSearch(args []string, out io.Writer, getEnv func(string) string, cmd Command) (Command, error) {
	cmd.Name = "search"
	cmd.JQL, args = takePositional(args)

	tf := newFlagSet("jiraterm search", out, getEnv)
	tf.IntVar(&cmd.MaxResults, "max-results", DefaultMaxResults, "Max results to return").Short("n").Value()
	tf.BoolVar(&cmd.Describe, "describe", false, "Also print descriptions for each issue").Value()
	tf.StringVar(&cmd.Filter, "filter", "", `Local filter, e.g. 'status:"Done"'`).Placeholder("EXPR").Value()
	tf.StringVar(&cmd.Columns, "columns", "", "Comma-separated listing columns").Short("c").Placeholder("COLS").Value()
	tf.IntVar(&cmd.Width, "width", DefaultWidth, "Output width for wrapping text").Value()
	tf.StringVar(&cmd.Template, "template", "", "Go template rendered per issue instead of a table").Value()
	finish := registerCommon(tf, &cmd)

	if err := tf.Parse(args); err != nil {
		return Command{}, err
	}
	finish()

	if cmd.JQL == "" {
		return Command{}, fmt.Errorf("search requires a JQL argument, e.g. jiraterm search 'project = ABC'")
	}
	return cmd, nil
}

// parseComments handles `comments KEY`.
func parseComments(args []string, out io.Writer, getEnv func(string) string, cmd Command) (Command, error) {
	cmd.Name = "comments"
	cmd.Key, args = takePositional(args)

	tf := newFlagSet("jiraterm comments", out, getEnv)
	tf.IntVar(&cmd.Width, "width", DefaultWidth, "Output width for wrapping text").Value()
	finish := registerCommon(tf, &cmd)

	if err := tf.Parse(args); err != nil {
		return Command{}, err
	}
	finish()

	if cmd.Key == "" {
		return Command{}, fmt.Errorf("comments requires an issue key, e.g. jiraterm comments ABC-123")
	}
	return cmd, nil
}

// takePositional pops a leading non-flag argument, if present.
func takePositional(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}
