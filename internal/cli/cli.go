package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnfetch/pkg/observability"
	"github.com/matzehuels/mvnfetch/pkg/pipeline"
	"github.com/matzehuels/mvnfetch/pkg/repository"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mvnfetch"

	// defaultRetryDelay is the first backoff delay between retries.
	defaultRetryDelay = 500 * time.Millisecond
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by --config; empty means the default location.
	configPath string
	out        io.Writer
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mvnfetch downloads a Maven artifact and its dependencies",
		Long: `mvnfetch resolves the transitive dependency tree of a Maven artifact across
one or more repositories and downloads every artifact of the tree into an
output directory, skipping artifacts that are already there.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(versionTemplate())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mvnfetch/config.toml)")

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// repoFlags are the repository options shared by the network commands.
type repoFlags struct {
	urls     []string
	timeout  time.Duration
	retries  int
	netrc    string
	maxDepth int
}

func (f *repoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.urls, "maven_urls", "u", nil, "repository alias (mavenCentral, jcenter, google) or base URL; repeatable")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "HTTP timeout per request (default from config or 5m)")
	cmd.Flags().IntVar(&f.retries, "retries", -1, "extra attempts per repository after a transport error, 429 or 5xx (default from config or 0)")
	cmd.Flags().StringVar(&f.netrc, "netrc", "", "netrc file with repository credentials")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum dependency depth to expand (0 = unlimited)")
}

// newRunner creates a pipeline runner from the config file and flags.
// Flags override config values; the merged config is returned as well.
func (c *CLI) newRunner(f *repoFlags, hooks *observability.Counter) (*pipeline.Runner, *Config, error) {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if len(f.urls) > 0 {
		cfg.Repositories = f.urls
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout.String()
	}
	if f.retries >= 0 {
		cfg.Retries = f.retries
	}
	if f.netrc != "" {
		cfg.Netrc = f.netrc
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	repos, err := repository.NewSet(cfg.Repositories, cfg.Aliases)
	if err != nil {
		return nil, nil, err
	}
	creds, err := repository.LoadNetrc(expandHome(cfg.Netrc), repos)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("repositories", "bases", repos.Bases(), "credentials", len(creds))

	opts := []repository.Option{
		repository.WithLogger(c.Logger),
		repository.WithTimeout(cfg.TimeoutDuration()),
		repository.WithRetries(cfg.Retries, defaultRetryDelay),
		repository.WithCredentials(creds),
		repository.WithUserAgent(appName + "/" + versionOrDev()),
	}
	var downloadHooks observability.DownloadHooks
	if hooks != nil {
		opts = append(opts, repository.WithHooks(hooks))
		downloadHooks = hooks
	}

	runner := pipeline.NewRunner(repository.NewClient(repos, opts...), c.Logger, downloadHooks)
	runner.MaxDepth = f.maxDepth
	return runner, cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/mvnfetch/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
