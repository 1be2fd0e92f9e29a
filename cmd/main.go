package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/squad/internal/adapters/roster"
	service "github.com/okian/squad/internal/app"
	"github.com/okian/squad/internal/config"
	"github.com/okian/squad/pkg/logger"
	"github.com/okian/squad/pkg/metrics"
)

const app = "squad"

var errNoRoster = errors.New("no roster given; use --roster or roster_path")

// cli holds state shared by subcommands after the root pre-run hook.
type cli struct {
	// Flags
	rosterPath string
	logLevel   string
	logJSON    bool

	cfg *config.Config
	log logger.Logger
	svc *service.Service
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:                app,
		Short:              "squad forms teams and matches mentors from skill profiles",
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	root.PersistentFlags().StringVarP(&c.rosterPath, "roster", "r", "", "roster YAML file (overrides roster_path)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log_level)")
	root.PersistentFlags().BoolVarP(&c.logJSON, "json", "j", false, "json format for logging (overrides log_json)")

	root.AddCommand(newTeamsCmd(c), newMentorCmd(c), newVersionCmd())
	return root
}

// setup loads configuration (defaults -> optional file -> env -> flags),
// initializes logging on stderr and builds the service.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("roster") {
		cfg.RosterPath = c.rosterPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("json") {
		cfg.LogJSON = c.logJSON
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(cfg.LogJSON)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(metrics.WithNamespace(cfg.MetricsNamespace))

	c.cfg = cfg
	c.svc = service.New(
		service.WithLogger(c.log),
		service.WithBlendWeights(cfg.MatchWeight, cfg.ComplementarityWeight),
		service.WithMentorSuggestions(cfg.MentorSuggestions),
	)
	return nil
}

func (c *cli) loadRoster(ctx context.Context) (*roster.Roster, error) {
	if c.cfg.RosterPath == "" {
		return nil, errNoRoster
	}
	r, err := roster.NewFileSource(c.cfg.RosterPath).Load(ctx)
	if err != nil {
		return nil, err
	}
	c.log.Debug(ctx, "roster loaded",
		logger.String("path", c.cfg.RosterPath),
		logger.Int("candidates", len(r.Candidates)),
		logger.Int("mentors", len(r.Mentors)),
		logger.Int("students", len(r.Students)),
	)
	return r, nil
}

// teardown writes the metrics textfile when one is configured.
func (c *cli) teardown(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if c.cfg == nil || c.cfg.MetricsTextfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(c.cfg.MetricsTextfile); err != nil {
		return err
	}
	c.log.Debug(ctx, "metrics exported", logger.String("path", c.cfg.MetricsTextfile))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
