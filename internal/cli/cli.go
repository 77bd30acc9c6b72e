// Package cli implements adminctl, the operator command line of flightdb.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/Domenick1991/flightdb/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Backend is the database surface adminctl needs.
type Backend interface {
	Count(ctx context.Context, table domain.Table) (int64, error)
	Migrate(ctx context.Context) ([]string, error)
	Close()
}

// Connector opens a Backend for cfg.
type Connector func(ctx context.Context, cfg *config.Config) (Backend, error)

type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	connect Connector

	configPath string
	jsonOutput bool
}

type Option func(*CLI)

// WithConnector replaces the PostgreSQL connector.
func WithConnector(connect Connector) Option {
	return func(c *CLI) { c.connect = connect }
}

func New(opts ...Option) *CLI {
	c := &CLI{connect: connectPostgres}
	for _, opt := range opts {
		opt(c)
	}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI with args and returns the process exit code.
func (c *CLI) Execute(args []string, stdout, stderr io.Writer) int {
	c.rootCmd.SetArgs(args)
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)
	if err := c.rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitFailure
	}
	return ExitSuccess
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "adminctl",
		Short:         "flightdb operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $CONFIG_PATH or config.yaml)")
	cmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "machine-readable JSON output")

	cmd.AddCommand(c.newMigrateCmd())
	cmd.AddCommand(c.newStatsCmd())
	cmd.AddCommand(c.newVersionCmd())
	return cmd
}

func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *CLI) openBackend(ctx context.Context) (Backend, error) {
	if err := c.loadConfig(); err != nil {
		return nil, err
	}
	return c.connect(ctx, c.cfg)
}

func (c *CLI) outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type pgBackend struct {
	pool    *pgxpool.Pool
	counter repository.Counter
	runner  *repository.MigrationRunner
}

func connectPostgres(ctx context.Context, cfg *config.Config) (Backend, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &pgBackend{
		pool:    pool,
		counter: repository.NewCounter(pool),
		runner:  repository.NewMigrationRunner(pool, migrations.FS),
	}, nil
}

func (b *pgBackend) Count(ctx context.Context, table domain.Table) (int64, error) {
	return b.counter.Count(ctx, table)
}

func (b *pgBackend) Migrate(ctx context.Context) ([]string, error) {
	return b.runner.Run(ctx)
}

func (b *pgBackend) Close() { b.pool.Close() }
