// Command cli runs the bot's commands from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keshon/agorabot/internal/catalog"
	"github.com/keshon/agorabot/internal/command/help"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/internal/console"
	"github.com/keshon/agorabot/internal/logging"
	"github.com/keshon/agorabot/internal/permission"
	"github.com/keshon/agorabot/internal/storage"
	"github.com/keshon/agorabot/pkg/cmd"
)

var (
	envFile string

	cfg      *config.Config
	logger   *zap.Logger
	store    *storage.Storage
	registry *cmd.Registry
	session  *console.Session
)

var rootCmd = &cobra.Command{
	Use:   "agorabot-cli",
	Short: "Run bot commands from the terminal",
	Long: `Run the chat commands of the bot without connecting to Discord.

Responses are printed to stdout. The console user is a bot admin, so
permissions can be granted and revoked here. Flags given after "run" are
passed to the command, not parsed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		var err error
		if cfg, err = config.Load(envFile); err != nil {
			return err
		}
		if logger, err = logging.New(cfg.LogLevel, cfg.LogDevelopment); err != nil {
			return err
		}
		if store, err = storage.New(cfg.StoragePath); err != nil {
			return fmt.Errorf("open storage: %w", err)
		}

		registry = cmd.NewRegistry()
		session = console.NewSession(c.OutOrStdout(), registry)
		isAdmin := func(id string) bool { return id == console.User || cfg.IsAdmin(id) }
		return catalog.Register(registry, catalog.Options{
			Strategy: session.Strategy(),
			Logger:   logger,
			Checker:  permission.NewChecker(store, isAdmin),
		})
	},
}

var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Run one command",
	Example: `  agorabot-cli run roll 2 20
  agorabot-cli run permissions grant 1234 digest`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE: func(c *cobra.Command, args []string) error {
		if registry.Get(args[0]) == nil {
			return fmt.Errorf("unknown command %q", args[0])
		}
		return session.Handle(c.Context(), strings.Join(args, " "))
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read commands from stdin, one per line",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return session.Run(c.Context(), c.InOrStdin())
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage [command]",
	Short: "Print the usage line of one command, or of all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 1 {
			target := registry.Get(args[0])
			if target == nil {
				return fmt.Errorf("unknown command %q", args[0])
			}
			fmt.Fprintln(c.OutOrStdout(), help.Line(target, ""))
			return nil
		}
		for _, target := range registry.GetAll() {
			fmt.Fprintln(c.OutOrStdout(), help.Line(target, ""))
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List commands by category",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprintln(c.OutOrStdout(), help.Overview(registry.GetAll(), ""))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to load before the environment")
	rootCmd.AddCommand(runCmd, replCmd, usageCmd, listCmd)
}

// cleanup runs after any command, including one that failed.
func cleanup() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}
