package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/config"
	"wyrmgate/internal/derive"
	"wyrmgate/internal/dispatch"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/handlers"
	"wyrmgate/internal/logging"
	"wyrmgate/internal/state"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wyrmgate",
	Short: "wyrmgate - session command core for AI-run game sessions",
	Long: `wyrmgate is the command processing core of an AI-gamemaster session
server. Every state-changing request becomes a typed command that is queued,
prioritized, dispatched to its handler and allowed to cascade into further
commands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// demoCmd runs a scripted session exercising both call paths.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted demo session",
	Long: `Seeds a session with two actors and a quest, then drives it through
the dispatcher: asynchronous submits at mixed priorities, a synchronous
execute whose payload is printed, and the notification cascade.`,
	RunE: runDemo,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "wyrmgate.yaml", "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(demoCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildDispatcher is the composition root: config in, wired dispatcher out.
func buildDispatcher(cfg config.Config, log *zap.Logger) (*dispatch.Dispatcher, state.Store, error) {
	var store state.Store
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		s, err := state.NewSQLiteStore(cfg.Storage.DatabasePath, log.Named("store"))
		if err != nil {
			return nil, nil, err
		}
		store = s
	default:
		store = state.NewMemoryStore()
	}

	seed := cfg.Combat.DiceSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := handler.NewRegistry()
	registry.MustRegister(command.HandlerChat, handlers.NewChat(log.Named("chat")))
	registry.MustRegister(command.HandlerCombat, handlers.NewCombat(log.Named("combat"), handlers.NewDice(seed)))
	registry.MustRegister(command.HandlerInventory, handlers.NewInventory(log.Named("inventory")))
	registry.MustRegister(command.HandlerQuest, handlers.NewQuest(log.Named("quest")))
	registry.MustRegister(command.HandlerNotify,
		handlers.NewNotify(log.Named("notify"), handlers.NewLogTransport(log.Named("transport"))))

	rebuilder := derive.NewRebuilder(log.Named("derive"))
	d := dispatch.New(store, registry, rebuilder, log.Named("dispatch"))
	return d, store, nil
}
