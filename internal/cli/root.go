package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/taskflow/internal/api"
	"github.com/existflow/taskflow/internal/config"
	"github.com/existflow/taskflow/internal/logger"
	"github.com/existflow/taskflow/internal/session"
	"github.com/existflow/taskflow/internal/tui"
)

var (
	serverURL  string
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow - terminal client for the TaskFlow project tracker",
	Long: `TaskFlow is a terminal client for the TaskFlow API: log in, manage
projects and tasks, and watch per-project progress from a live dashboard.

Run 'taskflow' without arguments to launch the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		// CLI flags override the config file for this run
		if cmd.Flags().Changed("server") {
			cfg.ServerURL = serverURL
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}
		loadedConfig = cfg

		opts := logger.DefaultOptions()
		opts.Level = logger.ParseLevel(cfg.LogLevel)
		opts.FilePath = cfg.LogFile
		opts.Console = cfg.LogConsole
		if err := logger.Init(opts); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("TaskFlow started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if !client.Session().IsAuthenticated() {
			fmt.Println("Not logged in. Run 'taskflow login' first.")
			return nil
		}

		logger.Info("Launching dashboard TUI")
		m := tui.NewModel(client)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run dashboard: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("TaskFlow exiting", logger.F("command", cmd.Name()))
		_ = logger.Close()
	},
}

// loadedConfig is the effective config after flag overrides
var loadedConfig *config.Config

// newClient builds the gateway with a restored session
func newClient() (*api.Client, error) {
	cfg := loadedConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	store, err := session.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	store.Restore()

	return api.NewClient(cfg.ServerURL, store, time.Duration(cfg.RequestTimeout)*time.Second), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Base URL of the TaskFlow API")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(statusCmd)
}
