package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alphalearn/alphalearn/internal/config"
	"github.com/alphalearn/alphalearn/internal/database"
	"github.com/alphalearn/alphalearn/internal/logging"
	"github.com/alphalearn/alphalearn/internal/maintenance"
	"github.com/alphalearn/alphalearn/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	allowSubnet string
	dbPath      string
	verbosity   int
	forceInit   bool
)

const defaultDBPath = "./alphalearn.db"

func main() {
	rootCmd := &cobra.Command{
		Use:   "alphalearn",
		Short: "AlphaLearn - Vocabulary learning server",
		Long:  `AlphaLearn stores vocabulary learning sessions, per-session word lists and quizzes, and serves them over a JSON API.`,
		RunE:  run,
	}

	// Flags
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", defaultDBPath, "SQLite database path (or set DB_PATH env var)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("alphalearn %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	// Destructive schema reset
	initCmd := &cobra.Command{
		Use:   "init-db",
		Short: "Drop and recreate the database schema (destroys all data)",
		RunE:  runInitDB,
	}
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Reset even when users already exist")
	rootCmd.AddCommand(initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Check for PORT env var if flag not set
	if port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if _, err := fmt.Sscanf(envPort, "%d", &port); err != nil {
				return fmt.Errorf("invalid PORT environment variable %q: %w", envPort, err)
			}
		}
	}

	resolveDBPath()

	// Validate port
	if port == 0 {
		return fmt.Errorf("--port flag or PORT environment variable is required")
	}

	// Validate bind address if provided
	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	// Validate and parse allow-subnet if provided
	var allowedNet *net.IPNet
	if allowSubnet != "" {
		_, parsedNet, err := net.ParseCIDR(allowSubnet)
		if err != nil {
			return fmt.Errorf("invalid allow-subnet CIDR: %s", allowSubnet)
		}
		allowedNet = parsedNet
	}

	// Warn if binding to all interfaces without an allow list
	if (bind == "" || bind == "0.0.0.0" || bind == "::") && allowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Str("allow_subnet", allowSubnet).
		Str("database", dbPath).
		Msg("Starting AlphaLearn")

	// Initialize database
	db, err := database.New(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Full logging (console + rotating file) once settings are reachable
	loader := config.NewLoader(db)
	logging.Apply(logLevel(), loader, logging.FilePathForDB(dbPath))

	// Scheduled database upkeep
	maintenanceMgr := maintenance.New(db, loader)
	if err := maintenanceMgr.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start maintenance manager")
	} else {
		defer maintenanceMgr.Stop()
	}

	// Create web server with bind address and allowed subnet
	server := web.NewServer(db, port, bind, allowedNet)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("AlphaLearn stopped")
	return nil
}

// runInitDB drops and recreates every table. Destructive by design; it
// refuses to touch a database with registered users unless forced.
func runInitDB(cmd *cobra.Command, args []string) error {
	resolveDBPath()

	db, err := database.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if !forceInit {
		// A missing user table means the schema was never created, which
		// is always safe to (re)initialize.
		if firstRun, err := db.IsFirstRun(); err == nil && !firstRun {
			return fmt.Errorf("database %s has registered users; pass --force to destroy all data", dbPath)
		}
	}

	if err := db.Reset(); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}

	log.Info().Str("database", dbPath).Msg("Database initialized")
	return nil
}

// resolveDBPath applies the DB_PATH env fallback when the flag is default
func resolveDBPath() {
	if dbPath == defaultDBPath {
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
	}
}

func logLevel() string {
	switch verbosity {
	case 0:
		return "info"
	case 1:
		return "debug"
	default: // 2+
		return "trace"
	}
}
