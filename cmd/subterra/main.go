// subterra is a cave-flying game for the terminal.
//
// Usage:
//
//	subterra play            - Fly the caves, starting at level 1
//	subterra menu            - Start menu with level select and high scores
//	subterra levels          - List the levels and their caves
//	subterra scores          - Show the run history
//	subterra serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.subterra/subterra.db)
//	--log-level <lvl>   - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/cave"
	"github.com/vovakirdan/subterra/internal/config"
	"github.com/vovakirdan/subterra/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagCaves      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "subterra",
	Short: "Subterra - fly a craft through underground caves",
	Long: `Subterra is a terminal cave-flying game. Steer a small craft through
narrow caves, hold it inside the end zone to finish each cave and beat the
clock for a time bonus.

Available commands:
  play     - Start flying
  menu     - Start menu with level select and high scores
  levels   - List the levels and their caves
  scores   - View the run history
  serve    - Start SSH server for remote play

Examples:
  subterra play
  subterra play --level 2 --difficulty easy
  subterra menu
  subterra serve --ssh :2222
  subterra scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.subterra/subterra.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagCaves, "caves", "", "Directory of cave files (default: bundled caves)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the tuning file and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// loadCatalog reads the caves from --caves or the bundled set. Every map is
// parsed up front so a broken cave fails at startup.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	loader := catalog.DefaultLoader()
	if flagCaves != "" {
		loader = catalog.NewDirLoader(flagCaves)
	}
	loader.Validate = cave.Validate
	return loader.Load(cfg.Session.CavesPerLevel)
}

// newFileLogger logs to ~/.subterra/subterra.log since the alt screen owns
// the terminal. Without a home directory, logs are discarded.
func newFileLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}, nil
	}
	dir := filepath.Join(home, ".subterra")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "subterra.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "subterra",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// localPlayer names the pilot of a local game after the OS user.
func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "pilot"
}

// fail prints the error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
