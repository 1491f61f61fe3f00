package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/subterra/internal/platform/tui"
	"github.com/vovakirdan/subterra/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with the start menu",
	Long: `Start Subterra in interactive menu mode.

The menu offers a new game, level select for the unlocked levels and the
high score table. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  subterra menu
  subterra menu --fps 30
  subterra menu --db ./subterra.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		fail("%v", err)
	}
	logger, closeLog, err := newFileLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	env := tui.Env{
		Catalog: cat,
		Config:  cfg,
		Logger:  logger,
		Player:  localPlayer(),
		Runtime: runtimeConfig(),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "err", err)
	} else {
		defer store.Close()
		env.Store = store
		env.Prefs = storage.NewPrefs(store, "", logger)
	}

	if err := tui.RunSession(env); err != nil {
		logger.Error("session failed", "err", err)
		if store != nil {
			store.Close()
		}
		fail("%v", err)
	}
}
