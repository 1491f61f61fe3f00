package main

import (
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/subterra/internal/platform/tui"
	"github.com/vovakirdan/subterra/internal/storage"
)

var (
	flagLevel   int
	flagGod     bool
	flagUnlock  int
	flagProfile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start flying",
	Long: `Start a new game at level 1, or at --level when it is unlocked.

Controls:
  W/Up/Space   - Thrust
  A/Left       - Rotate left
  D/Right      - Rotate right
  P            - Pause
  Esc/Q        - Quit to menu (asks first)
  Y/N, Enter   - Answer popups
  R            - Play again after game over
  Ctrl+S       - Screenshot
  ?            - Toggle key help
  Ctrl+C       - Quit

Difficulty options:
  easy   - More lives and a tougher shield
  normal - The standard game
  hard   - Fewer lives and a weaker shield
  fixed  - Normal survivability, no speed progression

Examples:
  subterra play
  subterra play --level 2
  subterra play --difficulty hard
  subterra play --caves ./my-caves
  subterra play --god --unlock 5
  subterra play --profile cpu`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (must be unlocked)")
	playCmd.Flags().BoolVar(&flagGod, "god", false, "God mode: shields never deplete and time never runs out")
	playCmd.Flags().IntVar(&flagUnlock, "unlock", 0, "Treat levels up to N as unlocked")
	playCmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile to the current directory: cpu or mem")
}

func runPlay(_ *cobra.Command, _ []string) {
	switch flagProfile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		fail("unknown profile %q (want cpu or mem)", flagProfile)
	}

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

	// Open run storage; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "err", err)
	} else {
		defer store.Close()
		env.Store = store
		env.Prefs = storage.NewPrefs(store, "", logger)
	}

	logger.Info("game started", "player", env.Player, "level", flagLevel, "caves", cat.TotalCaves())
	runErr := tui.Run(env, tui.PlayOptions{
		Level:         flagLevel,
		GodMode:       flagGod,
		UnlockedLevel: flagUnlock,
	})
	if runErr != nil {
		logger.Error("game failed", "err", runErr)
		if store != nil {
			store.Close()
		}
		fail("%v", runErr)
	}
	logger.Info("game ended")
}
