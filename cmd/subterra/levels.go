package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/subterra/internal/session"
	"github.com/vovakirdan/subterra/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels and their caves",
	Long: `List every level with its caves and time limits. Levels above the
highest unlocked level are marked as locked.

Examples:
  subterra levels
  subterra levels --caves ./my-caves`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		fail("%v", err)
	}

	unlocked := 1
	if store, err := storage.Open(flagDBPath); err == nil {
		state := session.NewState(storage.NewPrefs(store, "", nil), cfg.Session.Lives)
		unlocked = state.HighestUnlockedLevel()
		store.Close()
	}

	fmt.Printf("Levels (%d caves)\n", cat.TotalCaves())
	fmt.Println()

	for level := 1; level <= cat.LevelCount(); level++ {
		caves, err := cat.CavesInLevel(level)
		if err != nil {
			fail("%v", err)
		}

		status := ""
		switch {
		case len(caves) == 0:
			status = "  (empty)"
		case level > unlocked:
			status = "  (locked)"
		}
		fmt.Printf("Level %d%s\n", level, status)

		for _, c := range caves {
			fmt.Printf("  %-5s  %-24s  %s\n", c.Label(), c.Name, session.FormatTime(c.TimeLimit.Seconds()))
			if c.Notes != "" {
				fmt.Printf("         %s\n", strings.TrimSpace(c.Notes))
			}
		}
	}
}
