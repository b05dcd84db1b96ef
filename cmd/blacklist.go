package cmd

import (
	"fmt"
	"strings"

	"repack-catalog/logger"
	"repack-catalog/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// blacklistCmd groups the blacklist management verbs. Edits take effect
// immediately, even for a crawl already in progress.
var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage the crawl blacklist",
	Long: `Manages the substring patterns used to drop unwanted listing
entries. Patterns are stored one per line in a plain-text file and re-read
on every check, so edits apply without restarting a running crawl.`,
}

var blacklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all blacklist patterns",
	Run: func(_ *cobra.Command, _ []string) {
		_, engine := bootstrap()
		patterns, err := engine.Blacklist.Patterns()
		if err != nil {
			logger.Log.Fatalw("Failed to read blacklist", zap.Error(err))
		}
		if len(patterns) == 0 {
			fmt.Println("Blacklist is empty.")
			return
		}
		for i, p := range patterns {
			fmt.Printf("%2d. %s\n", i+1, p)
		}
	},
}

var blacklistAddCmd = &cobra.Command{
	Use:   "add PATTERN",
	Short: "Add a pattern to the blacklist",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, engine := bootstrap()
		pattern := strings.Join(args, " ")
		if err := engine.Blacklist.Add(pattern); err != nil {
			logger.Log.Fatalw("Failed to add pattern", zap.Error(err))
		}
		fmt.Printf("Added: %s\n", strings.ToLower(pattern))
	},
}

var blacklistRemoveCmd = &cobra.Command{
	Use:   "remove PATTERN",
	Short: "Remove a pattern from the blacklist",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, engine := bootstrap()
		pattern := strings.Join(args, " ")
		found, err := engine.Blacklist.Remove(pattern)
		if err != nil {
			logger.Log.Fatalw("Failed to remove pattern", zap.Error(err))
		}
		if found {
			fmt.Printf("Removed: %s\n", strings.ToLower(pattern))
		} else {
			fmt.Printf("Pattern not found: %s\n", strings.ToLower(pattern))
		}
	},
}

var blacklistCheckCmd = &cobra.Command{
	Use:   "check TEXT",
	Short: "Check whether a URL or title is blacklisted",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		_, engine := bootstrap()
		text := strings.Join(args, " ")

		var blocked bool
		var err error
		if strings.HasPrefix(text, "http") {
			blocked, err = engine.Blacklist.IsBlacklisted(text, "")
		} else {
			blocked, err = engine.Blacklist.IsBlacklisted("", text)
		}
		if err != nil {
			logger.Log.Fatalw("Failed to read blacklist", zap.Error(err))
		}
		if blocked {
			fmt.Println(ui.Failure.Render("BLACKLISTED"))
		} else {
			fmt.Println(ui.Success.Render("OK"))
		}
	},
}

var blacklistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all blacklist patterns",
	Run: func(_ *cobra.Command, _ []string) {
		_, engine := bootstrap()
		if err := engine.Blacklist.Clear(); err != nil {
			logger.Log.Fatalw("Failed to clear blacklist", zap.Error(err))
		}
		fmt.Println("Blacklist cleared.")
	},
}

func init() {
	rootCmd.AddCommand(blacklistCmd)
	blacklistCmd.AddCommand(blacklistListCmd)
	blacklistCmd.AddCommand(blacklistAddCmd)
	blacklistCmd.AddCommand(blacklistRemoveCmd)
	blacklistCmd.AddCommand(blacklistCheckCmd)
	blacklistCmd.AddCommand(blacklistClearCmd)
}
