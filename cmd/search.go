package cmd

import (
	"fmt"
	"strings"

	"repack-catalog/logger"
	"repack-catalog/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the catalog by title",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		_, engine := bootstrap()

		repacks, err := engine.Search(query, limit)
		if err != nil {
			logger.Log.Fatalw("Search failed", zap.Error(err))
		}

		if len(repacks) == 0 {
			fmt.Println("No matches.")
			return
		}
		for _, r := range repacks {
			line := ui.Title.Render(r.CleanName)
			if r.RepackSize != "" {
				line += "  " + ui.Dim.Render(r.RepackSize)
			}
			fmt.Println(line)
			fmt.Println("  " + ui.Dim.Render(r.URL))
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "l", 25, "maximum number of results")
}
