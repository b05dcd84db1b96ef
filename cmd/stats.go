package cmd

import (
	"fmt"

	"repack-catalog/logger"
	"repack-catalog/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Run: func(_ *cobra.Command, _ []string) {
		_, engine := bootstrap()

		stats, err := engine.Stats()
		if err != nil {
			logger.Log.Fatalw("Failed to read statistics", zap.Error(err))
		}

		fmt.Println(ui.Title.Render("Catalog Statistics"))
		fmt.Printf("Total repacks:    %d\n", stats.TotalRepacks)
		fmt.Printf("Total magnets:    %d\n", stats.TotalMagnets)
		fmt.Printf("Total categories: %d\n", stats.TotalCategories)

		if len(stats.TopCategories) > 0 {
			fmt.Println()
			fmt.Println(ui.Title.Render("Top Categories"))
			for i, cat := range stats.TopCategories {
				fmt.Printf("%2d. %s %s\n", i+1, cat.Name,
					ui.Dim.Render(fmt.Sprintf("(%d)", cat.GameCount)))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
