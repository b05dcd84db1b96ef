package cmd

import (
	"fmt"
	"os"

	"repack-catalog/logger"
	"repack-catalog/ui"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run catalog integrity checks",
	Long: `Verifies that the expected tables exist, that no orphaned rows are
left behind, and that data-quality invariants hold. The process exits
non-zero when any check fails.`,
	Run: func(_ *cobra.Command, _ []string) {
		_, engine := bootstrap()

		results := engine.DB.RunChecks()
		failed := 0
		for _, result := range results {
			status := ui.Success.Render("PASS")
			if !result.Passed {
				status = ui.Failure.Render("FAIL")
				failed++
			}
			fmt.Printf("%s  %-35s %s\n", status, result.Name, ui.Dim.Render(result.Detail))
		}

		if failed > 0 {
			fmt.Printf("\n%d of %d checks failed\n", failed, len(results))
			logger.Sync()
			os.Exit(1)
		}
		fmt.Printf("\nAll %d checks passed\n", len(results))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
