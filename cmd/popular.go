package cmd

import (
	"fmt"

	"repack-catalog/crawler"
	"repack-catalog/logger"
	"repack-catalog/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// popularCmd represents the popular command
var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Refresh the trending-repacks snapshots",
	Long: `Fetches the ranked popularity feeds and replaces the stored snapshot
for each requested period. Period may be one of today, week, month, year,
award, both (month and year), or all.`,
	Run: func(cmd *cobra.Command, _ []string) {
		period, _ := cmd.Flags().GetString("period")
		siteID, _ := cmd.Flags().GetString("site")
		details, _ := cmd.Flags().GetBool("details")
		markViewed, _ := cmd.Flags().GetBool("mark-viewed")

		periods, err := expandPeriods(period)
		if err != nil {
			logger.Log.Fatalw("Invalid period", zap.String("period", period))
		}

		_, engine := bootstrap()

		if markViewed {
			for _, p := range periods {
				if err := engine.MarkPopularViewed(p); err != nil {
					logger.Log.Fatalw("Failed to mark viewed",
						zap.String("period", p), zap.Error(err))
				}
				fmt.Printf("%s marked viewed\n", ui.Title.Render(p))
			}
			return
		}

		ctx, stop := signalContext()
		defer stop()

		if siteID == "" {
			siteID = "fitgirl"
		}
		site := resolveSite(engine, siteID)

		for _, p := range periods {
			saved, err := engine.RefreshPopular(ctx, site, p)
			if err != nil {
				logger.Log.Errorw("Popular refresh failed",
					zap.String("period", p), zap.Error(err))
				continue
			}

			unseen, _ := engine.UnseenCount(p)
			fmt.Printf("%s  %d entries, %d unseen\n", ui.Title.Render(p), saved, unseen)

			if details {
				fetched, failed, err := engine.FetchPopularDetails(ctx, site, p)
				if err != nil {
					logger.Log.Errorw("Detail fetch ended early",
						zap.String("period", p), zap.Error(err))
				}
				fmt.Printf("  details: %d fetched, %d failed\n", fetched, failed)
			}
		}
	},
}

// expandPeriods maps the CLI period argument to concrete period names.
func expandPeriods(period string) ([]string, error) {
	switch period {
	case "both":
		return []string{crawler.PeriodMonth, crawler.PeriodYear}, nil
	case "all":
		return crawler.AllPeriods, nil
	case crawler.PeriodToday, crawler.PeriodWeek, crawler.PeriodMonth,
		crawler.PeriodYear, crawler.PeriodAward:
		return []string{period}, nil
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}
}

func init() {
	rootCmd.AddCommand(popularCmd)

	popularCmd.Flags().StringP("period", "p", "both", "period: today, week, month, year, award, both, all")
	popularCmd.Flags().StringP("site", "s", "", "site id to fetch from (default fitgirl)")
	popularCmd.Flags().Bool("details", false, "also crawl detail pages for entries not yet in the catalog")
	popularCmd.Flags().Bool("mark-viewed", false, "mark the period viewed instead of refreshing it")
}
