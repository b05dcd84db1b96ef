package cmd

import (
	"fmt"

	"repack-catalog/logger"
	"repack-catalog/service"
	"repack-catalog/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl listing pages and save repacks to the catalog",
	Long: `Crawls the configured repack sites page by page and upserts every
extracted entry into the catalog. Re-running the same crawl is safe: records
are keyed by URL, so already-known entries are refreshed, not duplicated.`,
	Run: func(cmd *cobra.Command, _ []string) {
		pages, _ := cmd.Flags().GetInt("pages")
		maxPages, _ := cmd.Flags().GetInt("max-pages")
		startPage, _ := cmd.Flags().GetInt("start")
		siteID, _ := cmd.Flags().GetString("site")
		update, _ := cmd.Flags().GetBool("update")

		if maxPages > 0 {
			pages = maxPages
		}

		_, engine := bootstrap()
		ctx, stop := signalContext()
		defer stop()

		var results []service.CrawlResult
		if siteID != "" {
			site := resolveSite(engine, siteID)
			var result service.CrawlResult
			var err error
			if update {
				result, err = engine.IncrementalUpdate(ctx, site)
			} else {
				result, err = engine.CrawlSite(ctx, site, startPage, pages)
			}
			if err != nil {
				logger.Log.Errorw("Crawl ended early", zap.Error(err))
			}
			results = append(results, result)
		} else {
			if update {
				for _, site := range engine.Sites.Enabled() {
					result, err := engine.IncrementalUpdate(ctx, site)
					if err != nil {
						logger.Log.Errorw("Update ended early",
							zap.String("site", site.ID()), zap.Error(err))
					}
					results = append(results, result)
				}
			} else {
				var err error
				results, err = engine.CrawlAll(ctx, startPage, pages)
				if err != nil {
					logger.Log.Errorw("Crawl ended early", zap.Error(err))
				}
			}
		}

		for _, result := range results {
			fmt.Printf("%s  %s\n",
				ui.Title.Render(result.SiteID),
				fmt.Sprintf("%d pages, %d saved, %d blacklisted",
					result.Pages, result.Saved, result.Blacklisted))
		}
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().IntP("pages", "p", 5, "number of pages to crawl")
	crawlCmd.Flags().IntP("max-pages", "m", 0, "maximum number of pages (overrides --pages when set)")
	crawlCmd.Flags().Int("start", 1, "page number to start from")
	crawlCmd.Flags().StringP("site", "s", "", "crawl only this site id (default: all enabled sites)")
	crawlCmd.Flags().Bool("update", false, "incremental update: stop at the first already-known page")
}
