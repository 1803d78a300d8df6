package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
)

var (
	flagKeyword  string
	flagSources  []string
	flagDate     string
	flagCategory string
	flagPage     int
	flagFormat   string
	flagOutput   string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one aggregated search and print or export the result",
	Example: `  newshunter search --keyword climate
  newshunter search --keyword climate --source guardian,newyorktimes --date 2024-05-01
  newshunter search --keyword climate --format csv --output climate.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFormat != "json" && flagFormat != "csv" {
			return fmt.Errorf("invalid --format %q: want json or csv", flagFormat)
		}
		if flagFormat == "csv" && flagOutput == "" {
			return fmt.Errorf("--output is required for csv")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := core.NewApp(cfg.PlatformConfigs(), cfg.Aggregator.Timeout)
		if err != nil {
			return fmt.Errorf("creating app: %w", err)
		}
		defer app.Close()

		articles, err := app.Search(cmd.Context(), searchParams())
		if err != nil {
			return err
		}

		if flagOutput == "" {
			return printArticles(cmd.OutOrStdout(), articles)
		}
		if err := app.ExportArticles(cmd.Context(), flagFormat, flagOutput, articles); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d article(s) to %s\n", len(articles), flagOutput)
		return nil
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&flagKeyword, "keyword", "k", "", "search keyword (required)")
	f.StringSliceVarP(&flagSources, "source", "s", nil, "providers to query: newsapi, guardian, newyorktimes")
	f.StringVar(&flagDate, "date", "", "publication day, YYYY-MM-DD")
	f.StringVar(&flagCategory, "category", "", "category / section / news desk")
	f.IntVar(&flagPage, "page", 1, "page number")
	f.StringVar(&flagFormat, "format", "json", "export format: json or csv")
	f.StringVarP(&flagOutput, "output", "o", "", "write to file instead of stdout")
}

func searchParams() core.RawParams {
	return core.RawParams{
		Keyword:  flagKeyword,
		Date:     flagDate,
		Category: flagCategory,
		Sources:  flagSources,
		Page:     strconv.Itoa(flagPage),
	}
}

func printArticles(w io.Writer, articles []*models.Article) error {
	if articles == nil {
		articles = []*models.Article{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string]any{"data": articles})
}
