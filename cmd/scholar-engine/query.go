// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-engine/internal/fetch"
	"github.com/pdiddy/scholar-engine/internal/scholar"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

const defaultTimeout = 60 * time.Second

var queryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Search Scholar and print extracted article records",
	Long: `Query searches Google Scholar for the given terms and prints one
record per extracted article.

With --author the search is constrained to that author. With
--search-author the author's profile is located first and the records
come from the profile's citation list, enriched from each work's
citation detail page; no query terms are needed in that mode.

Records print in text format by default; --csv and --csv-header switch
to delimited rows, --json to a JSON array.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringP("author", "a", "", "author name")
	queryCmd.Flags().BoolP("search-author", "s", false, "search the author profile instead of the results page")
	queryCmd.Flags().IntP("count", "c", 0, "maximum number of results (clamped to 100)")
	queryCmd.Flags().Bool("csv", false, "print records as delimited rows")
	queryCmd.Flags().Bool("csv-header", false, "like --csv, with a header line of field names")
	queryCmd.Flags().Bool("json", false, "print records as JSON")
	queryCmd.Flags().String("sep", "|", "field separator for --csv output")
	queryCmd.Flags().String("save", "", "save the query and results to a YAML file")
	queryCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	author, _ := cmd.Flags().GetString("author")
	searchAuthor, _ := cmd.Flags().GetBool("search-author")
	count, _ := cmd.Flags().GetInt("count")

	query := strings.Join(args, " ")
	if query == "" && !searchAuthor {
		return fmt.Errorf("query terms required: provide search terms or use --search-author with --author")
	}
	if searchAuthor && author == "" {
		return fmt.Errorf("--search-author requires --author")
	}

	cfg := scholarConfig(cmd)
	if count == 0 {
		count = cfg.MaxResults
	}

	client, err := fetch.NewClient(cfg.HTTPConfig)
	if err != nil {
		return err
	}

	querier := scholar.New(client, cfg, author, count)

	var articles []*types.Article
	if searchAuthor {
		fmt.Fprintf(os.Stderr, "Searching author profile for %q\n", author)
		articles, err = querier.QueryAuthor(cmd.Context())
	} else {
		fmt.Fprintf(os.Stderr, "Searching Scholar for %q\n", query)
		articles, err = querier.Query(cmd.Context(), query)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Extracted %d article(s)\n", len(articles))

	if count > 0 && len(articles) > count {
		articles = articles[:count]
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		params := scholar.QueryParams{
			Text:         query,
			Author:       author,
			SearchAuthor: searchAuthor,
			Count:        count,
		}
		if err := scholar.WriteQueryFile(savePath, params, articles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d result(s) to %s\n", len(articles), savePath)
	}

	return printArticles(cmd, articles)
}

// scholarConfig builds the query configuration from flags with viper
// config-file fallbacks.
func scholarConfig(cmd *cobra.Command) types.ScholarConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.ScholarConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("user_agent"),
		},
		Site:       viper.GetString("site"),
		MaxResults: viper.GetInt("max_results"),
	}
}

func printArticles(cmd *cobra.Command, articles []*types.Article) error {
	asCSV, _ := cmd.Flags().GetBool("csv")
	withHeader, _ := cmd.Flags().GetBool("csv-header")
	asJSON, _ := cmd.Flags().GetBool("json")
	sep, _ := cmd.Flags().GetString("sep")

	switch {
	case asJSON:
		records := make([]scholar.ArticleRecord, 0, len(articles))
		for _, art := range articles {
			records = append(records, scholar.NewArticleRecord(art))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	case asCSV || withHeader:
		// The header line prints once, before the first record.
		header := withHeader
		for _, art := range articles {
			fmt.Println(art.Row(header, sep))
			header = false
		}
		return nil

	default:
		for _, art := range articles {
			fmt.Println(art.Text())
			fmt.Println()
		}
		return nil
	}
}
