package cmd

import (
	"fmt"
	"os"

	"github.com/refpin/refpin/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	searchCmdLimit          int
	searchCmdArtFocused     bool
	searchCmdDiverse        bool
	searchCmdImagesPerQuery int
	searchCmdQueriesFile    string
)

var searchCmd = &cobra.Command{
	Use:   "search <query> [query...]",
	Short: "Search for reference images",
	Long: "Launches a refpin server subprocess and calls its search tool.\n\n" +
		"By default a single query is sent to the search_pinterest tool.\n" +
		"With --diverse, multiple queries (from the arguments or a --queries-file) are sent\n" +
		"to the search_pinterest_diverse tool, which interleaves results across themes.\n\n" +
		"A queries file is a YAML document of the form:\n\n" +
		"  queries:\n" +
		"    - dynamic pose\n" +
		"    - portrait lighting\n",
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchCmdLimit, "limit", 10, "maximum number of results (1-30)")
	searchCmd.Flags().BoolVar(
		&searchCmdArtFocused,
		"art-focused",
		true,
		"bias the query towards drawing reference material",
	)
	searchCmd.Flags().BoolVar(
		&searchCmdDiverse,
		"diverse",
		false,
		"search multiple queries at once (2-8) and combine the results",
	)
	searchCmd.Flags().IntVar(
		&searchCmdImagesPerQuery,
		"images-per-query",
		5,
		"number of results per query in --diverse mode (1-10)",
	)
	searchCmd.Flags().StringVar(
		&searchCmdQueriesFile,
		"queries-file",
		"",
		"YAML file containing the queries for --diverse mode",
	)
	registerServerCommandFlag(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

// queriesFileDoc is the YAML document accepted by --queries-file.
type queriesFileDoc struct {
	Queries []string `yaml:"queries"`
}

// loadQueriesFile reads the list of queries from a YAML file.
func loadQueriesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries file: %w", err)
	}
	var doc queriesFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse queries file %s: %w", path, err)
	}
	if len(doc.Queries) == 0 {
		return nil, fmt.Errorf("queries file %s contains no queries", path)
	}
	return doc.Queries, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	queries := args
	if searchCmdQueriesFile != "" {
		fileQueries, err := loadQueriesFile(searchCmdQueriesFile)
		if err != nil {
			return err
		}
		queries = append(fileQueries, queries...)
	}
	if len(queries) == 0 {
		return fmt.Errorf("at least one query is required")
	}
	if !searchCmdDiverse && len(queries) > 1 {
		return fmt.Errorf("multiple queries require the --diverse flag")
	}

	c, err := connectToServer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	if searchCmdDiverse {
		resp, err := c.SearchDiverse(cmd.Context(), queries, searchCmdImagesPerQuery)
		if err != nil {
			return fmt.Errorf("diverse search failed: %w", err)
		}
		cmd.Printf("%d results for %d queries\n\n", resp.TotalCount, len(resp.Queries))
		printResults(cmd, resp.Images)
		return nil
	}

	resp, err := c.Search(cmd.Context(), queries[0], searchCmdLimit, searchCmdArtFocused)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	cmd.Printf("%d results for %q\n\n", resp.Count, resp.Query)
	printResults(cmd, resp.Images)
	return nil
}

func printResults(cmd *cobra.Command, images []types.SearchResult) {
	for _, img := range images {
		cmd.Printf("* %s (%dx%d)\n", img.Title, img.Width, img.Height)
		cmd.Printf("  %s\n", img.ImageURL)
		cmd.Printf("  board: %s, creator: %s\n", img.Board, img.Creator)
	}
}
