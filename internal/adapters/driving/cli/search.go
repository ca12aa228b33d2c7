package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/api"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

var (
	searchLimit   int
	searchDomains string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search notes, projects, tasks and activity",
	Long: `Searches memory notes, board projects, tasks and the activity log and prints
one list ranked by score. Per-domain counts are taken before the list is cut
to the limit.

Examples:
  mission-control search "release checklist"
  mission-control search deploy --domains tasks,activities -n 5
  mission-control search rocket --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchDomains, "domains", "d", "",
		"comma-separated subset of memory,projects,tasks,activities")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	resp, err := searchService.Search(cmd.Context(), args[0], domain.SearchOptions{
		Limit:   searchLimit,
		Domains: domain.ParseDomains(searchDomains),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}
	return outputSearchTable(cmd, resp)
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(api.NewSearchBody(resp), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%d of %d):\n\n", len(resp.Results), resp.Counts.Total())
	for i, r := range resp.Results {
		// Format: [N] kind  Title (Score)
		cmd.Printf("  [%d] %-8s %s (%.2f)\n", i+1, r.Kind, r.Title, r.Score)
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		if ref, ok := r.Ref.(domain.NoteRef); ok {
			cmd.Printf("      %s:%d\n", ref.Path, ref.Line)
		}
		cmd.Println()
	}

	cmd.Printf("memory %d · projects %d · tasks %d · activities %d\n",
		resp.Counts[domain.DomainMemory], resp.Counts[domain.DomainProjects],
		resp.Counts[domain.DomainTasks], resp.Counts[domain.DomainActivities])
	return nil
}
