package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/api"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the board columns and their projects",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

var calendarJSON bool

var calendarCmd = &cobra.Command{
	Use:   "calendar [week-of]",
	Short: "Show scheduled jobs and due dates for a week",
	Long: `Show the Sunday-to-Saturday week containing the given date (yyyy-mm-dd).
Without a date the current week is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "output the week as JSON")
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	if boardService == nil {
		return errors.New("board service not configured")
	}

	board, err := boardService.GetBoard(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}

	cmd.Println(board.Name)
	for _, c := range board.Columns {
		cmd.Printf("\n%s (%d)\n", c.Name, len(c.Projects))
		for _, p := range c.Projects {
			done := len(lo.Filter(p.Tasks, func(t domain.Task, _ int) bool { return t.Completed }))
			line := fmt.Sprintf("  - %s [%s] %d/%d tasks", p.Title, p.Priority, done, len(p.Tasks))
			if p.DueDate != nil {
				line += " due " + p.DueDate.Format(domain.DateLayout)
			}
			if p.Assignee != "" {
				line += " @" + p.Assignee
			}
			cmd.Println(line)
		}
	}
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	if calendarService == nil {
		return errors.New("calendar service not configured")
	}

	weekOf := ""
	if len(args) == 1 {
		weekOf = args[0]
	}
	week, err := calendarService.Week(cmd.Context(), weekOf)
	if err != nil {
		return fmt.Errorf("loading calendar: %w", err)
	}

	if calendarJSON {
		data, err := json.MarshalIndent(api.NewCalendarBody(week), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal calendar: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Week of %s\n", week.WeekOf)
	if len(week.Events) == 0 {
		cmd.Println("No events.")
		return nil
	}
	for _, e := range week.Events {
		at := e.Time
		if at == "" {
			at = "     "
		}
		line := fmt.Sprintf("%s %s  %s", e.Date, at, e.Title)
		if e.Status == domain.EventStatusDisabled {
			line += " (disabled)"
		}
		cmd.Println(line)
	}
	return nil
}
