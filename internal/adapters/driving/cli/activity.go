package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mission-control/internal/adapters/driving/api"
	"github.com/custodia-labs/mission-control/internal/core/domain"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Read and write the activity log",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent activity, newest first",
	Args:  cobra.NoArgs,
	RunE:  runActivityList,
}

var activityLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Append an activity entry",
	Long: `Append an entry to the activity log.

Example:
  mission-control activity log --action deploy --category ops --title "Shipped v1.2"`,
	Args: cobra.NoArgs,
	RunE: runActivityLog,
}

var (
	activityCategory    string
	activityAction      string
	activityStatus      string
	activitySince       string
	activityLimit       int
	activityJSON        bool
	activityTitle       string
	activityDescription string
	activitySession     string
)

func init() {
	lf := activityListCmd.Flags()
	lf.StringVar(&activityCategory, "category", "", "only entries in this category")
	lf.StringVar(&activityAction, "action", "", "only entries with this action")
	lf.StringVar(&activityStatus, "status", "", "only entries with this status")
	lf.StringVar(&activitySince, "since", "", "only entries at or after this date (yyyy-mm-dd or RFC 3339)")
	lf.IntVarP(&activityLimit, "limit", "n", domain.DefaultActivityLimit, "maximum number of entries")
	lf.BoolVar(&activityJSON, "json", false, "output entries as JSON")

	gf := activityLogCmd.Flags()
	gf.StringVar(&activityAction, "action", "", "what happened, e.g. deploy")
	gf.StringVar(&activityCategory, "category", "", "area the action belongs to, e.g. ops")
	gf.StringVar(&activityTitle, "title", "", "one-line summary")
	gf.StringVar(&activityDescription, "description", "", "longer detail")
	gf.StringVar(&activityStatus, "status", "", "outcome (default success)")
	gf.StringVar(&activitySession, "session", "", "agent session id")

	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityLogCmd)
	rootCmd.AddCommand(activityCmd)
}

func runActivityList(cmd *cobra.Command, _ []string) error {
	if activityService == nil {
		return errors.New("activity service not configured")
	}

	filter := domain.ActivityFilter{
		Category: activityCategory,
		Action:   activityAction,
		Status:   activityStatus,
		Limit:    domain.ClampActivityLimit(activityLimit),
	}
	if activitySince != "" {
		since, err := parseSince(activitySince)
		if err != nil {
			return err
		}
		filter.Since = &since
	}

	activities, err := activityService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("listing activity: %w", err)
	}

	if activityJSON {
		data, err := json.MarshalIndent(lo.Map(activities, func(a domain.Activity, _ int) api.ActivityBody {
			return api.NewActivityBody(a)
		}), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal activity: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(activities) == 0 {
		cmd.Println("No activity found.")
		return nil
	}
	for _, a := range activities {
		cmd.Printf("%s  %-8s %s/%s  %s\n",
			a.Timestamp.Local().Format("2006-01-02 15:04"), a.Status, a.Category, a.Action, a.Title)
		if a.Description != "" {
			cmd.Printf("                  %s\n", a.Description)
		}
	}
	return nil
}

// parseSince accepts a date or an RFC 3339 timestamp.
func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := domain.ParseDateOnly(raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: use yyyy-mm-dd or RFC 3339", raw)
	}
	return t, nil
}

func runActivityLog(cmd *cobra.Command, _ []string) error {
	if activityService == nil {
		return errors.New("activity service not configured")
	}

	activity, err := activityService.Create(cmd.Context(), domain.NewActivityParams{
		Action:      activityAction,
		Category:    activityCategory,
		Title:       activityTitle,
		Description: activityDescription,
		Status:      activityStatus,
		SessionID:   activitySession,
	})
	if err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}

	cmd.Printf("Logged %s (%s)\n", activity.ID, activity.Status)
	return nil
}
