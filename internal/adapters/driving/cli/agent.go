package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	agentActive   bool
	agentSessions []string
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Agent presence commands",
}

var agentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the agent is active",
	Args:  cobra.NoArgs,
	RunE:  runAgentStatus,
}

var agentReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Record the agent's current status",
	Long: `Record the agent's current status. Agents call this on start, on
session changes and on exit (with --active=false).

Examples:
  mission-control agent report --session main --session review
  mission-control agent report --active=false`,
	Args: cobra.NoArgs,
	RunE: runAgentReport,
}

func init() {
	agentReportCmd.Flags().BoolVar(&agentActive, "active", true, "whether the agent is running")
	agentReportCmd.Flags().StringSliceVar(&agentSessions, "session", nil, "active session name (repeatable)")
	agentCmd.AddCommand(agentStatusCmd)
	agentCmd.AddCommand(agentReportCmd)
	rootCmd.AddCommand(agentCmd)
}

func runAgentStatus(cmd *cobra.Command, _ []string) error {
	if agentService == nil {
		return errors.New("agent service not configured")
	}

	p := agentService.Status(cmd.Context())
	if p.Error != "" {
		cmd.Printf("Status unknown: %s\n", p.Error)
		return nil
	}

	state := "inactive"
	if p.Active {
		state = "active"
	}
	cmd.Printf("Agent %s, %d session(s)\n", state, p.SessionCount)
	if len(p.Sessions) > 0 {
		cmd.Printf("Sessions: %s\n", strings.Join(p.Sessions, ", "))
	}
	if p.LastSeen != nil {
		cmd.Printf("Last seen: %s\n", p.LastSeen.Local().Format(time.RFC3339))
	} else {
		cmd.Println("Last seen: never")
	}
	return nil
}

func runAgentReport(cmd *cobra.Command, _ []string) error {
	if agentService == nil {
		return errors.New("agent service not configured")
	}

	if err := agentService.Update(cmd.Context(), agentActive, agentSessions); err != nil {
		return fmt.Errorf("recording agent status: %w", err)
	}
	cmd.Println("Agent status recorded.")
	return nil
}
