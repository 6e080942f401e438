package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the registered teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/teams")
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List the tournament sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := cmd.Flags().GetString("status")
		if err != nil {
			return err
		}
		endpoint := "/api/sessions"
		if status != "" {
			endpoint += "?status=" + status
		}
		return performGetRequest(endpoint)
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores <sessionID>",
	Short: "Show the score summary for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/sessions/" + args[0] + "/scores")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the all-time leaderboard over completed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/stats/leaderboard")
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the league settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/settings")
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the full data snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/export")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the persisted operation counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func init() {
	sessionsCmd.Flags().String("status", "", "Filter sessions by status (active or completed)")
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
