package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List recent persisted activity records",
		Run:   runActivities,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runActivities(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	activities, err := s.RecentActivities(cmd.Context(), limit)
	if err != nil {
		exitErr("list activities", err)
	}

	b, _ := json.MarshalIndent(activities, "", "  ")
	fmt.Println(string(b))
}
