package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/insights"
)

func init() {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Analyze recent activity for productivity insights",
		Run:   runInsights,
	}

	cmd.Flags().IntP("limit", "l", 100, "Max persisted activities to consider")

	RootCmd.AddCommand(cmd)
}

func runInsights(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	recent, err := s.RecentActivities(cmd.Context(), limit)
	if err != nil {
		exitErr("load activities", err)
	}

	// The store returns newest-first; the analyzer expects newest-last.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	analyzer := insights.New(analysisThresholds())
	result := analyzer.Analyze(recent)

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}

func analysisThresholds() insights.Thresholds {
	return insights.Thresholds{
		Window:            cfg.AnalysisWindow,
		FocusSession:      cfg.FocusSessionMin,
		Intervention:      cfg.InterventionAfter,
		DistractionLimit:  cfg.DistractionLimit,
		BreakAfterFocused: cfg.BreakAfterFocusCount,
	}
}
