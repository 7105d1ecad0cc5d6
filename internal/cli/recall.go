package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/logger"
	"github.com/kchou/attend/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "Retrieve the most relevant memories for a session",
		Long:  "Score persisted and working memories by strength, recency and importance, and return the top entries.",
		Run:   runRecall,
	}

	cmd.Flags().StringP("session", "s", "", "Session id (required)")
	cmd.Flags().IntP("limit", "l", 0, "Max entries (default from config)")
	cmd.Flags().StringP("format", "f", "json", "Output format: json or text")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runRecall(cmd *cobra.Command, args []string) {
	sessionID, _ := cmd.Flags().GetString("session")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	if limit <= 0 {
		limit = cfg.RetrievalLimit
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mgr := memory.NewManager(s, logger.New("memory"), cfg.WorkingMemorySize)
	entries := mgr.RelevantContext(cmd.Context(), sessionID, limit)

	if format == "text" {
		fmt.Print(memory.FormatContext(entries))
		return
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}
