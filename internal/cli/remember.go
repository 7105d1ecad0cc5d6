package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/logger"
	"github.com/kchou/attend/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [fragments...]",
		Short: "Ingest text fragments as memories",
		Long:  "Process fragments into memory entries. Each positional arg is one fragment; with no args, one fragment per stdin line.",
		Run:   runRemember,
	}

	cmd.Flags().StringP("session", "s", "", "Session id (required)")
	cmd.Flags().Float64P("importance", "i", 1.0, "Stated importance in [0,1]")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	sessionID, _ := cmd.Flags().GetString("session")
	importance, _ := cmd.Flags().GetFloat64("importance")

	fragments := args
	if len(fragments) == 0 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				fragments = append(fragments, scanner.Text())
			}
		}
	}
	if len(fragments) == 0 {
		exitErr("remember", fmt.Errorf("no fragments given (args or stdin)"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mgr := memory.NewManager(s, logger.New("memory"), cfg.WorkingMemorySize)
	entries := mgr.AddMemories(cmd.Context(), sessionID, fragments, importance)

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Println(string(b))
}
