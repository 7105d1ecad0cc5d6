package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/logger"
	"github.com/kchou/attend/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "session [id]",
		Short: "Create or reuse a session",
		Long:  "Create a session for a user. An existing id is reused; a colliding new id is regenerated.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSession,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runSession(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")

	var requested string
	if len(args) > 0 {
		requested = args[0]
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mgr := session.NewManager(s, nil, logger.New("session"))
	mgr.SetMaxRetries(cfg.SessionCreateRetries)
	id, err := mgr.Create(cmd.Context(), user, requested)
	if err != nil {
		exitErr("create session", err)
	}

	fmt.Println(id)
}
