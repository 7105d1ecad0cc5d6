package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kchou/attend/internal/logger"
	"github.com/kchou/attend/internal/session"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init-user",
		Short: "Register a user profile",
		Run:   runInitUser,
	}

	cmd.Flags().StringP("user", "u", "", "User id (required)")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("first", "", "First name")
	cmd.Flags().String("last", "", "Last name")
	cmd.MarkFlagRequired("user")

	RootCmd.AddCommand(cmd)
}

func runInitUser(cmd *cobra.Command, args []string) {
	user, _ := cmd.Flags().GetString("user")
	email, _ := cmd.Flags().GetString("email")
	first, _ := cmd.Flags().GetString("first")
	last, _ := cmd.Flags().GetString("last")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	mgr := session.NewManager(s, nil, logger.New("session"))
	profile, err := mgr.InitializeUser(cmd.Context(), user, email, first, last)
	if err != nil {
		exitErr("init user", err)
	}

	b, _ := json.MarshalIndent(profile, "", "  ")
	fmt.Println(string(b))
}
