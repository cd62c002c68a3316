package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/engine"
	"github.com/abhisek/intervue/internal/evaluator"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Create an interview invite and print its token",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		notes, _ := cmd.Flags().GetString("notes")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("creating a logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		st, err := openStore(cfg, log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		eng := engine.New(st.Sessions(), evaluator.NewFallback(), log)
		session, err := eng.CreateInvite(cmd.Context(), engine.CreateInput{
			Name:  name,
			Email: email,
			Phone: phone,
			Notes: notes,
		})
		if err != nil {
			return fmt.Errorf("create invite: %w", err)
		}

		fmt.Println("Session ID:  ", session.ID)
		fmt.Println("Invite token:", session.InviteToken)
		return nil
	},
}

func init() {
	inviteCmd.Flags().String("name", "", "candidate name")
	inviteCmd.Flags().String("email", "", "candidate email")
	inviteCmd.Flags().String("phone", "", "candidate phone")
	inviteCmd.Flags().String("notes", "", "interviewer notes")
}
