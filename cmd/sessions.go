package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		order, _ := cmd.Flags().GetString("order")

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

		sessions, err := st.Sessions().List(cmd.Context(), store.ListFilter{
			Search: search,
			Sort:   sort,
			Order:  order,
		})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Printf("%-36s  %-15s  %-24s  %-26s  %s\n",
			"ID", "Status", "Candidate", "Email", "Score")
		fmt.Println(strings.Repeat("─", 110))
		for _, s := range sessions {
			score := "-"
			if s.FinalScore != nil {
				score = fmt.Sprintf("%.1f", *s.FinalScore)
			}
			fmt.Printf("%-36s  %-15s  %-24s  %-26s  %s\n",
				s.ID, s.Status, clip(s.Candidate.Name, 24), clip(s.Candidate.Email, 26), score)
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().String("search", "", "match candidate name, email or phone")
	sessionsCmd.Flags().String("sort", "", "sort by \"score\" or \"recent\"")
	sessionsCmd.Flags().String("order", "", "\"asc\" or \"desc\"")
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
