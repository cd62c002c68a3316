package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect evaluation backend usage",
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage aggregated by call purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		stats, err := st.CallLog().UsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No evaluation calls recorded.")
			return nil
		}

		fmt.Printf("%-16s  %8s  %12s  %12s\n", "Purpose", "Calls", "In tokens", "Out tokens")
		fmt.Println(strings.Repeat("─", 56))
		for _, s := range stats {
			fmt.Printf("%-16s  %8d  %12d  %12d\n", s.Purpose, s.Calls, s.InputTokens, s.OutputTokens)
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmUsageCmd)
}
