package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the local query history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past queries, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cleanup := newDispatcher()
		defer cleanup()

		entries := d.History().Entries()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No queries yet.")
			return nil
		}

		for _, e := range entries {
			preview := e.SummaryPreview
			if i := strings.IndexByte(preview, '\n'); i >= 0 {
				preview = preview[:i]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.Date.Local().Format("2006-01-02 15:04"), e.Query)
			if preview != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "                  %s\n", preview)
			}
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the entire query history",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, cleanup := newDispatcher()
		defer cleanup()

		d.History().Clear()
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
