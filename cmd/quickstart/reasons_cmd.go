package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/quickstart/internal/sdk"
)

var reasonsCmd = &cobra.Command{
	Use:   "reasons",
	Short: "List recording failure codes accepted by simulator.failure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, code := range sdk.ReasonCodes() {
			reason, err := sdk.ParseReasonCode(string(code))
			if err != nil {
				return err
			}
			text := sdk.ReasonString(reason)
			if text == "" {
				text = "(no description)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", code, text)
		}
		return nil
	},
}
