package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/quickstart/internal/sdk"
	"github.com/jask/quickstart/internal/service"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Query device and SDK version support",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := setup(false)
		if err != nil {
			return err
		}
		defer w.Close()

		rep := w.support.Check(cmd.Context(), w.apiKey)
		if checkJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		printReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the report as JSON")
}

func printReport(out io.Writer, rep service.SupportReport) {
	switch rep.Device.State {
	case sdk.StateSupported:
		fmt.Fprintf(out, "device:  supported (%s)\n", rep.Device.Device)
	case sdk.StateUnsupported:
		fmt.Fprintf(out, "device:  not supported (%s)", rep.Device.Device)
		if rep.Device.Nearest != "" {
			fmt.Fprintf(out, ", closest supported: %s", rep.Device.Nearest)
		}
		fmt.Fprintln(out)
	default:
		fmt.Fprintf(out, "device:  %s\n", rep.Device.State)
	}

	switch rep.Version.State {
	case sdk.StateSupported:
		fmt.Fprintf(out, "version: supported (%s)", rep.Version.Version)
		if rep.Version.Unverified {
			fmt.Fprint(out, ", unverified")
		}
		fmt.Fprintln(out)
	case sdk.StateUnsupported:
		fmt.Fprintf(out, "version: not supported (%s)", rep.Version.Version)
		if len(rep.Version.Supported) > 0 {
			fmt.Fprintf(out, ", supported: %s", strings.Join(rep.Version.Supported, ", "))
		}
		fmt.Fprintln(out)
	default:
		fmt.Fprintf(out, "version: %s\n", rep.Version.State)
	}
}
