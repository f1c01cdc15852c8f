package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/quickstart/internal/database/repository"
	"github.com/jask/quickstart/internal/testdata"
)

var (
	runsLimit int
	runsPurge bool
	runsSeed  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved test runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := setup(true)
		if err != nil {
			return err
		}
		defer w.Close()

		if runsPurge {
			n, err := w.maintenance.PurgeRuns(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d runs\n", n)
			return nil
		}

		if runsSeed > 0 {
			seeded, err := testdata.SeedRuns(cmd.Context(), w.runs, runsSeed, time.Now().UnixNano())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d sample runs\n", len(seeded))
		}

		runs, err := w.runs.List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to show, 0 for all")
	runsCmd.Flags().BoolVar(&runsPurge, "purge", false, "delete all saved runs")
	runsCmd.Flags().IntVar(&runsSeed, "seed", 0, "insert this many sample runs first")
}

func printRuns(out io.Writer, runs []repository.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "no saved runs")
		return
	}
	for _, r := range runs {
		verdict := "no impairment"
		if r.HasImpairment {
			verdict = "impairment"
		}
		feedback := "-"
		if r.Feedback != nil {
			feedback = "disagreed"
			if *r.Feedback {
				feedback = "agreed"
			}
		}
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(out, "%s  %s  %-13s  %3.0f%%  %3d frames  feedback: %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), id, verdict, r.Confidence*100, r.Frames, feedback)
	}
}
