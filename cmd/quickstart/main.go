package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/quickstart/internal/appstate"
	"github.com/jask/quickstart/internal/prefs"
	"github.com/jask/quickstart/internal/tui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "quickstart",
	Short:         "Run an impairment test through the SDK",
	Long:          "Checks device and SDK version support, then walks through recording, analysis and feedback.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/quickstart/config.toml)")
	rootCmd.AddCommand(checkCmd, runsCmd, keyCmd, initCmd, reasonsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	w, err := setup(true)
	if err != nil {
		return err
	}
	defer w.Close()

	ps, err := prefs.NewStore()
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	store := appstate.NewStore(appstate.Start{})
	stopObserving := w.session.Observe(store)
	defer stopObserving()

	app := tui.New(ctx, store, tui.Services{Support: w.support, Session: w.session}, ps, tui.Options{
		SDKVersion: w.cfg.SDK.Version,
		APIKey:     w.apiKey,
		APIKeyHint: fmt.Sprintf("Set %s or run `quickstart key set <key>`", w.cfg.SDK.APIKeyEnv),
		Log:        w.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
