package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/quickstart/internal/secrets"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored SDK API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key: %w", err)
			}
			key = line
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New("empty key")
		}
		store, err := secrets.NewStore()
		if err != nil {
			return err
		}
		if err := store.Put(secrets.APIKeyName, key); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "key saved")
		return nil
	},
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := secrets.NewStore()
		if err != nil {
			return err
		}
		if err := store.Delete(secrets.APIKeyName); err != nil && !errors.Is(err, secrets.ErrNotFound) {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "key removed")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyDeleteCmd)
}
