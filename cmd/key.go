package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/logging"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store an API key (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if scanner.Scan() {
				key = scanner.Text()
			}
		}

		if err := rt.creds.Set(cmd.Context(), strings.TrimSpace(key)); err != nil {
			if errors.Is(err, credential.ErrEmptyKey) {
				return errors.New("please enter your API key")
			}
			return fmt.Errorf("save key: %w", err)
		}
		logger := logging.FromContext(cmd.Context())
		logger.Info().Msg("api key stored")
		fmt.Fprintln(cmd.OutOrStdout(), "✅ API key saved.")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether a key is stored, masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		key, err := rt.creds.Get(cmd.Context())
		switch {
		case errors.Is(err, credential.ErrNotFound):
			fmt.Fprintln(cmd.OutOrStdout(), "No API key stored.")
			return nil
		case err != nil:
			return fmt.Errorf("read key: %w", err)
		}
		if !rt.cfg.LLM.NeedsKey() {
			fmt.Fprintf(cmd.OutOrStdout(), "The %s provider needs no API key.\n", rt.cfg.LLM.Provider)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\n", credential.Mask(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.creds.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear key: %w", err)
		}
		logger := logging.FromContext(cmd.Context())
		logger.Info().Msg("api key cleared")
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
		if ok, _ := rt.creds.Has(cmd.Context()); ok && rt.cfg.LLM.NeedsKey() {
			fmt.Fprintf(cmd.OutOrStdout(), "A key is still set through %s.\n", rt.cfg.LLM.StandardKeyEnv())
		}
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
