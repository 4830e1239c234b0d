package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luminoshq/luminos/internal/core/store"
	errwrap "github.com/luminoshq/luminos/internal/errors"
	"github.com/luminoshq/luminos/internal/output"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored diagnoses",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		summaries, err := st.ListDiagnoses(cmd.Context(), historyLimit)
		if err != nil {
			return errwrap.WrapDatabaseError(cmd.Context(), err, "failed to list diagnoses")
		}

		fmt.Println(output.FormatSummaries(summaries))
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored diagnosis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(historyFormat)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		rec, err := st.GetDiagnosis(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no diagnosis with id %s", args[0])
			}
			return errwrap.WrapDatabaseError(cmd.Context(), err, "failed to load diagnosis")
		}

		rendered, err := output.NewFormatter(format).FormatDiagnosis(rec)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cmd.Context(), cfg.Store)
	if err != nil {
		return nil, errwrap.WrapDatabaseError(cmd.Context(), err, "store open failed")
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		_ = st.Close()
		return nil, errwrap.WrapDatabaseError(cmd.Context(), err, "store migration failed")
	}
	return st, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum diagnoses to list (default 20)")
	historyShowCmd.Flags().StringVarP(&historyFormat, "output", "o", "table", "output format: table, json, or markdown")
}
