package cmd

import (
	"errors"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luminoshq/luminos/internal/core/diagnosis"
	"github.com/luminoshq/luminos/internal/core/store"
	"github.com/luminoshq/luminos/internal/observability"
	"github.com/luminoshq/luminos/internal/output"
)

var (
	diagnoseDomain string
	diagnoseBrand  string
	diagnosePro    bool
	diagnoseCustom []string
	diagnoseFormat string
	diagnoseNoSave bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run a brand visibility audit",
	Long: `Run one full audit: profile the brand, synthesize consumer prompts,
query the configured AI providers, and print the scorecard.

At least one of --domain or --brand is required. The result is saved to
the local store unless --no-save is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(diagnoseFormat)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The store is best-effort for one-shot runs: a failed open is a
		// warning, not a reason to skip the audit.
		var sink diagnosis.Sink
		var st *store.Store
		if !diagnoseNoSave {
			st, err = store.Open(cmd.Context(), cfg.Store)
			if err != nil {
				observability.CLILogger.Warn("Store unavailable, result will not be saved", zap.Error(err))
			} else if err := st.Migrate(cmd.Context()); err != nil {
				observability.CLILogger.Warn("Store migration failed, result will not be saved", zap.Error(err))
				_ = st.Close()
				st = nil
			}
			if st != nil {
				defer func() { _ = st.Close() }()
				sink = st
			}
		}

		gateway := newGateway(cfg)
		pipeline := newPipeline(cfg, gateway, sink, observability.NewPipelineLogger(cfg.Logging.Level))

		rec, err := pipeline.Run(cmd.Context(), diagnosis.Request{
			Domain:        diagnoseDomain,
			BrandName:     diagnoseBrand,
			CustomPrompts: diagnoseCustom,
			Pro:           diagnosePro,
		})
		if err != nil {
			if errors.Is(err, diagnosis.ErrNoProviders) {
				ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid,
					"No AI provider configured. Set GEMINI_API_KEY, OPENAI_API_KEY, or XAI_API_KEY.", err)
			}
			return err
		}

		rendered, err := output.NewFormatter(format).FormatDiagnosis(rec)
		if err != nil {
			return err
		}
		fmt.Println(rendered)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)

	diagnoseCmd.Flags().StringVarP(&diagnoseDomain, "domain", "d", "", "brand website domain (e.g. acme.com)")
	diagnoseCmd.Flags().StringVarP(&diagnoseBrand, "brand", "b", "", "brand name (used when no domain is given)")
	diagnoseCmd.Flags().BoolVar(&diagnosePro, "pro", false, "evaluate against every configured provider")
	diagnoseCmd.Flags().StringArrayVar(&diagnoseCustom, "custom", nil, "custom prompt to include (repeatable, max 5)")
	diagnoseCmd.Flags().StringVarP(&diagnoseFormat, "output", "o", "table", "output format: table, json, or markdown")
	diagnoseCmd.Flags().BoolVar(&diagnoseNoSave, "no-save", false, "do not persist the result to the local store")
}
