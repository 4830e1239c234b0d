package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/luminoshq/luminos/internal/ailink"
)

var doctorConnect bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check provider and store configuration",
	Long: `Check which AI providers are configured and usable.

With --connect, each configured provider is exercised with a minimal
completion request to verify credentials end to end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gateway := newGateway(cfg)
		available := gateway.Available()

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Provider", "Configured", "Model", "Status"})

		for _, id := range ailink.ProviderOrder {
			pc := cfg.AILink.Providers[id]

			configured := "no"
			if pc.APIKey != "" {
				configured = "yes"
			}

			model := pc.Model
			if model == "" {
				model = ailink.DefaultModels[id]
			}

			status := "-"
			if pc.APIKey != "" {
				status = "ready"
				if doctorConnect {
					status = connectStatus(cmd.Context(), gateway, id)
				}
			}

			t.AppendRow(table.Row{id, configured, model, status})
		}

		fmt.Println(t.Render())

		fmt.Printf("Structuring provider: %s\n", cfg.Diagnosis.StructuringProvider)
		fmt.Printf("Store: %s", cfg.Store.Driver)
		if cfg.Store.URL != "" {
			fmt.Printf(" (%s)\n", cfg.Store.URL)
		} else {
			fmt.Printf(" (%s)\n", cfg.Store.Path)
		}

		if len(available) == 0 {
			fmt.Println("\nNo provider configured. Set GEMINI_API_KEY, OPENAI_API_KEY, or XAI_API_KEY.")
		}

		return nil
	},
}

func connectStatus(ctx context.Context, gateway *ailink.Gateway, providerID string) string {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := gateway.Generate(checkCtx, providerID, "Reply with the single word: ok", 8); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return "ok"
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorConnect, "connect", false, "verify each configured provider with a live request")
}
