package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/assessment"
	"github.com/abhisek/siaga/internal/llm"
	"github.com/abhisek/siaga/internal/logging"
	"github.com/abhisek/siaga/internal/model"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the language model used for tailored advice",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Request advice for a sample profile from the configured provider",
	Long: "Builds the provider from SIAGA_LLM_PROVIDER or the first API key variable\n" +
		"found, scores the demo profile with a few risk factors set and asks for\n" +
		"tailored advice. Nothing is written to disk.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, logging.SinkStderr)
		if err != nil {
			return err
		}
		defer func() { _ = d.closeLog() }()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, d.logger)
		if err != nil {
			return err
		}
		if provider == nil {
			return fmt.Errorf("no LLM provider configured (set SIAGA_LLM_PROVIDER or an API key variable)")
		}

		adapter, err := model.NewAdapter(model.DemoBundle(), 0)
		if err != nil {
			return err
		}
		svc := assessment.NewService(adapter, d.catalogs, advisor.New(provider, advisorConfig(d.cfg), d.logger), d.logger)

		raw := svc.Resolver(d.cfg.Locale).NewDraft().Values()
		raw["Number_of_Failures"] = 3
		raw["Age"] = 20
		a, err := svc.Run(ctx, raw)
		if err != nil {
			return err
		}

		start := time.Now()
		adv, err := svc.GenerateAdvice(ctx, a, d.cfg.Locale)
		if err != nil {
			return fmt.Errorf("%s: %w", provider.ModelID(), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Model:    %s\n", provider.ModelID())
		fmt.Fprintf(out, "Latency:  %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(out, "Risk:     %s\n", a.Result.Percent())
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintln(out, adv.Summary)
		for _, act := range adv.Actions {
			fmt.Fprintln(out, "  - "+act)
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
