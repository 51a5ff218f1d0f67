package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/assessment"
	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/logging"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one student profile from the command line",
	Example: `  siaga predict --defaults --set Number_of_Failures=3 --set Age=20
  siaga predict --defaults --json --advice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, _ := cmd.Flags().GetStringArray("set")
		useDefaults, _ := cmd.Flags().GetBool("defaults")
		asJSON, _ := cmd.Flags().GetBool("json")
		withAdvice, _ := cmd.Flags().GetBool("advice")

		values, err := parseAssignments(sets)
		if err != nil {
			return err
		}

		d, err := setup(cmd, logging.SinkStderr)
		if err != nil {
			return err
		}
		defer func() { _ = d.closeLog() }()

		ctx := cmd.Context()
		svc, _, err := loadService(ctx, d)
		if err != nil {
			return err
		}

		raw := values
		if useDefaults {
			raw = svc.Resolver(d.cfg.Locale).NewDraft().Values()
			for k, v := range values {
				raw[k] = v
			}
		}

		a, err := svc.Run(ctx, raw)
		if err != nil {
			return err
		}

		var adv advisor.Advice
		if withAdvice {
			adv = svc.Advise(ctx, a, d.cfg.Locale)
		} else {
			adv = svc.StaticAdvice(a, d.cfg.Locale)
		}

		if asJSON {
			return writePredictionJSON(cmd.OutOrStdout(), a, adv)
		}
		writePrediction(cmd.OutOrStdout(), i18n.New(i18n.Match(d.cfg.Locale)), a, adv)
		return nil
	},
}

func init() {
	predictCmd.Flags().StringArray("set", nil, "Feature value as Name=value (repeatable)")
	predictCmd.Flags().Bool("defaults", false, "Start from the form defaults; --set overrides individual fields")
	predictCmd.Flags().Bool("json", false, "Print the result as JSON")
	predictCmd.Flags().Bool("advice", false, "Ask the configured LLM for tailored suggestions")
}

// parseAssignments turns Name=value pairs into raw form values.
func parseAssignments(sets []string) (map[string]int, error) {
	out := make(map[string]int, len(sets))
	for _, s := range sets {
		name, val, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want Name=value", s)
		}
		v, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: value must be a whole number", s)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("invalid --set %q: %s given twice", s, name)
		}
		out[name] = v
	}
	return out, nil
}

type predictionOutput struct {
	ID          string         `json:"id"`
	Features    []string       `json:"features"`
	Vector      []int          `json:"vector"`
	Label       int            `json:"label"`
	Probability float64        `json:"probability"`
	Percent     string         `json:"percent"`
	Threshold   float64        `json:"threshold"`
	Advice      advisor.Advice `json:"advice"`
}

func writePredictionJSON(w io.Writer, a *assessment.Assessment, adv advisor.Advice) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(predictionOutput{
		ID:          a.ID,
		Features:    a.Record.Names(),
		Vector:      a.Record.Values(),
		Label:       a.Result.Label,
		Probability: a.Result.Probability,
		Percent:     a.Result.Percent(),
		Threshold:   a.Result.Threshold,
		Advice:      adv,
	})
}

func writePrediction(w io.Writer, p *i18n.Printer, a *assessment.Assessment, adv advisor.Advice) {
	headline := p.T("STATUS: SAFE")
	if a.Result.AtRisk() {
		headline = p.T("WARNING: AT RISK OF DROPOUT")
	}
	fmt.Fprintln(w, headline)
	fmt.Fprintln(w, p.T("Risk probability: %s", a.Result.Percent()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.T("Suggested Actions"))
	fmt.Fprintln(w, "  "+adv.Summary)
	for _, act := range adv.Actions {
		fmt.Fprintln(w, "  - "+act)
	}
}
