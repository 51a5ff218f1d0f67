package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/form"
	"github.com/abhisek/siaga/internal/logging"
	"github.com/abhisek/siaga/internal/model"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the questions the loaded model asks, in model order",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := setup(cmd, logging.SinkStderr)
		if err != nil {
			return err
		}
		defer func() { _ = d.closeLog() }()

		b, err := model.Load(d.cfg.Model.Path)
		if err != nil {
			return err
		}
		resolver := form.NewResolver(d.catalogs.For(d.cfg.Locale), b.FeatureNames())

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resolver.Fields())
		}
		return printFields(cmd.OutOrStdout(), resolver.Fields())
	},
}

func init() {
	fieldsCmd.Flags().Bool("json", false, "Print the resolved field specs as JSON")
}

func printFields(w io.Writer, fields []features.FeatureSpec) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tDEFAULT\tDOMAIN\tLABEL")
	for _, f := range fields {
		label := f.Label
		if f.Fallback {
			label += " (generic)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", f.Name, f.Kind, f.Default, domain(f), label)
	}
	return tw.Flush()
}

// domain renders the accepted values, e.g. "15-22" or "0=No 1=Yes".
func domain(f features.FeatureSpec) string {
	if !f.HasOptions() {
		return fmt.Sprintf("%d-%d", f.Min, f.Max)
	}
	parts := make([]string, len(f.Options))
	for i, o := range f.Options {
		parts[i] = strconv.Itoa(o.Value) + "=" + o.Label
	}
	return strings.Join(parts, " ")
}
