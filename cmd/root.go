package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/assessment"
	"github.com/abhisek/siaga/internal/config"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/llm"
	"github.com/abhisek/siaga/internal/logging"
	"github.com/abhisek/siaga/internal/model"
)

var rootCmd = &cobra.Command{
	Use:   "siaga",
	Short: "Dropout early-warning form for school counsellors",
	Long: "Siaga scores a student's risk of dropping out from a short profile, using a\n" +
		"pre-trained classifier. The form asks exactly the questions the model needs.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides SIAGA_CONFIG env var)")
	rootCmd.PersistentFlags().String("model", "", "Path to the model artifact (overrides model.path and SIAGA_MODEL)")
	rootCmd.PersistentFlags().String("lang", "", "UI language: id or en (overrides locale and SIAGA_LANG)")

	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoModelCmd)
	rootCmd.AddCommand(installModelCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps is what every subcommand needs before doing its own work.
type deps struct {
	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error
	catalogs *features.Set
}

// setup loads the config, applies flag overrides and builds the logger and
// feature catalogs.
func setup(cmd *cobra.Command, sink logging.Sink) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log, sink)
	if err != nil {
		return nil, err
	}

	overrides, err := cfg.FeatureOverrides()
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	catalogs, err := features.NewSet(overrides)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &deps{cfg: cfg, logger: logger, closeLog: closeLog, catalogs: catalogs}, nil
}

// loadConfig resolves the config file using --config (highest priority),
// then SIAGA_CONFIG, then the default XDG path.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("model"); p != "" {
		cfg.Model.Path = p
	}
	if l, _ := cmd.Flags().GetString("lang"); l != "" {
		cfg.Locale = l
	}
	return cfg, nil
}

// newAdvisor returns an LLM-backed advisor when advice is enabled and a
// provider is configured, and nil otherwise.
func newAdvisor(ctx context.Context, d *deps) *advisor.Service {
	if !d.cfg.Advisor.Enabled {
		return nil
	}
	provider, err := llm.NewProviderFromEnv(ctx, d.logger)
	if err != nil {
		d.logger.Warn("LLM provider not configured; using static advice", zap.Error(err))
		return nil
	}
	if provider == nil {
		d.logger.Info("advisor enabled but no LLM provider found; using static advice")
		return nil
	}
	return advisor.New(provider, advisorConfig(d.cfg), d.logger)
}

func advisorConfig(cfg config.Config) advisor.Config {
	return advisor.Config{
		MaxTokens:   cfg.Advisor.MaxTokens,
		Temperature: cfg.Advisor.Temperature,
		Timeout:     cfg.Advisor.Timeout,
	}
}

// loadService loads the artifact and wires the prediction stack. A missing
// or corrupt artifact is returned as is.
func loadService(ctx context.Context, d *deps) (*assessment.Service, *model.Bundle, error) {
	b, err := model.Load(d.cfg.Model.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w\n\nRun `siaga demo-model` to install the demo model", err)
	}
	adapter, err := model.NewAdapter(b, d.cfg.Model.Threshold)
	if err != nil {
		return nil, nil, err
	}
	predictor, err := model.NewCachedPredictor(adapter, d.cfg.Server.CacheSize)
	if err != nil {
		return nil, nil, err
	}
	return assessment.NewService(predictor, d.catalogs, newAdvisor(ctx, d), d.logger), b, nil
}
