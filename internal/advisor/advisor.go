package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/llm"
	"github.com/abhisek/siaga/internal/model"
)

// Source says where a piece of advice came from.
type Source string

const (
	SourceStatic Source = "static"
	SourceLLM    Source = "llm"
)

// Advice is the suggested follow-up shown next to a result.
type Advice struct {
	Source  Source   `json:"source"`
	Summary string   `json:"summary"`
	Actions []string `json:"actions,omitempty"`
}

// Config holds configuration for LLM-generated advice.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
		Timeout:     20 * time.Second,
	}
}

// Request is one assessment to advise on.
type Request struct {
	AssessmentID string
	Printer      *i18n.Printer
	Fields       []features.FeatureSpec
	Values       map[string]int
	Result       model.PredictionResult
}

// Service produces counselling advice. Without a provider it only returns
// the static advice.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// New creates an advisor. provider may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("advisor")}
}

// Enabled reports whether tailored advice can be generated.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Static returns the fixed advice for the request's outcome.
func (s *Service) Static(req Request) Advice {
	p := req.Printer
	if p == nil {
		p = i18n.New(i18n.Supported[0])
	}
	return StaticAdvice(p, req.Result)
}

// Advise returns tailored advice when a provider is configured and the
// call succeeds, and the static advice otherwise.
func (s *Service) Advise(ctx context.Context, req Request) Advice {
	if s.provider == nil {
		return s.Static(req)
	}

	adv, err := s.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("falling back to static advice",
			zap.String("assessment_id", req.AssessmentID),
			zap.Error(err),
		)
		return s.Static(req)
	}
	return adv
}

// Generate asks the provider for tailored advice.
func (s *Service) Generate(ctx context.Context, req Request) (Advice, error) {
	if s.provider == nil {
		return Advice{}, fmt.Errorf("no LLM provider configured")
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "counselling-advice")
	if req.AssessmentID != "" {
		ctx = llm.WithCorrelationID(ctx, req.AssessmentID)
	}

	userMsg, err := buildAdviceMessage(req)
	if err != nil {
		return Advice{}, fmt.Errorf("build advice prompt: %w", err)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      adviceSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      AdviceSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Advice{}, fmt.Errorf("LLM advice failed: %w", err)
	}

	var out adviceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Advice{}, fmt.Errorf("failed to parse advice response: %w", err)
	}

	actions := make([]string, 0, len(out.Actions))
	for _, a := range out.Actions {
		if a = strings.TrimSpace(a); a != "" {
			actions = append(actions, a)
		}
	}
	if strings.TrimSpace(out.Summary) == "" || len(actions) == 0 {
		return Advice{}, fmt.Errorf("LLM advice was empty")
	}

	return Advice{
		Source:  SourceLLM,
		Summary: strings.TrimSpace(out.Summary),
		Actions: actions,
	}, nil
}

// StaticAdvice is the fixed suggestion for a result.
func StaticAdvice(p *i18n.Printer, res model.PredictionResult) Advice {
	if res.AtRisk() {
		return Advice{
			Source:  SourceStatic,
			Summary: p.T("Schedule a counselling session right away to understand the student's situation."),
		}
	}
	return Advice{
		Source:  SourceStatic,
		Summary: p.T("Keep monitoring attendance and grades as usual."),
	}
}

type adviceOutput struct {
	Summary string   `json:"summary"`
	Actions []string `json:"actions"`
}

const adviceSystemPrompt = `You are an experienced secondary-school guidance counsellor. A classifier has scored a student's risk of dropping out from a short profile. Suggest how the counsellor should follow up.

Instructions:
- Base every suggestion on the profile answers given. Do not invent facts about the student.
- Write a one-sentence summary and between one and four short, concrete actions.
- Do not restate the probability or question the classifier.
- Never suggest disciplinary measures.
- Answer in the language requested.`

var adviceUserTemplate = template.Must(template.New("advice").Parse(`Language: {{.Language}}
Outcome: {{if .AtRisk}}at risk of dropout{{else}}not at risk{{end}} (probability {{.Percent}})

Student profile:
{{range .Answers}}- {{.Label}}: {{.Value}}
{{end}}`))

type answer struct {
	Label string
	Value string
}

func buildAdviceMessage(req Request) (string, error) {
	answers := make([]answer, 0, len(req.Fields))
	for _, f := range req.Fields {
		v, ok := req.Values[f.Name]
		if !ok {
			continue
		}
		answers = append(answers, answer{Label: f.Label, Value: f.Describe(v)})
	}

	lang := "English"
	if req.Printer != nil && i18n.IsIndonesian(req.Printer.Tag()) {
		lang = "Indonesian"
	}

	var buf bytes.Buffer
	err := adviceUserTemplate.Execute(&buf, struct {
		Language string
		AtRisk   bool
		Percent  string
		Answers  []answer
	}{lang, req.Result.AtRisk(), req.Result.Percent(), answers})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
