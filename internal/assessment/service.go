package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/form"
	"github.com/abhisek/siaga/internal/i18n"
	"github.com/abhisek/siaga/internal/model"
)

// Assessment is one scored submission. It is never persisted.
type Assessment struct {
	ID        string
	CreatedAt time.Time
	Record    form.InputRecord
	Result    model.PredictionResult
	Cached    bool
	Elapsed   time.Duration
}

// cachedPredictor is satisfied by model.CachedPredictor.
type cachedPredictor interface {
	PredictCached(rec model.Record) (model.PredictionResult, bool)
}

// Service assembles submissions, scores them and attaches advice.
type Service struct {
	predictor model.Predictor
	catalogs  *features.Set
	advisor   *advisor.Service
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates an assessment service. advisor may be nil, in which
// case only static advice is produced.
func NewService(predictor model.Predictor, catalogs *features.Set, adv *advisor.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adv == nil {
		adv = advisor.New(nil, advisor.DefaultConfig(), logger)
	}
	return &Service{
		predictor: predictor,
		catalogs:  catalogs,
		advisor:   adv,
		logger:    logger.Named("assessment"),
		now:       time.Now,
	}
}

// Features returns the model's feature names in order.
func (s *Service) Features() []string {
	return s.predictor.Features()
}

// Threshold returns the decision threshold in use.
func (s *Service) Threshold() float64 {
	return s.predictor.Threshold()
}

// Catalog returns the feature catalog for a language preference.
func (s *Service) Catalog(lang string) *features.Catalog {
	return s.catalogs.For(lang)
}

// Resolver returns a form resolver over the model's features.
func (s *Service) Resolver(lang string) *form.Resolver {
	return form.NewResolver(s.Catalog(lang), s.predictor.Features())
}

// Advisor returns the advice service.
func (s *Service) Advisor() *advisor.Service {
	return s.advisor
}

// Run assembles raw into model order and scores it. Assembly errors are
// returned as *form.AssemblyError. A record that does not match the model
// schema panics with *model.SchemaMismatchError.
func (s *Service) Run(ctx context.Context, raw map[string]int) (*Assessment, error) {
	// Domains are language independent, so any catalog will do.
	rec, err := form.Assemble(raw, s.predictor.Features(), s.catalogs.For(""))
	if err != nil {
		s.logger.Debug("assembly rejected", zap.Error(err))
		return nil, err
	}

	a := &Assessment{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Record:    rec,
	}

	start := time.Now()
	if c, ok := s.predictor.(cachedPredictor); ok {
		a.Result, a.Cached = c.PredictCached(rec)
	} else {
		a.Result = s.predictor.Predict(rec)
	}
	a.Elapsed = time.Since(start)

	s.logger.Info("assessment scored",
		zap.String("assessment_id", a.ID),
		zap.Int("label", a.Result.Label),
		zap.Float64("probability", a.Result.Probability),
		zap.Float64("threshold", a.Result.Threshold),
		zap.Bool("cached", a.Cached),
		zap.Duration("elapsed", a.Elapsed),
	)
	return a, nil
}

// Advise returns advice for a scored assessment in the given language.
func (s *Service) Advise(ctx context.Context, a *Assessment, lang string) advisor.Advice {
	return s.advisor.Advise(ctx, s.adviceRequest(a, lang))
}

// GenerateAdvice asks the LLM for advice and reports its failure instead
// of falling back to static advice.
func (s *Service) GenerateAdvice(ctx context.Context, a *Assessment, lang string) (advisor.Advice, error) {
	return s.advisor.Generate(ctx, s.adviceRequest(a, lang))
}

// StaticAdvice returns the fixed advice for a scored assessment.
func (s *Service) StaticAdvice(a *Assessment, lang string) advisor.Advice {
	return s.advisor.Static(s.adviceRequest(a, lang))
}

func (s *Service) adviceRequest(a *Assessment, lang string) advisor.Request {
	cat := s.Catalog(lang)
	names, vals := a.Record.Names(), a.Record.Values()
	values := make(map[string]int, len(names))
	for i, name := range names {
		values[name] = vals[i]
	}
	return advisor.Request{
		AssessmentID: a.ID,
		Printer:      i18n.New(cat.Language()),
		Fields:       cat.FieldsFor(names),
		Values:       values,
		Result:       a.Result,
	}
}
