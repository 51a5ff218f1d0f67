package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/form"
	"github.com/abhisek/siaga/internal/llm"
	"github.com/abhisek/siaga/internal/model"
)

func newTestService(t *testing.T, adv *advisor.Service, logger *zap.Logger) (*Service, *model.CachedPredictor) {
	t.Helper()
	a, err := model.NewAdapter(model.DemoBundle(), 0)
	require.NoError(t, err)
	cached, err := model.NewCachedPredictor(a, 16)
	require.NoError(t, err)
	set, err := features.NewSet(nil)
	require.NoError(t, err)
	return NewService(cached, set, adv, logger), cached
}

func defaults(s *Service) map[string]int {
	return s.Resolver("en").NewDraft().Values()
}

func TestRun_ScoresDefaults(t *testing.T) {
	s, _ := newTestService(t, nil, nil)

	a, err := s.Run(context.Background(), defaults(s))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, s.Features(), a.Record.Names())
	assert.InDelta(t, (0.6+0.15+0.35)/3, a.Result.Probability, 1e-9)
	assert.Equal(t, 0, a.Result.Label)
	assert.Equal(t, 0.5, s.Threshold())
	assert.False(t, a.Cached)
}

func TestRun_AtRiskAndCached(t *testing.T) {
	s, cached := newTestService(t, nil, nil)
	raw := defaults(s)
	raw["Number_of_Failures"] = 3
	raw["Age"] = 20
	raw["Weekend_Alcohol_Consumption"] = 5

	first, err := s.Run(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Result.Label)
	assert.Equal(t, "73.3%", first.Result.Percent())
	assert.False(t, first.Cached)

	second, err := s.Run(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result, second.Result)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, cached.Len())
}

func TestRun_AssemblyErrors(t *testing.T) {
	s, _ := newTestService(t, nil, nil)

	missing := defaults(s)
	delete(missing, "Age")
	extra := defaults(s)
	extra["Shoe_Size"] = 1
	outOfDomain := defaults(s)
	outOfDomain["Number_of_Failures"] = 5

	tests := []struct {
		name string
		raw  map[string]int
		want error
	}{
		{"missing", missing, form.ErrMissingFeatureValue},
		{"unexpected", extra, form.ErrUnexpectedFeature},
		{"out of domain", outOfDomain, form.ErrValueOutOfDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			var ae *form.AssemblyError
			assert.True(t, errors.As(err, &ae))
		})
	}
}

func TestRun_LogsScore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s, _ := newTestService(t, nil, zap.New(core))

	a, err := s.Run(context.Background(), defaults(s))
	require.NoError(t, err)

	entries := logs.FilterMessage("assessment scored").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, a.ID, fields["assessment_id"])
	assert.Equal(t, int64(0), fields["label"])
	assert.Equal(t, false, fields["cached"])
}

func TestAdvise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"Tetap pantau.","actions":["Temui siswa bulan depan"]}`),
	})
	s, _ := newTestService(t, advisor.New(mock, advisor.DefaultConfig(), nil), nil)

	a, err := s.Run(context.Background(), defaults(s))
	require.NoError(t, err)

	adv := s.Advise(context.Background(), a, "id")
	assert.Equal(t, advisor.SourceLLM, adv.Source)
	assert.Equal(t, []string{"Temui siswa bulan depan"}, adv.Actions)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[0].Content, "Umur Siswa: 17")

	static := s.StaticAdvice(a, "en")
	assert.Equal(t, advisor.SourceStatic, static.Source)
	assert.Contains(t, static.Summary, "Keep monitoring")
}

func TestAdvise_DefaultsToStatic(t *testing.T) {
	s, _ := newTestService(t, nil, nil)
	a, err := s.Run(context.Background(), defaults(s))
	require.NoError(t, err)

	assert.False(t, s.Advisor().Enabled())
	assert.Equal(t, advisor.SourceStatic, s.Advise(context.Background(), a, "en").Source)
}

func TestGenerateAdvice_ReportsFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}})
	s, _ := newTestService(t, advisor.New(mock, advisor.DefaultConfig(), nil), nil)
	a, err := s.Run(context.Background(), defaults(s))
	require.NoError(t, err)

	_, err = s.GenerateAdvice(context.Background(), a, "en")
	var unavailable *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}
