package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider logs every request with its outcome, latency and token
// usage. Prompt text is only logged at debug level.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
}

// WithLogging wraps p with request logging.
func WithLogging(p Provider, logger *zap.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger.Named("llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.String("purpose", PurposeFrom(ctx)),
		zap.Duration("latency", time.Since(start)),
	}
	if id := CorrelationIDFrom(ctx); id != "" {
		fields = append(fields, zap.String("assessment_id", id))
	}
	if req.Schema != nil {
		fields = append(fields, zap.String("schema", req.Schema.Name))
	}

	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields,
		zap.String("served_by", resp.Model),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.String("stop_reason", resp.StopReason),
	)
	l.logger.Info("llm request", fields...)

	if ce := l.logger.Check(zap.DebugLevel, "llm exchange"); ce != nil {
		ce.Write(
			zap.String("system", req.System),
			zap.Int("messages", len(req.Messages)),
			zap.ByteString("response", resp.Content),
		)
	}
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
