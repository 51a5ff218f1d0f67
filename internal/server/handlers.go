package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/advisor"
	"github.com/abhisek/siaga/internal/features"
	"github.com/abhisek/siaga/internal/form"
	"github.com/abhisek/siaga/internal/i18n"
)

const maxBodyBytes = 64 << 10

type modelResponse struct {
	Name          string            `json:"name"`
	FormatVersion string            `json:"format_version"`
	Classifier    string            `json:"classifier"`
	Features      []string          `json:"features"`
	Threshold     float64           `json:"threshold"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type fieldsResponse struct {
	Language string                 `json:"language"`
	Fields   []features.FeatureSpec `json:"fields"`
}

type assessRequest struct {
	Values         map[string]int `json:"values"`
	TailoredAdvice bool           `json:"tailored_advice"`
}

type assessResponse struct {
	ID          string         `json:"id"`
	Features    []string       `json:"features"`
	Vector      []int          `json:"vector"`
	Label       int            `json:"label"`
	Probability float64        `json:"probability"`
	Percent     string         `json:"percent"`
	Threshold   float64        `json:"threshold"`
	Verdict     string         `json:"verdict"`
	Headline    string         `json:"headline"`
	Cached      bool           `json:"cached"`
	Advice      advisor.Advice `json:"advice"`
}

type errorBody struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Features  []string `json:"features,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, modelResponse{
		Name:          s.bundle.Name(),
		FormatVersion: s.bundle.FormatVersion,
		Classifier:    s.bundle.Classifier.Type(),
		Features:      s.svc.Features(),
		Threshold:     s.svc.Threshold(),
		Metadata:      s.bundle.Metadata,
	})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	cat := s.svc.Catalog(languagePref(r))
	writeJSON(w, http.StatusOK, fieldsResponse{
		Language: cat.Language().String(),
		Fields:   cat.FieldsFor(s.svc.Features()),
	})
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assessRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Values == nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", `body must contain a "values" object`)
		return
	}

	a, err := s.svc.Run(ctx, req.Values)
	if err != nil {
		var ae *form.AssemblyError
		if errors.As(err, &ae) {
			s.metrics.IncrementAssemblyFailure(ae.Code())
			writeJSON(w, http.StatusUnprocessableEntity, map[string]errorBody{"error": {
				Code:      ae.Code(),
				Message:   ae.Error(),
				Features:  ae.Features,
				RequestID: middleware.GetReqID(ctx),
			}})
			return
		}
		s.logger.Error("assessment failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal_error", "assessment failed")
		return
	}
	s.metrics.ObserveAssessment(a.Result.AtRisk(), a.Cached, a.Elapsed)

	lang := languagePref(r)
	var adv advisor.Advice
	if req.TailoredAdvice {
		adv = s.svc.Advise(ctx, a, lang)
	} else {
		adv = s.svc.StaticAdvice(a, lang)
	}
	s.metrics.IncrementAdvice(string(adv.Source))

	p := i18n.New(s.svc.Catalog(lang).Language())
	resp := assessResponse{
		ID:          a.ID,
		Features:    a.Record.Names(),
		Vector:      a.Record.Values(),
		Label:       a.Result.Label,
		Probability: a.Result.Probability,
		Percent:     a.Result.Percent(),
		Threshold:   a.Result.Threshold,
		Verdict:     "safe",
		Headline:    p.T("STATUS: SAFE"),
		Cached:      a.Cached,
		Advice:      adv,
	}
	if a.Result.AtRisk() {
		resp.Verdict = "at_risk"
		resp.Headline = p.T("WARNING: AT RISK OF DROPOUT")
	}
	writeJSON(w, http.StatusOK, resp)
}

// languagePref returns ?lang= when given and the Accept-Language header
// otherwise.
func languagePref(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return r.Header.Get("Accept-Language")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, map[string]errorBody{"error": {
		Code:      code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}
