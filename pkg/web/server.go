package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/controller"
	"github.com/helmcode/aomaas/pkg/model"
	"github.com/helmcode/aomaas/pkg/provider"
	"github.com/sirupsen/logrus"
)

// MinePath is where the demo backend accepts analysis requests.
const MinePath = "/api/v1/repositories/mine-opportunities"

// maxBodyBytes caps JSON and form bodies.
const maxBodyBytes = 1 << 20

// Options configures the HTTP surface.
type Options struct {
	// Miner answers MinePath.
	Miner controller.Analyzer
	// Analyzer is what the demo form submits to. Nil means Miner, in process.
	Analyzer       controller.Analyzer
	AllowedOrigins []string
	Logger         logrus.FieldLogger
	Version        string
}

type server struct {
	miner    controller.Analyzer
	analyzer controller.Analyzer
	log      logrus.FieldLogger
	version  string
}

// NewRouter builds the demo page, the form handler and the demo backend.
func NewRouter(opts Options) http.Handler {
	s := &server{
		miner:    opts.Miner,
		analyzer: opts.Analyzer,
		log:      opts.Logger,
		version:  opts.Version,
	}
	if s.analyzer == nil {
		s.analyzer = s.miner
	}
	if s.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		s.log = l
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(requestLogger(s.log))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	mux.Get("/health", s.handleHealth)
	mux.Get("/", s.handleIndex)
	mux.Get("/demo", s.handleCapabilities)
	mux.Post("/demo/analyze", s.handleAnalyzeForm)
	mux.Post(MinePath, s.handleMine)

	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   s.version,
		"timestamp": time.Now().UTC(),
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := renderPage(w, http.StatusOK, &page{}); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

func (s *server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "AOMaaS Demo - Autonomous Repository Maintenance",
		"capabilities": []string{
			"Repository Indexing & Semantic Analysis",
			"Automated Opportunity Mining",
			"AI-Powered Implementation Planning",
			"Automated Code Implementation",
			"Pull Request Creation & Management",
			"Multi-Agent Code Review",
		},
		"supported_providers": []provider.Type{provider.GitHub, provider.GitLab},
		"opportunity_types": []string{
			"dependency_update",
			"security_vulnerability",
			"api_migration",
			"code_optimization",
			"test_coverage",
			"documentation",
		},
	})
}

// handleAnalyzeForm runs the form controller against a page built from the
// submitted form and renders the page with the outcome.
func (s *server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	p := &page{RepositoryURL: r.PostFormValue("repository_url")}
	ctrl := controller.New(controller.Elements{
		Input:     p,
		Trigger:   p,
		Results:   p.results(),
		Indicator: p.indicator(),
	}, s.analyzer, s.log.WithField("request_id", RequestID(r.Context())))

	status := http.StatusOK
	if _, err := ctrl.Submit(r.Context()); err != nil {
		status = http.StatusBadGateway
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			status = http.StatusBadRequest
		}
	}

	if err := renderPage(w, status, p); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

func (s *server) handleMine(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid JSON body", err))
		return
	}

	req.RepositoryURL = strings.TrimSpace(req.RepositoryURL)
	if req.RepositoryURL == "" {
		writeError(w, apperrors.NewValidationError("repository_url is required", nil))
		return
	}
	if req.ProviderType == "" {
		req.ProviderType = provider.Detect(req.RepositoryURL)
	}
	if !provider.Valid(req.ProviderType) {
		writeError(w, apperrors.NewValidationError("provider_type must be github or gitlab", nil))
		return
	}

	result, err := s.miner.MineOpportunities(r.Context(), req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":     RequestID(r.Context()),
			"repository_url": req.RepositoryURL,
		}).WithError(err).Error("mine opportunities")
		writeError(w, err)
		return
	}
	if result == nil {
		result = &model.AnalysisResult{}
	}
	if result.Opportunities == nil {
		result.Opportunities = []model.Opportunity{}
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError exposes validation messages; anything else is reported generically.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": appErr.Message})
		return
	}
	writeJSON(w, apperrors.GetStatusCode(err), map[string]string{"detail": "failed to mine opportunities"})
}
