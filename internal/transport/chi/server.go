package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aspectmind/internal/domain"
	"github.com/kailas-cloud/aspectmind/internal/domain/product"
	domquery "github.com/kailas-cloud/aspectmind/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/aspectmind/internal/logger"
	"github.com/kailas-cloud/aspectmind/internal/session"
	healthuc "github.com/kailas-cloud/aspectmind/internal/usecase/health"
)

// errorCode is the machine-readable error kind in error responses.
type errorCode string

const (
	codeBadRequest      errorCode = "bad_request"
	codeValidation      errorCode = "validation_failed"
	codeSelectionFull   errorCode = "selection_full"
	codeSessionNotFound errorCode = "session_not_found"
	codeTooManySessions errorCode = "too_many_sessions"
	codeUpstreamFailed  errorCode = "upstream_failed"
	codeInternalError   errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the session action surface over HTTP.
type Server struct {
	sessions      *session.Store
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP action server.
func NewServer(sessions *session.Store, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{sessions: sessions, health: health, logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSelectionFull, http.StatusConflict, codeSelectionFull),
		validationHandler,
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrTooManySessions, http.StatusServiceUnavailable, codeTooManySessions),
		sentinelHandler(domain.ErrRequestFailed, http.StatusBadGateway, codeUpstreamFailed),
	}
	return s
}

// Routes registers all handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Post("/sessions", s.CreateSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)

		r.Post("/search", s.SubmitSearch)

		r.Post("/filters/category", s.ToggleCategory)
		r.Put("/filters/min-sentiment", s.SetMinSentiment)
		r.Put("/filters/sort", s.SetSortMode)
		r.Delete("/filters", s.ClearFilters)

		r.Post("/selection/{productID}", s.ToggleProduct)

		r.Post("/comparison", s.OpenComparison)
		r.Delete("/comparison", s.CloseComparison)

		r.Post("/dashboard", s.OpenDashboard)
		r.Delete("/dashboard", s.CloseDashboard)

		r.Get("/feedback/{productID}", s.GetDraft)
		r.Put("/feedback/{productID}/draft", s.EditFeedback)
		r.Post("/feedback/{productID}", s.SubmitFeedback)
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, _ *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewToDTO(sess.View()))
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(sess.View()))
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "sessionID")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type searchRequest struct {
	Query string `json:"query"`
}

// SubmitSearch handles POST /sessions/{sessionID}/search.
func (s *Server) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}
	if _, err := sess.SubmitSearch(r.Context(), req.Query); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewToDTO(sess.View()))
}

type categoryRequest struct {
	Category string `json:"category"`
}

// ToggleCategory handles POST /sessions/{sessionID}/filters/category.
func (s *Server) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decode(w, r, &req) {
		return
	}
	sess.ToggleCategory(req.Category)
	writeJSON(w, http.StatusOK, filtersToDTO(sess.View().Filters))
}

type minSentimentRequest struct {
	Value *float64 `json:"value"`
}

// SetMinSentiment handles PUT /sessions/{sessionID}/filters/min-sentiment. A null value clears it.
func (s *Server) SetMinSentiment(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req minSentimentRequest
	if !decode(w, r, &req) {
		return
	}
	if err := sess.SetMinSentiment(req.Value); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersToDTO(sess.View().Filters))
}

type sortRequest struct {
	SortBy string `json:"sort_by"`
}

// SetSortMode handles PUT /sessions/{sessionID}/filters/sort.
func (s *Server) SetSortMode(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req sortRequest
	if !decode(w, r, &req) {
		return
	}
	if err := sess.SetSortMode(domquery.SortMode(req.SortBy)); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersToDTO(sess.View().Filters))
}

// ClearFilters handles DELETE /sessions/{sessionID}/filters.
func (s *Server) ClearFilters(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.ClearFilters()
	writeJSON(w, http.StatusOK, filtersToDTO(sess.View().Filters))
}

// ToggleProduct handles POST /sessions/{sessionID}/selection/{productID}.
func (s *Server) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	selected, err := sess.ToggleProduct(product.ID(chi.URLParam(r, "productID")))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	v := sess.View()
	writeJSON(w, http.StatusOK, selectionDTO{
		Selected:   selected,
		Selection:  idsToStrings(v.Selection),
		CanCompare: v.CanCompare,
	})
}

// OpenComparison handles POST /sessions/{sessionID}/comparison.
func (s *Server) OpenComparison(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	report, err := sess.OpenComparison(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportToDTO(report))
}

// CloseComparison handles DELETE /sessions/{sessionID}/comparison.
func (s *Server) CloseComparison(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.CloseComparison()
	w.WriteHeader(http.StatusNoContent)
}

// OpenDashboard handles POST /sessions/{sessionID}/dashboard.
func (s *Server) OpenDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	snap, err := sess.OpenDashboard(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// CloseDashboard handles DELETE /sessions/{sessionID}/dashboard.
func (s *Server) CloseDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.CloseDashboard()
	w.WriteHeader(http.StatusNoContent)
}

type draftRequest struct {
	Text string `json:"text"`
}

// EditFeedback handles PUT /sessions/{sessionID}/feedback/{productID}/draft.
// Analysis runs in the background; poll GetDraft for the annotation.
func (s *Server) EditFeedback(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req draftRequest
	if !decode(w, r, &req) {
		return
	}
	id := product.ID(chi.URLParam(r, "productID"))
	sess.EditFeedback(id, req.Text)
	writeJSON(w, http.StatusAccepted, draftToDTO(sess.Draft(id)))
}

// GetDraft handles GET /sessions/{sessionID}/feedback/{productID}.
func (s *Server) GetDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, draftToDTO(sess.Draft(product.ID(chi.URLParam(r, "productID")))))
}

// SubmitFeedback handles POST /sessions/{sessionID}/feedback/{productID}.
func (s *Server) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	rc, err := sess.SubmitFeedback(r.Context(), product.ID(chi.URLParam(r, "productID")))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.handleDomainError(w, err)
		return nil, false
	}
	logpkg.FromContext(r.Context()).Debug("session action",
		zap.String("session_id", sess.ID()),
		zap.String("route", chi.RouteContext(r.Context()).RoutePattern()),
	)
	return sess, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler maps every local validation error to 400.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !domain.IsValidation(err) {
		return false
	}
	writeError(w, http.StatusBadRequest, codeValidation, msg)
	return true
}

// safeDomainMessage returns the user-facing text for err without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range []error{domain.ErrSessionNotFound, domain.ErrTooManySessions} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return domain.UserMessage(err)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
