package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	platformstatusservice "squpe/contexts/internal-ops/platform-status-service"
	campaignservice "squpe/contexts/social-impact/campaign-service"
	livestreamservice "squpe/contexts/social-impact/livestream-service"
	"squpe/internal/platform/identity"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "squpe/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	handler     http.Handler
	logger      *slog.Logger
	addr        string
	identity    identity.Resolver
	campaigns   campaignservice.Module
	livestreams livestreamservice.Module
	status      platformstatusservice.Module
}

func New(
	campaigns campaignservice.Module,
	livestreams livestreamservice.Module,
	status platformstatusservice.Module,
	resolver identity.Resolver,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8000"
	}
	if resolver == nil {
		resolver = identity.NewDemoResolver()
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		identity:    resolver,
		campaigns:   campaigns,
		livestreams: livestreams,
		status:      status,
	}
	s.registerRoutes()

	// Mobile clients call the API from app webviews and local dev
	// origins, so CORS stays wide open like the rest of the demo stack.
	s.handler = cors.AllowAll().Handler(s.mux)
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)

	s.mux.HandleFunc("POST /api/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("GET /api/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/donate", s.handleDonate)

	s.mux.HandleFunc("POST /api/livestreams", s.handleStartStream)
	s.mux.HandleFunc("GET /api/livestreams", s.handleListStreams)
	s.mux.HandleFunc("GET /api/livestreams/{stream_id}", s.handleGetStream)
	s.mux.HandleFunc("POST /api/livestreams/{stream_id}/end", s.handleEndStream)
	s.mux.HandleFunc("POST /api/livestreams/{stream_id}/viewers", s.handleUpdateViewerCount)
}

func (s *Server) resolveUser(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	user, err := s.identity.Resolve(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "could not resolve request principal")
		return identity.User{}, false
	}
	return user, true
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorEnvelope struct {
	Status    string    `json:"status"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ErrorEnvelope{
		Status: "error",
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
