package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/guerrinflorian/lexiflood-backend/internal"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
	maxBodyBytes       = 1 << 12
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)

	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/check-word", s.CheckWordHandler).Methods(http.MethodPost)
	r.HandleFunc("/games/recent", s.RecentGamesHandler).Methods(http.MethodGet)
	r.Handle("/ws", s.gateway.Handler(s.commander))

	// CORS wraps the router so preflight requests never hit the method matcher
	return s.corsMiddleware()(r)
}

func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("error encoding response")
	}
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if s.results != nil {
		resp["database"] = s.results.Health(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}

type checkWordRequest struct {
	Word string `json:"word"`
}

type checkWordResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func (s *Server) CheckWordHandler(w http.ResponseWriter, r *http.Request) {
	var req checkWordRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, checkWordResponse{Valid: false, Error: "invalid request body"})
		return
	}
	if req.Word == "" {
		writeJSON(w, http.StatusBadRequest, checkWordResponse{Valid: false, Error: "missing word"})
		return
	}
	writeJSON(w, http.StatusOK, checkWordResponse{Valid: s.words.Exists(req.Word)})
}

func (s *Server) RecentGamesHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()
	resp := internal.Response{RespStartTime: startTime}

	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			resp.StatusCode = http.StatusBadRequest
			resp.Data = "limit must be a positive integer"
			s.finish(w, resp)
			return
		}
		limit = min(n, maxRecentLimit)
	}

	switch {
	case s.results == nil:
		resp.StatusCode = http.StatusServiceUnavailable
		resp.Data = "game history is not configured"
	default:
		games, err := s.results.RecentResults(r.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("failed to load recent games")
			resp.StatusCode = http.StatusInternalServerError
			resp.Data = "failed to load recent games"
			break
		}
		if games == nil {
			games = []internal.GameResult{}
		}
		resp.StatusCode = http.StatusOK
		resp.Data = games
	}
	s.finish(w, resp)
}

// finish stamps the response timings and writes it.
func (s *Server) finish(w http.ResponseWriter, resp internal.Response) {
	resp.RespEndTime = time.Now().UnixMilli()
	resp.NetRespTime = resp.RespEndTime - resp.RespStartTime
	writeJSON(w, resp.StatusCode, resp)
}
