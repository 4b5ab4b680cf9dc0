// Package server exposes the analysis pipeline over HTTP.
//
// Routes:
//
//   - POST /analyze  — analyze a text transcript directly.
//   - GET  /ws/audio — stream session audio over a WebSocket; the full
//     session report is returned when the client signals completion.
//   - GET  /metrics  — Prometheus scrape endpoint.
//   - GET  /healthz, /readyz — probes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gurnoornatt/vocal/internal/analysis"
	"github.com/gurnoornatt/vocal/internal/engine"
	"github.com/gurnoornatt/vocal/internal/health"
	"github.com/gurnoornatt/vocal/internal/observe"
	"github.com/gurnoornatt/vocal/internal/session"
)

const (
	// maxAnalyzeBody caps the /analyze request body.
	maxAnalyzeBody = 1 << 20

	// wsReadLimit caps a single WebSocket frame.
	wsReadLimit = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// wsDone is the text frame a client sends when the recording is finished
// and the session report should be produced.
const wsDone = "done"

// Server wires the analysis pipeline to HTTP handlers.
type Server struct {
	engine        *engine.Engine
	processor     *session.Processor
	healthHandler *health.Handler
	metrics       *observe.Metrics
	sampleRate    int

	// maxSessionSeconds caps buffered audio per WebSocket session.
	maxSessionSeconds int
}

// Option customizes a [Server].
type Option func(*Server)

// WithHealth registers the given health handler's probe routes.
func WithHealth(h *health.Handler) Option {
	return func(s *Server) { s.healthHandler = h }
}

// WithMetrics enables request metrics and session gauges.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMaxSessionSeconds caps the audio a WebSocket session may buffer.
// Default: 300.
func WithMaxSessionSeconds(sec int) Option {
	return func(s *Server) { s.maxSessionSeconds = sec }
}

// New returns a Server analyzing text with e and audio sessions with p.
// sampleRate is the PCM rate expected on /ws/audio.
func New(e *engine.Engine, p *session.Processor, sampleRate int, opts ...Option) *Server {
	s := &Server{
		engine:            e,
		processor:         p,
		sampleRate:        sampleRate,
		maxSessionSeconds: 300,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /ws/audio", s.handleAudio)
	mux.Handle("GET /metrics", promhttp.Handler())
	if s.healthHandler != nil {
		s.healthHandler.Register(mux)
	}

	var h http.Handler = mux
	if s.metrics != nil {
		h = observe.Middleware(s.metrics)(h)
	}
	return h
}

// analyzeRequest is the /analyze request body.
type analyzeRequest struct {
	Text string `json:"text"`
}

// handleAnalyze runs the disfluency engine over a raw transcript.
// Invalid input (non-text payloads, malformed JSON) yields 400; annotation
// or detector failures yield 500.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	result, err := s.engine.Analyze(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAudio accepts a WebSocket connection streaming one audio session.
//
// Protocol: the client sends binary frames of raw 16-bit little-endian mono
// PCM, then the text frame "done". The server runs the session pipeline and
// replies with one JSON [session.Report] before closing. Exceeding the
// session duration cap closes the connection with a policy violation.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "session aborted")
	conn.SetReadLimit(wsReadLimit)

	ctx := r.Context()
	buf := session.NewBuffer(s.sampleRate)
	slog.Info("audio session opened", "session", buf.ID(), "remote", r.RemoteAddr)

	if s.metrics != nil {
		s.metrics.ActiveSessions.Add(ctx, 1)
		defer s.metrics.ActiveSessions.Add(ctx, -1)
	}

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				slog.Info("audio session closed without completion", "session", buf.ID())
			} else {
				slog.Warn("audio session read failed", "session", buf.ID(), "error", err)
			}
			return
		}

		switch typ {
		case websocket.MessageBinary:
			buf.Append(data)
			if buf.DurationSeconds() > float64(s.maxSessionSeconds) {
				slog.Warn("audio session exceeded duration cap",
					"session", buf.ID(), "max_seconds", s.maxSessionSeconds)
				conn.Close(websocket.StatusPolicyViolation, "session too long")
				return
			}

		case websocket.MessageText:
			if string(data) != wsDone {
				conn.Close(websocket.StatusUnsupportedData, "unexpected text frame")
				return
			}
			report, err := s.processor.Process(ctx, buf)
			if err != nil {
				slog.Error("session processing failed", "session", buf.ID(), "error", err)
				conn.Close(websocket.StatusInternalError, "processing failed")
				return
			}
			if err := wsjson.Write(ctx, conn, report); err != nil {
				slog.Warn("failed to deliver session report", "session", buf.ID(), "error", err)
				return
			}
			conn.Close(websocket.StatusNormalClosure, "session complete")
			return
		}
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errCh
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
