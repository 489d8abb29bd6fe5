package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/0xPolygon/zero-coordinator/coordinator/db"
	rootdb "github.com/0xPolygon/zero-coordinator/db"
	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	contentTypeJSON = "application/json"

	rejectDecode   = "decode"
	rejectInvalid  = "invalid"
	rejectQueue    = "queue_closed"
	rejectCanceled = "canceled"
	rejectLedger   = "ledger"
)

// AcceptedResponse is the body answered to an enqueued request
type AcceptedResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// RequestView is the ledger entry of a request as served by GET /requests/{id}
type RequestView struct {
	ID              uuid.UUID `json:"id"`
	RunName         string    `json:"run_name"`
	Source          string    `json:"source"`
	Status          db.Status `json:"status"`
	BlockCount      int       `json:"block_count"`
	FirstBlock      *uint64   `json:"first_block,omitempty"`
	LastBlock       *uint64   `json:"last_block,omitempty"`
	FetchDurationMs int64     `json:"fetch_duration_ms"`
	ProveDurationMs int64     `json:"prove_duration_ms"`
	Error           *string   `json:"error,omitempty"`
	ReceivedAt      int64     `json:"received_at"`
	UpdatedAt       int64     `json:"updated_at"`
}

func newRequestView(req *db.Request) RequestView {
	return RequestView{
		ID:              req.ID,
		RunName:         req.RunName,
		Source:          req.Source,
		Status:          req.Status,
		BlockCount:      req.BlockCount,
		FirstBlock:      req.FirstBlock,
		LastBlock:       req.LastBlock,
		FetchDurationMs: req.FetchDuration.Milliseconds(),
		ProveDurationMs: req.ProveDuration.Milliseconds(),
		Error:           req.Error,
		ReceivedAt:      req.ReceivedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

// Server is the network boundary of the coordinator: it validates prove
// requests and hands them to the queue.
type Server struct {
	logger     *log.Logger
	cfg        Config
	queue      *Queue
	ledger     RequestStorer
	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds the intake server
func NewServer(logger *log.Logger, cfg Config, queue *Queue, ledger RequestStorer) *Server {
	s := &Server{
		logger: logger,
		cfg:    cfg,
		queue:  queue,
		ledger: ledger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
	}
	return s
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Handle("/", handlers.ContentTypeHandler(http.HandlerFunc(s.handlePost), contentTypeJSON)).
		Methods(http.MethodPost)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}", s.handleGetRequest).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.logger}))(router)
}

// Listen binds the listen address
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln
	s.logger.Infof("listening on %s", ln.Addr())
	return nil
}

// Addr is the bound address, empty before Listen
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve serves requests until Shutdown is called, which makes it return nil
func (s *Server) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for the in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsReceived.Inc()

	if s.cfg.MaxRequestBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBodyBytes)
	}
	var req ProveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reject(w, http.StatusBadRequest, rejectDecode, fmt.Errorf("error decoding request: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		s.reject(w, http.StatusBadRequest, rejectInvalid, err)
		return
	}
	req.ID = uuid.New()
	req.ReceivedAt = time.Now()

	if err := s.ledger.Insert(r.Context(), &db.Request{
		ID:         req.ID,
		RunName:    req.RunName,
		Source:     req.SourceName(),
		Status:     db.StatusQueued,
		ReceivedAt: req.ReceivedAt.Unix(),
	}); err != nil {
		s.reject(w, http.StatusInternalServerError, rejectLedger, fmt.Errorf("error recording %s: %w", &req, err))
		return
	}

	if err := s.queue.Enqueue(r.Context(), &req); err != nil {
		reason := rejectQueue
		if !errors.Is(err, ErrQueueClosed) {
			reason = rejectCanceled
		}
		s.markRejected(req.ID, err)
		s.reject(w, http.StatusServiceUnavailable, reason, fmt.Errorf("error queueing %s: %w", &req, err))
		return
	}
	s.logger.Infof("accepted %s, %d/%d queued", &req, s.queue.Len(), s.queue.Cap())

	writeJSON(w, http.StatusAccepted, AcceptedResponse{ID: req.ID, Status: "accepted"})
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	req, err := s.ledger.Get(id)
	if errors.Is(err, rootdb.ErrNotFound) {
		http.Error(w, "request not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Errorf("error reading request %s: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, newRequestView(req))
}

func (s *Server) reject(w http.ResponseWriter, status int, reason string, err error) {
	metrics.RequestsRejected.WithLabelValues(reason).Inc()
	if status >= http.StatusInternalServerError {
		s.logger.Errorf("rejected request: %v", err)
	} else {
		s.logger.Infof("rejected request: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) markRejected(id uuid.UUID, cause error) {
	msg := fmt.Sprintf("not queued: %v", cause)
	err := s.ledger.Update(context.Background(), id, func(req *db.Request) {
		req.Status = db.StatusFailed
		req.Error = &msg
	})
	if err != nil {
		s.logger.Warnf("error updating request %s: %v", id, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type recoveryLogger struct {
	logger *log.Logger
}

func (l recoveryLogger) Println(args ...interface{}) {
	l.logger.Error(args...)
}
