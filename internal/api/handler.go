package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/bouquets/internal/bouquet"
	"github.com/eugenenazirov/bouquets/internal/input"
	"github.com/eugenenazirov/bouquets/internal/metrics"
	"github.com/eugenenazirov/bouquets/internal/pipeline"
	"github.com/eugenenazirov/bouquets/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the allocation service and design storage into HTTP handlers.
type Handler struct {
	service *pipeline.Service
	storage storage.Storage
	metrics *metrics.Recorder

	clock func() time.Time

	mu               sync.RWMutex
	designsUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics records allocation outcomes on recorder.
func WithMetrics(recorder *metrics.Recorder) HandlerOption {
	return func(h *Handler) {
		h.metrics = recorder
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(svc *pipeline.Service, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		service: svc,
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.designsUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetDesigns(w http.ResponseWriter, r *http.Request) {
	_ = r
	designs, err := h.storage.GetDesigns()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := designsResponse{
		Designs:   designs,
		UpdatedAt: h.currentDesignsUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutDesigns(w http.ResponseWriter, r *http.Request) {
	var req designsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Designs) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid designs", "designs must contain at least one design")
		return
	}

	if err := h.storage.SetDesigns(req.Designs); err != nil {
		if errors.Is(err, storage.ErrInvalidDesigns) {
			writeError(w, http.StatusBadRequest, "Invalid designs", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markDesignsUpdated()

	designs, err := h.storage.GetDesigns()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := designsResponse{
		Designs:   designs,
		UpdatedAt: h.currentDesignsUpdatedAt(),
		Message:   "Designs updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAllocate(w http.ResponseWriter, r *http.Request) {
	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Flowers) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "flowers must contain at least one flower")
		return
	}

	tokens := req.Designs
	if len(tokens) == 0 {
		stored, err := h.storage.GetDesigns()
		if err != nil {
			writeInternalError(w, err)
			return
		}
		tokens = stored
	}

	designs, err := bouquet.ParseDesigns(tokens)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid designs", err.Error())
		return
	}

	batch := input.NewBatch()
	for _, d := range designs {
		batch.AddDesign(d)
	}
	if err := input.ParseFlowers(&batch, req.Flowers); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid flowers", err.Error(), "flowers are a species letter followed by L or S, e.g. \"aL\"")
		return
	}

	report, err := h.service.Process(batch)
	if err != nil {
		if errors.Is(err, bouquet.ErrInsufficientStock) {
			writeError(w, http.StatusUnprocessableEntity, "Cannot allocate", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.metrics.ObservePool(bouquet.Large.String(), len(report.Large), report.LargeRemaining)
	h.metrics.ObservePool(bouquet.Small.String(), len(report.Small), report.SmallRemaining)
	h.metrics.ObserveRun(report.Elapsed)

	resp := allocateResponse{
		RunID: report.RunID,
		Large: nonNil(report.Large),
		Small: nonNil(report.Small),
		Remaining: remainingResponse{
			Large: report.LargeRemaining,
			Small: report.SmallRemaining,
		},
		CalculationTimeMs: report.Elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentDesignsUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.designsUpdatedAt
}

func (h *Handler) markDesignsUpdated() {
	h.mu.Lock()
	h.designsUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func nonNil(tokens []string) []string {
	if tokens == nil {
		return []string{}
	}
	return tokens
}

type designsRequest struct {
	Designs []string `json:"designs"`
}

type allocateRequest struct {
	Flowers []string `json:"flowers"`
	Designs []string `json:"designs,omitempty"`
}

type remainingResponse struct {
	Large int `json:"large"`
	Small int `json:"small"`
}

type allocateResponse struct {
	RunID             string            `json:"runId"`
	Large             []string          `json:"large"`
	Small             []string          `json:"small"`
	Remaining         remainingResponse `json:"remaining"`
	CalculationTimeMs int64             `json:"calculationTimeMs"`
}

type designsResponse struct {
	Designs   []string  `json:"designs"`
	UpdatedAt time.Time `json:"updatedAt"`
	Message   string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
