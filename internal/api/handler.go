package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/packwise/loadout/internal/solver"
	"github.com/packwise/loadout/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires solver and rule-store dependencies into HTTP handlers.
type Handler struct {
	solver   solver.Solver
	store    storage.Store
	maxItems int

	clock func() time.Time

	mu             sync.RWMutex
	rulesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxItems caps the item count accepted per solve request. Recursion
// depth tracks the item count, so the cap doubles as a stack-depth guard.
func WithMaxItems(limit int) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.maxItems = limit
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(s solver.Solver, store storage.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		solver:   s,
		store:    store,
		maxItems: 64,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.rulesUpdatedAt = h.clock()
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

func (h *Handler) handleGetRules(w http.ResponseWriter, r *http.Request) {
	_ = r
	rules, err := h.store.GetRules()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := rulesResponse{
		Rules:     rulesToPayload(rules),
		UpdatedAt: h.currentRulesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutRules(w http.ResponseWriter, r *http.Request) {
	var req rulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if err := h.store.SetRules(rulesFromPayload(req.Rules)); err != nil {
		if errors.Is(err, storage.ErrInvalidRules) {
			writeError(w, http.StatusBadRequest, "Invalid synergy rules", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markRulesUpdated()

	rules, err := h.store.GetRules()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := rulesResponse{
		Rules:     rulesToPayload(rules),
		UpdatedAt: h.currentRulesUpdatedAt(),
		Message:   "Synergy rules updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Items) > h.maxItems {
		details := fmt.Sprintf("at most %d items are accepted per solve, got %d", h.maxItems, len(req.Items))
		writeError(w, http.StatusBadRequest, "Too many items", details)
		return
	}

	rules, err := h.store.GetRules()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	items := make([]solver.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = solver.Item{
			ID:       item.ID,
			Name:     item.Name,
			Weight:   item.Weight,
			Value:    item.Value,
			Category: item.Category,
		}
	}

	start := time.Now()
	sol, solveErr := h.solver.Solve(items, req.Capacities, rules)
	elapsed := time.Since(start)

	if solveErr != nil {
		switch {
		case errors.Is(solveErr, solver.ErrNoContainers):
			writeError(w, http.StatusBadRequest, "Invalid configuration", solveErr.Error(),
				"Supply at least one container capacity")
		case errors.Is(solveErr, solver.ErrInvalidCapacity),
			errors.Is(solveErr, solver.ErrInvalidItem),
			errors.Is(solveErr, solver.ErrDuplicateItemName):
			writeError(w, http.StatusBadRequest, "Invalid request", solveErr.Error())
		default:
			writeInternalError(w, solveErr)
		}
		return
	}

	containers := make([]containerPayload, len(sol.Containers))
	for i, container := range sol.Containers {
		payload := containerPayload{
			Items:       make([]itemPayload, len(container.Items)),
			TotalWeight: container.TotalWeight,
			TotalValue:  container.TotalValue,
			Capacity:    container.Capacity,
		}
		for j, item := range container.Items {
			payload.Items[j] = itemPayload{
				ID:       item.ID,
				Name:     item.Name,
				Weight:   item.Weight,
				Value:    item.Value,
				Category: item.Category,
			}
		}
		containers[i] = payload
	}

	resp := solveResponse{
		Containers:    containers,
		TotalValue:    sol.TotalValue,
		Assignment:    sol.Assignment,
		UniverseCount: sol.UniverseCount.String(),
		RuntimeMs:     elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentRulesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rulesUpdatedAt
}

func (h *Handler) markRulesUpdated() {
	h.mu.Lock()
	h.rulesUpdatedAt = h.clock()
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

type itemPayload struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Value    float64 `json:"value"`
	Category string  `json:"category,omitempty"`
}

type rulePayload struct {
	Names []string `json:"names"`
	Bonus float64  `json:"bonus"`
}

type rulesRequest struct {
	Rules []rulePayload `json:"rules"`
}

type rulesResponse struct {
	Rules     []rulePayload `json:"rules"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Message   string        `json:"message,omitempty"`
}

type solveRequest struct {
	Items      []itemPayload `json:"items"`
	Capacities []float64     `json:"capacities"`
}

type containerPayload struct {
	Items       []itemPayload `json:"items"`
	TotalWeight float64       `json:"totalWeight"`
	TotalValue  float64       `json:"totalValue"`
	Capacity    float64       `json:"capacity"`
}

type solveResponse struct {
	Containers    []containerPayload `json:"containers"`
	TotalValue    float64            `json:"totalValue"`
	Assignment    []int              `json:"assignment"`
	UniverseCount string             `json:"universeCount"`
	RuntimeMs     int64              `json:"runtimeMs"`
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

func rulesToPayload(rules []solver.SynergyRule) []rulePayload {
	out := make([]rulePayload, len(rules))
	for i, rule := range rules {
		out[i] = rulePayload{Names: rule.Names, Bonus: rule.Bonus}
	}
	return out
}

func rulesFromPayload(payload []rulePayload) []solver.SynergyRule {
	out := make([]solver.SynergyRule, len(payload))
	for i, rule := range payload {
		out[i] = solver.SynergyRule{Names: rule.Names, Bonus: rule.Bonus}
	}
	return out
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
