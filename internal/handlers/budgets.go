package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finata-app/finata/internal/billing"
	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/middleware"
	"github.com/finata-app/finata/internal/store"
)

// BudgetHandler creates budgets after overlap validation and exposes the
// billing-period calculator for the dashboard.
type BudgetHandler struct {
	store     store.Store
	validator *billing.Validator
	log       zerolog.Logger
}

// NewBudgetHandler creates a budget handler backed by the record store.
func NewBudgetHandler(s store.Store, log zerolog.Logger) *BudgetHandler {
	return &BudgetHandler{
		store:     s,
		validator: billing.NewValidator(s),
		log:       log,
	}
}

type createBudgetRequest struct {
	CategoryID string `json:"categoryId"`
	PeriodKind string `json:"periodKind"`
	Amount     string `json:"amount"`
	StartDate  string `json:"startDate"` // YYYY-MM-DD
}

type overlapResponse struct {
	Error         string `json:"error"`
	ConflictingID string `json:"conflictingBudgetId"`
	ConflictStart string `json:"conflictStart"`
	ConflictEnd   string `json:"conflictEnd"`
}

// CreateBudget handles POST /api/budgets. Overlapping periods for the same
// category are rejected with 409 and the conflicting window.
func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid amount"})
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid start date (expected YYYY-MM-DD)"})
		return
	}

	budget, err := domain.NewBudget(uuid.New().String(), userID, req.CategoryID,
		domain.PeriodKind(req.PeriodKind), amount, startDate)
	if err != nil {
		writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.validator.Validate(r.Context(), *budget); err != nil {
		var overlap *billing.OverlapError
		if errors.As(err, &overlap) {
			writeJSON(w, h.log, http.StatusConflict, overlapResponse{
				Error:         "budget period overlaps an existing budget",
				ConflictingID: overlap.ExistingID,
				ConflictStart: overlap.Start.Format("2006-01-02"),
				ConflictEnd:   overlap.End.Format("2006-01-02"),
			})
			return
		}
		h.log.Error().Err(err).Msg("budget overlap validation failed")
		writeJSON(w, h.log, http.StatusInternalServerError, errorResponse{Error: "failed to validate budget"})
		return
	}

	if err := h.store.CreateBudget(r.Context(), budget); err != nil {
		h.log.Error().Err(err).Msg("failed to create budget")
		writeJSON(w, h.log, http.StatusInternalServerError, errorResponse{Error: "failed to create budget"})
		return
	}
	writeJSON(w, h.log, http.StatusCreated, budget)
}

// BillingPeriod handles GET /api/billing-period. startDay and endDay select
// the cycle anchors; an optional date overrides the reference date, which
// defaults to today. The window is recomputed on every call.
func (h *BudgetHandler) BillingPeriod(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	startDay := intQuery(r, "startDay")
	endDay := intQuery(r, "endDay")

	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "invalid date (expected YYYY-MM-DD)"})
			return
		}
		ref = parsed
	}

	writeJSON(w, h.log, http.StatusOK, billing.Period(startDay, endDay, ref))
}

// intQuery parses an integer query parameter, returning 0 (unconfigured)
// when absent or malformed.
func intQuery(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
