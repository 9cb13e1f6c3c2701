// Package handler exposes the forecasting engine over a JSON API. It is
// glue only: requests arrive as already-typed records, the engine does
// the work, and results serialize back out unchanged.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fincast/internal/config"
	"fincast/internal/models"
	"fincast/internal/services/forecast"
	"fincast/internal/version"
)

// Handler carries the API dependencies.
type Handler struct {
	log *logrus.Logger
	cfg *config.Config
}

// New creates a Handler.
func New(log *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{log: log, cfg: cfg}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version reports build information.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

// OccurrencesRequest asks for the concrete dates a rule fires in a window.
type OccurrencesRequest struct {
	Rule        models.RecurringRule `json:"rule"`
	WindowStart models.Date          `json:"window_start"`
	WindowEnd   models.Date          `json:"window_end"`
}

// Occurrences expands a recurring rule over a window.
func (h *Handler) Occurrences(w http.ResponseWriter, r *http.Request) {
	var req OccurrencesRequest
	if !h.decode(w, r, &req) {
		return
	}

	dates, err := forecast.Expand(req.Rule, req.WindowStart.Time, req.WindowEnd.Time)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	out := make([]models.Date, len(dates))
	for i, d := range dates {
		out[i] = models.DateOf(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{"occurrences": out})
}

// InterestRequest asks for compounding interest on a balance.
type InterestRequest struct {
	Balance           decimal.Decimal  `json:"balance"`
	AnnualRatePercent float64          `json:"annual_rate_percent"`
	PeriodsElapsed    int              `json:"periods_elapsed"`
	Frequency         models.Frequency `json:"frequency"`
}

// Interest applies compounding interest to a balance.
func (h *Handler) Interest(w http.ResponseWriter, r *http.Request) {
	var req InterestRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := forecast.Accrue(req.Balance, req.AnnualRatePercent, req.PeriodsElapsed, req.Frequency)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TimelineRequest carries the inputs for a cash-flow projection.
// Days defaults from server config when omitted.
type TimelineRequest struct {
	Days          *int                 `json:"days,omitempty"`
	StartDate     models.Date          `json:"start_date"`
	Accounts      []models.Account     `json:"accounts"`
	IncomeEntries []models.IncomeEntry `json:"income_entries"`
	Bills         []models.Bill        `json:"bills"`
}

// TimelineResponse bundles the projection with its derived queries so
// display layers don't re-scan the day list.
type TimelineResponse struct {
	Days              []models.TimelineDay `json:"days"`
	LowestBalance     *models.TimelineDay  `json:"lowest_balance,omitempty"`
	HasNegative       bool                 `json:"has_negative_balance"`
	FirstNegativeDate *models.Date         `json:"first_negative_date,omitempty"`
}

// Timeline builds a per-day running-balance projection.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	var req TimelineRequest
	if !h.decode(w, r, &req) {
		return
	}

	days := h.cfg.Forecast.TimelineDays
	if req.Days != nil {
		days = *req.Days
	}

	timeline, err := forecast.BuildTimeline(forecast.TimelineInput{
		Days:          days,
		StartDate:     req.StartDate.Time,
		Accounts:      req.Accounts,
		IncomeEntries: req.IncomeEntries,
		Bills:         req.Bills,
	})
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TimelineResponse{
		Days:              timeline,
		LowestBalance:     forecast.FindLowestBalance(timeline),
		HasNegative:       forecast.HasNegativeBalance(timeline),
		FirstNegativeDate: forecast.FirstNegativeDate(timeline),
	})
}

// PayoffRequest carries the inputs for a debt payoff simulation.
// MaxMonths defaults from server config when omitted.
type PayoffRequest struct {
	Debts               []models.Debt   `json:"debts"`
	ExtraMonthlyPayment decimal.Decimal `json:"extra_monthly_payment"`
	Strategy            models.Strategy `json:"strategy"`
	MaxMonths           *int            `json:"max_months,omitempty"`
}

// PayoffResponse bundles the month-by-month projection with its summary.
type PayoffResponse struct {
	Projections []models.MonthlyProjection `json:"projections"`
	Summary     models.PayoffSummary       `json:"summary"`
}

// Payoff runs the debt payoff simulation.
func (h *Handler) Payoff(w http.ResponseWriter, r *http.Request) {
	var req PayoffRequest
	if !h.decode(w, r, &req) {
		return
	}

	projections, err := forecast.Simulate(h.withDebtIDs(req.Debts), req.ExtraMonthlyPayment, req.Strategy, h.maxMonths(req.MaxMonths))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PayoffResponse{
		Projections: projections,
		Summary:     forecast.Summarize(projections),
	})
}

// CompareRequest carries the inputs for a strategy comparison.
type CompareRequest struct {
	Debts               []models.Debt   `json:"debts"`
	ExtraMonthlyPayment decimal.Decimal `json:"extra_monthly_payment"`
	MaxMonths           *int            `json:"max_months,omitempty"`
}

// Compare runs both payoff strategies and reports the deltas.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !h.decode(w, r, &req) {
		return
	}

	comparison, err := forecast.CompareStrategies(h.withDebtIDs(req.Debts), req.ExtraMonthlyPayment, h.maxMonths(req.MaxMonths))
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// MilestoneRequest carries the inputs for a net-worth milestone
// projection. AsOf anchors "now" so results are reproducible.
type MilestoneRequest struct {
	CurrentNetWorth decimal.Decimal           `json:"current_net_worth"`
	TargetAmount    decimal.Decimal           `json:"target_amount"`
	Snapshots       []models.NetWorthSnapshot `json:"snapshots"`
	Deadline        *models.Date              `json:"deadline,omitempty"`
	AsOf            models.Date               `json:"as_of"`
}

// Milestone projects a net-worth target arrival date and likelihood.
func (h *Handler) Milestone(w http.ResponseWriter, r *http.Request) {
	var req MilestoneRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.AsOf.IsZero() {
		h.badRequestMsg(w, r, "as_of date is required")
		return
	}

	var deadline *time.Time
	if req.Deadline != nil {
		deadline = &req.Deadline.Time
	}

	info := forecast.ProjectMilestone(req.CurrentNetWorth, req.TargetAmount, req.Snapshots, deadline, req.AsOf.Time)
	writeJSON(w, http.StatusOK, info)
}

// withDebtIDs fills in IDs for debts the caller submitted without one,
// so projection rows stay addressable.
func (h *Handler) withDebtIDs(debts []models.Debt) []models.Debt {
	for i := range debts {
		if debts[i].ID == "" {
			debts[i].ID = uuid.NewString()
		}
	}
	return debts
}

func (h *Handler) maxMonths(override *int) int {
	if override != nil {
		return *override
	}
	return h.cfg.Forecast.MaxMonths
}

// decode parses the request body, responding with 400 on malformed JSON.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.badRequest(w, r, err)
		return false
	}
	return true
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithField("path", r.URL.Path).Warnf("rejected request: %v", err)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func (h *Handler) badRequestMsg(w http.ResponseWriter, r *http.Request, msg string) {
	h.log.WithField("path", r.URL.Path).Warnf("rejected request: %s", msg)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
