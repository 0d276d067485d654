package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hoff1997/budgetmate/internal/config"
	"github.com/hoff1997/budgetmate/internal/planner"
	"github.com/hoff1997/budgetmate/pkg/constants"
	"github.com/hoff1997/budgetmate/pkg/paycycle"
	"github.com/hoff1997/budgetmate/pkg/payday"
	"github.com/hoff1997/budgetmate/pkg/scenario"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the budgeting API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodyBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Report API endpoints (profile in the request body)
	r.Post("/api/health", h.handleHealth)
	r.Post("/api/scenario", h.handleScenario)
	r.Post("/api/payday", h.handlePayday)
	r.Post("/api/payoff", h.handlePayoff)

	// Canned scenario library for a pay cycle
	r.Get("/api/scenarios", h.handleScenarioLibrary)

	// Version endpoint for client metadata
	r.Get("/api/version", h.handleVersion)

	return r
}

type healthRequest struct {
	Profile map[string]interface{} `json:"profile"`
}

type healthResponse struct {
	Report   *planner.HealthReport `json:"report"`
	Warnings []string              `json:"warnings,omitempty"`
	Duration string                `json:"duration"`
}

type scenarioRequest struct {
	Profile    map[string]interface{} `json:"profile"`
	ScenarioID string                 `json:"scenarioId"`
}

type scenarioResponse struct {
	Report   *planner.ScenarioReport `json:"report"`
	Warnings []string                `json:"warnings,omitempty"`
	Duration string                  `json:"duration"`
}

type paydayRequest struct {
	Profile         map[string]interface{} `json:"profile"`
	PayAmount       float64                `json:"payAmount"`
	ApplySuggestion *int                   `json:"applySuggestion"`
}

type paydayResponse struct {
	Report   *planner.PaydayReport `json:"report"`
	Applied  *payday.Application   `json:"applied,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	Duration string                `json:"duration"`
}

type payoffRequest struct {
	Profile       map[string]interface{} `json:"profile"`
	Strategy      string                 `json:"strategy"`
	MonthlyBudget float64                `json:"monthlyBudget"`
}

type payoffResponse struct {
	Report   *planner.PayoffReport `json:"report"`
	Warnings []string              `json:"warnings,omitempty"`
	Duration string                `json:"duration"`
}

type scenarioLibraryResponse struct {
	PayCycle  paycycle.PayCycle   `json:"payCycle"`
	Scenarios []scenario.Scenario `json:"scenarios"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req healthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, "server.handleHealth")
		return
	}

	profile, warnings, err := h.loadProfile(req.Profile)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleHealth")
		return
	}

	report, err := planner.GetHealthReport(h.logger, profile)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleHealth")
		return
	}

	elapsed := time.Since(start)
	if h.logger != nil {
		h.logger.Info("health report computed",
			zap.String("op", "server.handleHealth"),
			zap.Int("envelopes", len(report.Records)),
			zap.Int("behind", report.BehindCount),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, healthResponse{
		Report:   report,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, "server.handleScenario")
		return
	}

	if strings.TrimSpace(req.ScenarioID) == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing scenarioId", "server.handleScenario")
		return
	}

	profile, warnings, err := h.loadProfile(req.Profile)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleScenario")
		return
	}

	report, err := planner.GetScenarioReport(h.logger, profile, req.ScenarioID)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleScenario")
		return
	}

	elapsed := time.Since(start)
	if h.logger != nil {
		h.logger.Info("scenario simulated",
			zap.String("op", "server.handleScenario"),
			zap.String("scenario", report.Result.ScenarioID),
			zap.Int("pays", report.Result.DurationPays),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, scenarioResponse{
		Report:   report,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handlePayday(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req paydayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, "server.handlePayday")
		return
	}

	profile, warnings, err := h.loadProfile(req.Profile)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handlePayday")
		return
	}

	report, err := planner.GetPaydayReport(h.logger, profile, req.PayAmount)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handlePayday")
		return
	}

	var applied *payday.Application
	if req.ApplySuggestion != nil {
		idx := *req.ApplySuggestion
		if idx < 0 || idx >= len(report.Allocation.Suggestions) {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("suggestion index %d out of range", idx), "server.handlePayday")
			return
		}
		applied, err = planner.ApplyPaydaySuggestion(h.logger, profile, req.PayAmount, report.Allocation.Suggestions[idx])
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handlePayday")
			return
		}
	}

	elapsed := time.Since(start)
	if h.logger != nil {
		h.logger.Info("payday allocation computed",
			zap.String("op", "server.handlePayday"),
			zap.Float64("payAmount", report.Allocation.PayAmount),
			zap.Int("suggestions", len(report.Allocation.Suggestions)),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, paydayResponse{
		Report:   report,
		Applied:  applied,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handlePayoff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req payoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondDecodeError(w, err, "server.handlePayoff")
		return
	}

	profile, warnings, err := h.loadProfile(req.Profile)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handlePayoff")
		return
	}

	report, err := planner.GetPayoffReport(h.logger, profile, req.Strategy, req.MonthlyBudget)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handlePayoff")
		return
	}

	months := 0
	if report.WithBudget != nil {
		months = report.WithBudget.Months
	}

	elapsed := time.Since(start)
	if h.logger != nil {
		h.logger.Info("payoff simulated",
			zap.String("op", "server.handlePayoff"),
			zap.String("strategy", string(report.Strategy)),
			zap.Int("months", months),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, payoffResponse{
		Report:   report,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleScenarioLibrary(w http.ResponseWriter, r *http.Request) {
	cycleName := r.URL.Query().Get("payCycle")
	if cycleName == "" {
		cycleName = string(paycycle.Fortnightly)
	}

	cycle, err := paycycle.Parse(cycleName)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleScenarioLibrary")
		return
	}

	h.writeJSON(w, http.StatusOK, scenarioLibraryResponse{
		PayCycle:  cycle,
		Scenarios: scenario.Library(cycle),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// loadProfile funnels the JSON profile payload through the same YAML loader
// the CLI uses, so string amounts and normalization behave identically on
// both paths.
func (h *handler) loadProfile(payload map[string]interface{}) (*config.Profile, []string, error) {
	if payload == nil {
		payload = make(map[string]interface{})
	}

	profileBytes, err := yaml.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode profile: %v", err)
	}

	profile, err := config.LoadProfileFromReader(bytes.NewReader(profileBytes))
	if err != nil {
		return nil, nil, err
	}

	warnings := profile.Normalize()
	warnings = append(warnings, profile.Validate()...)
	return profile, warnings, nil
}

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("budget request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
