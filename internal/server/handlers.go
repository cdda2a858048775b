package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andiescott-hub/personal-finance-calculator/internal/calculation"
	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/internal/output"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Errorw("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// currentConfig returns the active configuration: the latest stored snapshot
// if one exists, otherwise the base configuration the server started with.
func (h *Handler) currentConfig(r *http.Request) (*domain.ForecastConfig, error) {
	if h.Store != nil {
		snap, err := h.Store.Latest(r.Context())
		if err == nil {
			h.Parser.Normalize(snap.Config)
			return snap.Config, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}
	if h.baseConfig == nil {
		return nil, errors.New("no configuration available")
	}
	return h.baseConfig, nil
}

// GetForecast runs the full projection for the active configuration.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.currentConfig(r)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	engine := calculation.NewForecastEngine(calculation.NewTaxCalculator(), h.calcLogger())
	result, err := engine.Run(cfg)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// GetIncome returns the current-year household income breakdown.
func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.currentConfig(r)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	income := calculation.NewIncomeCalculator(calculation.NewTaxCalculator(), h.calcLogger())
	h.writeJSON(w, http.StatusOK, income.CalculateHousehold(cfg))
}

// GetPrice looks up the AUD price for a ticker symbol.
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		h.writeError(w, http.StatusBadRequest, `missing "ticker" query parameter`)
		return
	}
	if h.Market == nil {
		h.writeError(w, http.StatusServiceUnavailable, "market data not configured")
		return
	}

	quote, err := h.Market.PriceInAUD(r.Context(), ticker)
	if err != nil {
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

// GetAssistantContext renders the assistant system prompt for the active
// configuration as plain text.
func (h *Handler) GetAssistantContext(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.currentConfig(r)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := output.NewReport(cfg, h.calcLogger())
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(output.BuildAssistantContext(report))); err != nil {
		h.Logger.Errorw("failed to write context", "error", err)
	}
}

// GetData returns the latest stored configuration snapshot, or null when
// nothing has been saved.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		h.writeJSON(w, http.StatusOK, nil)
		return
	}

	snap, err := h.Store.Latest(r.Context())
	if errors.Is(err, sql.ErrNoRows) {
		h.writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// PostData validates and stores a configuration snapshot.
func (h *Handler) PostData(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		h.writeError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	var cfg domain.ForecastConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.Parser.Validate(&cfg); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Parser.Normalize(&cfg)

	name := r.URL.Query().Get("name")
	snap, err := h.Store.Save(r.Context(), name, &cfg)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to save: "+err.Error())
		return
	}

	h.Logger.Infow("saved configuration snapshot", "name", snap.Name, "id", snap.ID)
	h.writeJSON(w, http.StatusOK, snap)
}
