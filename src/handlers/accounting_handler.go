package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/acctfolio/src/config"
	"github.com/username/acctfolio/src/logger"
	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/security/validation"
	"github.com/username/acctfolio/src/services"
	"github.com/username/acctfolio/src/utils"
)

type AccountingHandler struct {
	accountingService services.AccountingService
}

func NewAccountingHandler(service services.AccountingService) *AccountingHandler {
	return &AccountingHandler{
		accountingService: service,
	}
}

func (h *AccountingHandler) HandleCostBasis(w http.ResponseWriter, r *http.Request) {
	var req models.CostBasisRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	result, err := h.accountingService.ComputeCostBasis(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *AccountingHandler) HandleFifoPerformance(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionsRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	results, err := h.accountingService.ComputeFifoPerformance(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if results == nil {
		results = []models.ClosedTradePerformance{}
	}
	writeJSON(w, results)
}

func (h *AccountingHandler) HandleTrades(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionsRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	trades, err := h.accountingService.GroupTrades(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	writeJSON(w, trades)
}

func (h *AccountingHandler) HandleTwr(w http.ResponseWriter, r *http.Request) {
	var req models.TwrRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	points, err := h.accountingService.ComputeTwr(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if points == nil {
		points = []models.TwrPoint{}
	}
	writeJSON(w, points)
}

func (h *AccountingHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	var input models.ProjectionInput
	if !h.decodeRequest(w, r, &input) {
		return
	}
	result, err := h.accountingService.Project(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *AccountingHandler) HandlePerformanceSummary(w http.ResponseWriter, r *http.Request) {
	var req models.PerformanceRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	summary, err := h.accountingService.SummarizePerformance(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// decodeRequest reads a JSON body, capped at the configured maximum size.
func (h *AccountingHandler) decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, config.Cfg.MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		requestID, _ := GetRequestIDFromContext(r.Context())
		if logger.L != nil {
			logger.L.Warn("Failed to decode request body", "requestID", requestID, "path", r.URL.Path, "error", err)
		}
		utils.SendJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps the service error taxonomy onto HTTP status codes:
// rejected batches are client errors, oversells are unprocessable, anything
// else is internal.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID, _ := GetRequestIDFromContext(r.Context())
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInsufficientInventory):
		utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		if logger.L != nil {
			logger.L.Error("Accounting computation failed", "requestID", requestID, "error", err)
		}
		utils.SendJSONError(w, "internal error computing report", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if etag, err := utils.GenerateETag(payload); err == nil {
		w.Header().Set("ETag", etag)
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger.L != nil {
		logger.L.Error("Error generating JSON response", "error", err)
	}
}
