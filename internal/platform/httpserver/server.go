package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	distributionengine "almoner/contexts/relief-operations/distribution-engine"
	enginedomainerrors "almoner/contexts/relief-operations/distribution-engine/domain/errors"
	engineentities "almoner/contexts/relief-operations/distribution-engine/domain/entities"
	engineports "almoner/contexts/relief-operations/distribution-engine/ports"
	enginehttp "almoner/contexts/relief-operations/distribution-engine/transport/http"
	registryservice "almoner/contexts/relief-operations/registry-service"
	reportingservice "almoner/contexts/relief-operations/reporting-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "almoner/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	engine        distributionengine.Module
	registry      registryservice.Module
	reporting     reportingservice.Module
	enableSwagger bool
}

func New(
	engine distributionengine.Module,
	registry registryservice.Module,
	reporting reportingservice.Module,
	logger *slog.Logger,
	addr string,
	enableSwagger bool,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		engine:        engine,
		registry:      registry,
		reporting:     reporting,
		enableSwagger: enableSwagger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	if s.enableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("POST /api/v1/distributions", s.handleDistribute)
	s.mux.HandleFunc("POST /api/v1/distributions/check-eligibility", s.handleCheckEligibility)
	s.mux.HandleFunc("GET /api/v1/distributions/records", s.handleListRecords)
	s.mux.HandleFunc("GET /api/v1/distributions/records/household/{household_id}", s.handleHouseholdHistory)

	s.mux.HandleFunc("POST /api/v1/inventory/restock", s.handleRestock)
	s.mux.HandleFunc("GET /api/v1/inventory", s.handleListInventory)
	s.mux.HandleFunc("GET /api/v1/inventory/low-stock", s.handleLowStock)
	s.mux.HandleFunc("GET /api/v1/inventory/status", s.handleInventoryStatus)

	s.registerRegistryRoutes()
	s.registerReportRoutes()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var req enginehttp.DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.DistributeHandler(r.Context(), req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	var req enginehttp.EligibilityCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CheckEligibilityHandler(r.Context(), req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	var req enginehttp.RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.RestockHandler(r.Context(), req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := engineports.InventoryFilter{
		CenterID:     query.Get("center_id"),
		LowStockOnly: query.Get("low_stock") == "true",
	}
	var ok bool
	if filter.Offset, ok = parseIntParam(w, query.Get("offset"), "offset"); !ok {
		return
	}
	if filter.Limit, ok = parseIntParam(w, query.Get("limit"), "limit"); !ok {
		return
	}
	resp, err := s.engine.Handler.ListInventoryHandler(r.Context(), filter)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.LowStockHandler(r.Context())
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := engineports.RecordFilter{
		HouseholdID: query.Get("household_id"),
		CenterID:    query.Get("center_id"),
		Status:      engineentities.RecordStatus(query.Get("status")),
	}
	var ok bool
	if filter.Offset, ok = parseIntParam(w, query.Get("offset"), "offset"); !ok {
		return
	}
	if filter.Limit, ok = parseIntParam(w, query.Get("limit"), "limit"); !ok {
		return
	}
	resp, err := s.engine.Handler.ListRecordsHandler(r.Context(), filter)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHouseholdHistory(w http.ResponseWriter, r *http.Request) {
	householdID := r.PathValue("household_id")
	resp, err := s.engine.Handler.HouseholdHistoryHandler(r.Context(), householdID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEngineDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, enginedomainerrors.ErrHouseholdNotFound):
		writeEngineError(w, http.StatusNotFound, "household_not_found", err.Error())
	case errors.Is(err, enginedomainerrors.ErrPackageNotFound):
		writeEngineError(w, http.StatusNotFound, "package_not_found", err.Error())
	case errors.Is(err, enginedomainerrors.ErrCenterNotFound):
		writeEngineError(w, http.StatusNotFound, "center_not_found", err.Error())
	case errors.Is(err, enginedomainerrors.ErrLineNotFound):
		writeEngineError(w, http.StatusNotFound, "inventory_line_not_found", err.Error())
	case errors.Is(err, enginedomainerrors.ErrInvalidDistributionInput),
		errors.Is(err, enginedomainerrors.ErrInvalidRestockInput):
		writeEngineError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	case errors.Is(err, enginedomainerrors.ErrInvalidState):
		writeEngineError(w, http.StatusUnprocessableEntity, "invalid_state", err.Error())
	case errors.Is(err, enginedomainerrors.ErrIneligible):
		writeEngineError(w, http.StatusConflict, "household_not_eligible", err.Error())
	case errors.Is(err, enginedomainerrors.ErrInsufficientStock):
		writeEngineError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, enginedomainerrors.ErrLockTimeout):
		writeEngineError(w, http.StatusServiceUnavailable, "inventory_busy", "inventory line is busy, retry the request")
	case errors.Is(err, enginedomainerrors.ErrTransactionFailure):
		writeEngineError(w, http.StatusInternalServerError, "transaction_failure", "distribution transaction failed")
	default:
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEngineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// parseIntParam writes a 400 response and returns ok=false on a malformed
// value; empty values parse as zero.
func parseIntParam(w http.ResponseWriter, raw string, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		writeEngineError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a non-negative integer")
		return 0, false
	}
	return value, true
}
