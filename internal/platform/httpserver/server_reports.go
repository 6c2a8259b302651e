package httpserver

import "net/http"

func (s *Server) registerReportRoutes() {
	s.mux.HandleFunc("GET /api/v1/reports/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/v1/reports/distribution-statistics", s.handleDistributionStatistics)
	s.mux.HandleFunc("GET /api/v1/reports/pending-households", s.handlePendingHouseholds)
	s.mux.HandleFunc("GET /api/v1/reports/monthly-summary", s.handleMonthlySummary)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reporting.Handler.DashboardHandler(r.Context())
	if err != nil {
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistributionStatistics(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reporting.Handler.DistributionStatisticsHandler(r.Context())
	if err != nil {
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePendingHouseholds(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseIntParam(w, r.URL.Query().Get("limit"), "limit")
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.PendingHouseholdsHandler(r.Context(), limit)
	if err != nil {
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	months, ok := parseIntParam(w, r.URL.Query().Get("months"), "months")
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.MonthlySummaryHandler(r.Context(), months)
	if err != nil {
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInventoryStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reporting.Handler.InventoryStatusHandler(r.Context())
	if err != nil {
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
