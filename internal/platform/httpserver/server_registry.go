package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	registryentities "almoner/contexts/relief-operations/registry-service/domain/entities"
	registrydomainerrors "almoner/contexts/relief-operations/registry-service/domain/errors"
	registryports "almoner/contexts/relief-operations/registry-service/ports"
	registryhttp "almoner/contexts/relief-operations/registry-service/transport/http"
)

func (s *Server) registerRegistryRoutes() {
	s.mux.HandleFunc("POST /api/v1/households", s.handleCreateHousehold)
	s.mux.HandleFunc("GET /api/v1/households", s.handleListHouseholds)
	s.mux.HandleFunc("GET /api/v1/households/{household_id}", s.handleGetHousehold)
	s.mux.HandleFunc("PATCH /api/v1/households/{household_id}", s.handleUpdateHousehold)
	s.mux.HandleFunc("DELETE /api/v1/households/{household_id}", s.handleDeleteHousehold)

	s.mux.HandleFunc("POST /api/v1/centers", s.handleCreateCenter)
	s.mux.HandleFunc("GET /api/v1/centers", s.handleListCenters)
	s.mux.HandleFunc("GET /api/v1/centers/{center_id}", s.handleGetCenter)
	s.mux.HandleFunc("PATCH /api/v1/centers/{center_id}", s.handleUpdateCenter)
	s.mux.HandleFunc("DELETE /api/v1/centers/{center_id}", s.handleDeleteCenter)

	s.mux.HandleFunc("POST /api/v1/packages", s.handleCreatePackage)
	s.mux.HandleFunc("GET /api/v1/packages", s.handleListPackages)
	s.mux.HandleFunc("GET /api/v1/packages/{package_id}", s.handleGetPackage)
	s.mux.HandleFunc("PATCH /api/v1/packages/{package_id}", s.handleUpdatePackage)
	s.mux.HandleFunc("DELETE /api/v1/packages/{package_id}", s.handleDeletePackage)

	s.mux.HandleFunc("POST /api/v1/staff", s.handleCreateStaff)
	s.mux.HandleFunc("GET /api/v1/staff", s.handleListStaff)
	s.mux.HandleFunc("GET /api/v1/staff/{staff_id}", s.handleGetStaff)
	s.mux.HandleFunc("PATCH /api/v1/staff/{staff_id}", s.handleUpdateStaff)
	s.mux.HandleFunc("DELETE /api/v1/staff/{staff_id}", s.handleDeleteStaff)
}

func (s *Server) handleCreateHousehold(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.CreateHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateHouseholdHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetHousehold(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetHouseholdHandler(r.Context(), r.PathValue("household_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateHousehold(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.UpdateHouseholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateHouseholdHandler(r.Context(), r.PathValue("household_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteHousehold(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Handler.DeleteHouseholdHandler(r.Context(), r.PathValue("household_id")); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListHouseholds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := registryports.HouseholdFilter{
		Status:   registryentities.HouseholdStatus(query.Get("status")),
		Priority: registryentities.PriorityLevel(query.Get("priority")),
		City:     query.Get("city"),
	}
	var ok bool
	if filter.Offset, ok = parseIntParam(w, query.Get("offset"), "offset"); !ok {
		return
	}
	if filter.Limit, ok = parseIntParam(w, query.Get("limit"), "limit"); !ok {
		return
	}
	resp, err := s.registry.Handler.ListHouseholdsHandler(r.Context(), filter)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCenter(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.CreateCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateCenterHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCenter(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetCenterHandler(r.Context(), r.PathValue("center_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCenter(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.UpdateCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateCenterHandler(r.Context(), r.PathValue("center_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCenter(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Handler.DeleteCenterHandler(r.Context(), r.PathValue("center_id")); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCenters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := registryports.CenterFilter{
		Status: registryentities.CenterStatus(query.Get("status")),
		City:   query.Get("city"),
	}
	var ok bool
	if filter.Offset, ok = parseIntParam(w, query.Get("offset"), "offset"); !ok {
		return
	}
	if filter.Limit, ok = parseIntParam(w, query.Get("limit"), "limit"); !ok {
		return
	}
	resp, err := s.registry.Handler.ListCentersHandler(r.Context(), filter)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreatePackageHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetPackageHandler(r.Context(), r.PathValue("package_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdatePackageHandler(r.Context(), r.PathValue("package_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Handler.DeletePackageHandler(r.Context(), r.PathValue("package_id")); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := registryports.PackageFilter{
		Category:   registryentities.PackageCategory(query.Get("category")),
		ActiveOnly: query.Get("active") == "true",
	}
	var ok bool
	if filter.Offset, ok = parseIntParam(w, query.Get("offset"), "offset"); !ok {
		return
	}
	if filter.Limit, ok = parseIntParam(w, query.Get("limit"), "limit"); !ok {
		return
	}
	resp, err := s.registry.Handler.ListPackagesHandler(r.Context(), filter)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateStaffHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetStaffHandler(r.Context(), r.PathValue("staff_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateStaffHandler(r.Context(), r.PathValue("staff_id"), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Handler.DeleteStaffHandler(r.Context(), r.PathValue("staff_id")); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := registryports.StaffFilter{
		CenterID: query.Get("center_id"),
		Role:     registryentities.StaffRole(query.Get("role")),
	}
	var ok bool
	if filter.Offset, ok = parseIntParam(w, query.Get("offset"), "offset"); !ok {
		return
	}
	if filter.Limit, ok = parseIntParam(w, query.Get("limit"), "limit"); !ok {
		return
	}
	resp, err := s.registry.Handler.ListStaffHandler(r.Context(), filter)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registrydomainerrors.ErrHouseholdNotFound):
		writeRegistryError(w, http.StatusNotFound, "household_not_found", err.Error())
	case errors.Is(err, registrydomainerrors.ErrCenterNotFound):
		writeRegistryError(w, http.StatusNotFound, "center_not_found", err.Error())
	case errors.Is(err, registrydomainerrors.ErrPackageNotFound):
		writeRegistryError(w, http.StatusNotFound, "package_not_found", err.Error())
	case errors.Is(err, registrydomainerrors.ErrStaffNotFound):
		writeRegistryError(w, http.StatusNotFound, "staff_not_found", err.Error())
	case errors.Is(err, registrydomainerrors.ErrDuplicatePhone):
		writeRegistryError(w, http.StatusConflict, "duplicate_phone", err.Error())
	case errors.Is(err, registrydomainerrors.ErrDuplicateEmail):
		writeRegistryError(w, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, registrydomainerrors.ErrInvalidInput):
		writeRegistryError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
