// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/enduraplan/v2/internal/ports/inbound"
	"github.com/enduraplan/v2/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	planningService inbound.PlanningService
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(planningService inbound.PlanningService, logger *zap.Logger) *APIHandlers {
	return &APIHandlers{
		planningService: planningService,
		validate:        validator.New(),
		logger:          logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// GeneratePlans handles POST /api/v1/plans
func (h *APIHandlers) GeneratePlans(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.GeneratePlansCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.writeError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.planningService.GeneratePlans(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: "Fueling plans generated successfully",
	})
}

// AcceptPlan handles POST /api/v1/plans/accepted
func (h *APIHandlers) AcceptPlan(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.AcceptPlanCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		h.writeError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	id, err := h.planningService.AcceptPlan(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    map[string]string{"id": id.String()},
		Message: "Plan accepted",
	})
}

// ListAcceptedPlans handles GET /api/v1/plans/accepted
func (h *APIHandlers) ListAcceptedPlans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.writeError(w, r, errors.NewBadRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	plans, err := h.planningService.ListAcceptedPlans(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plans,
	})
}

// ListCatalog handles GET /api/v1/catalog
func (h *APIHandlers) ListCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := h.planningService.ListCatalog(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    items,
	})
}

// UpsertCatalogItem handles PUT /api/v1/catalog/items
func (h *APIHandlers) UpsertCatalogItem(w http.ResponseWriter, r *http.Request) {
	var dto inbound.CatalogItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.writeError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		h.writeError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	if err := h.planningService.UpsertCatalogItem(r.Context(), dto); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Catalog item stored",
	})
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps application errors onto HTTP status codes
func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError("unexpected error").WithCause(err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(appErr),
		)
	}

	requestID := chimiddleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if encErr := json.NewEncoder(w).Encode(errors.ToErrorResponse(appErr, requestID)); encErr != nil {
		h.logger.Error("Failed to encode error response", zap.Error(encErr))
	}
}
