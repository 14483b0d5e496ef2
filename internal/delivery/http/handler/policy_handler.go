package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cosmetic-platform-dataset/internal/delivery/dto"
	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/internal/usecase"
	"cosmetic-platform-dataset/pkg/response"
	"cosmetic-platform-dataset/pkg/validator"
)

type PolicyHandler struct {
	policyUsecase usecase.PolicyUsecase
	validator     *validator.CustomValidator
}

func NewPolicyHandler(policyUsecase usecase.PolicyUsecase, validator *validator.CustomValidator) *PolicyHandler {
	return &PolicyHandler{
		policyUsecase: policyUsecase,
		validator:     validator,
	}
}

// GetScript returns rls_policies.sql as plain SQL
func (h *PolicyHandler) GetScript(w http.ResponseWriter, r *http.Request) {
	response.Text(w, http.StatusOK, "application/sql; charset=utf-8", h.policyUsecase.Script())
}

func (h *PolicyHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	decision, err := h.policyUsecase.Evaluate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTableNotFound):
			response.NotFound(w, "Table not found")
		case errors.Is(err, policy.ErrUnknownAction):
			response.BadRequest(w, "Unknown action")
		default:
			response.InternalServerError(w, "Failed to evaluate policy")
		}
		return
	}

	response.Success(w, http.StatusOK, "Policy evaluated", decision)
}
