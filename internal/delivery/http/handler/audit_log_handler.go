package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cosmetic-platform-dataset/internal/usecase"
	"cosmetic-platform-dataset/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAuditLogNotFound):
			response.NotFound(w, "Audit log not found")
		case errors.Is(err, usecase.ErrDatabaseUnavailable):
			response.ServiceUnavailable(w, "Database is not configured")
		default:
			response.InternalServerError(w, "Failed to get audit log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrDatabaseUnavailable) {
			response.ServiceUnavailable(w, "Database is not configured")
			return
		}
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs.Logs, &response.Meta{
		Limit: auditLogs.Limit,
		Total: auditLogs.Total,
	})
}
