package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cosmetic-platform-dataset/internal/converter"
	"cosmetic-platform-dataset/internal/usecase"
	"cosmetic-platform-dataset/pkg/response"
)

type ReportHandler struct {
	verifyUsecase usecase.VerifyUsecase
}

func NewReportHandler(verifyUsecase usecase.VerifyUsecase) *ReportHandler {
	return &ReportHandler{
		verifyUsecase: verifyUsecase,
	}
}

// Check validates the embedded dataset. Findings are not an error: the
// report comes back with ok=false.
func (h *ReportHandler) Check(w http.ResponseWriter, r *http.Request) {
	report, err := h.verifyUsecase.Check(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to check dataset")
		return
	}

	response.Success(w, http.StatusOK, "Dataset checked", converter.ReportToResponse(report))
}

func (h *ReportHandler) Verify(w http.ResponseWriter, r *http.Request) {
	opts := usecase.VerifyOptions{}
	if raw := r.URL.Query().Get("policies"); raw != "" {
		policies, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "policies must be a boolean")
			return
		}
		opts.Policies = policies
	}

	report, err := h.verifyUsecase.Verify(r.Context(), opts)
	if err != nil {
		if errors.Is(err, usecase.ErrDatabaseUnavailable) {
			response.ServiceUnavailable(w, "Database is not configured")
			return
		}
		response.InternalServerError(w, "Failed to verify database")
		return
	}

	response.Success(w, http.StatusOK, "Database verified", converter.ReportToResponse(report))
}
