package handler

import (
	"net/http"

	"cosmetic-platform-dataset/internal/usecase"
	"cosmetic-platform-dataset/pkg/response"
)

type TableHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewTableHandler(catalogUsecase usecase.CatalogUsecase) *TableHandler {
	return &TableHandler{
		catalogUsecase: catalogUsecase,
	}
}

func (h *TableHandler) GetAllTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.catalogUsecase.ListTables(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list tables")
		return
	}

	response.Success(w, http.StatusOK, "Tables retrieved successfully", tables)
}
