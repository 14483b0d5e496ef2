package handler

import (
	"context"
	"net/http"
	"time"

	"cosmetic-platform-dataset/pkg/response"

	"gorm.io/gorm"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler takes the database session, nil when the server runs
// without one.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "not_configured"}
	if h.db != nil {
		resp.Database = "up"
		if err := h.ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = "down"
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
