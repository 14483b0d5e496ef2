package http

import (
	"net/http"

	"cosmetic-platform-dataset/internal/delivery/http/handler"
	"cosmetic-platform-dataset/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	healthHandler   *handler.HealthHandler
	tableHandler    *handler.TableHandler
	reportHandler   *handler.ReportHandler
	policyHandler   *handler.PolicyHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	tableHandler *handler.TableHandler,
	reportHandler *handler.ReportHandler,
	policyHandler *handler.PolicyHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		healthHandler:   healthHandler,
		tableHandler:    tableHandler,
		reportHandler:   reportHandler,
		policyHandler:   policyHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Dataset routes, open to anon
	public := api.NewRoute().Subrouter()
	public.Use(r.authMiddleware.Authenticate)
	public.HandleFunc("/tables", r.tableHandler.GetAllTables).Methods(http.MethodGet)
	public.HandleFunc("/check", r.reportHandler.Check).Methods(http.MethodGet)
	public.HandleFunc("/policies", r.policyHandler.GetScript).Methods(http.MethodGet)
	public.HandleFunc("/policies/evaluate", r.policyHandler.Evaluate).Methods(http.MethodPost)

	// Live database routes (service_role only)
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireServiceRole)
	admin.HandleFunc("/verify", r.reportHandler.Verify).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
