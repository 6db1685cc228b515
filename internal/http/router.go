package http

import (
	"net/http"

	"preproc-backend/internal/handlers"
	"preproc-backend/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	orderHandler *handlers.TransferOrderHandler,
	lineHandler *handlers.LineHandler,
	palletHandler *handlers.PalletHandler,
	importHandler *handlers.ImportHandler,
	merchantHandler *handlers.MerchantHandler,
	settingHandler *handlers.SystemSettingHandler,
	manifestHandler *handlers.ManifestHandler,
	labelHandler *handlers.LabelHandler,
	auditLogHandler *handlers.AuditLogHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Transfer Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}/admin-review", authMiddleware.RequireRole("admin")(http.HandlerFunc(orderHandler.SetAdminReview)).ServeHTTP).Methods("PATCH")
	ordersAPI.HandleFunc("/{id}/scan-start", orderHandler.ScanStart).Methods("POST")

	// Protected API routes - Pallet allocation ledger
	ordersAPI.HandleFunc("/{id}/pallets", palletHandler.GetAllPallets).Methods("GET")
	ordersAPI.HandleFunc("/{id}/pallets/cartons", palletHandler.AddCarton).Methods("POST")
	ordersAPI.HandleFunc("/{id}/pallets/items/{sku}", palletHandler.ClearItem).Methods("DELETE")
	ordersAPI.HandleFunc("/{id}/pallets/cleanup", palletHandler.Cleanup).Methods("POST")

	// Protected API routes - Manifest export and pallet labels
	ordersAPI.HandleFunc("/{id}/manifest", manifestHandler.Export).Methods("GET")
	ordersAPI.HandleFunc("/{id}/labels", labelHandler.GenerateLabels).Methods("GET")

	// Protected API routes - Line status actions
	linesAPI := r.PathPrefix("/api/lines").Subrouter()
	linesAPI.Use(authMiddleware.Authenticate)
	linesAPI.HandleFunc("/request-all", lineHandler.RequestAll).Methods("POST")
	linesAPI.HandleFunc("/cancel-all", lineHandler.CancelAll).Methods("POST")
	linesAPI.HandleFunc("/{id}/request", lineHandler.Request).Methods("POST")
	linesAPI.HandleFunc("/{id}/cancel", lineHandler.Cancel).Methods("POST")

	// Protected API routes - Reconciliation pass
	recalcAPI := r.PathPrefix("/api/recalculate").Subrouter()
	recalcAPI.Use(authMiddleware.Authenticate)
	recalcAPI.HandleFunc("", lineHandler.Recalculate).Methods("POST")

	// Protected API routes - Imports
	importsAPI := r.PathPrefix("/api/imports").Subrouter()
	importsAPI.Use(authMiddleware.Authenticate)
	importsAPI.HandleFunc("", importHandler.Process).Methods("POST")

	// Protected API routes - Eligible merchants (admin manages the set)
	merchantsAPI := r.PathPrefix("/api/merchants").Subrouter()
	merchantsAPI.Use(authMiddleware.Authenticate)
	merchantsAPI.HandleFunc("", merchantHandler.ListMerchants).Methods("GET")
	merchantsAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(merchantHandler.CreateMerchant)).ServeHTTP).Methods("POST")
	merchantsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(merchantHandler.DeleteMerchant)).ServeHTTP).Methods("DELETE")

	// Protected API routes - System Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingHandler.ListSettings).Methods("GET")
	settingsAPI.HandleFunc("/{key}", settingHandler.GetSetting).Methods("GET")
	settingsAPI.HandleFunc("/{key}", authMiddleware.RequireRole("admin")(http.HandlerFunc(settingHandler.UpdateSetting)).ServeHTTP).Methods("PUT")

	// Protected API routes - Users
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")

	// Protected API routes - Audit logs (admin only)
	auditAPI := r.PathPrefix("/api/audit-logs").Subrouter()
	auditAPI.Use(authMiddleware.Authenticate)
	auditAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditLogHandler.List)).ServeHTTP).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
