package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/wicaksana/hr-workflow/internal/auth"
	"github.com/wicaksana/hr-workflow/internal/notification"
	"github.com/wicaksana/hr-workflow/internal/org"
	"github.com/wicaksana/hr-workflow/internal/request"
	"github.com/wicaksana/hr-workflow/internal/transport/middleware"
	"github.com/wicaksana/hr-workflow/internal/transport/swagger"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	orgHandler *org.Handler,
	requestHandler *request.Handler,
	notificationHandler *notification.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// Organization routes
			pr.Route("/employees", func(er chi.Router) {
				er.Get("/{id}", orgHandler.GetEmployee)
				er.Post("/{id}/transfer", orgHandler.TransferEmployee)
			})
			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/{id}", orgHandler.GetDepartment)
				dr.Get("/{id}/employees", orgHandler.ListDepartmentMembers)
			})

			// Leave request routes
			pr.Route("/leave-requests", func(lr chi.Router) {
				lr.Post("/", requestHandler.SubmitLeave)
				lr.Get("/", requestHandler.ListLeave)
				lr.Get("/{id}", requestHandler.GetLeave)
				lr.Patch("/{id}/approve", requestHandler.ApproveLeave)
				lr.Patch("/{id}/reject", requestHandler.RejectLeave)
			})

			// Expense request routes
			pr.Route("/expense-requests", func(xr chi.Router) {
				xr.Post("/", requestHandler.SubmitExpense)
				xr.Get("/", requestHandler.ListExpense)
				xr.Get("/{id}", requestHandler.GetExpense)
				xr.Patch("/{id}/approve", requestHandler.ApproveExpense)
				xr.Patch("/{id}/reject", requestHandler.RejectExpense)
			})

			// Notification inbox
			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", notificationHandler.GetInbox)
				nr.Patch("/{id}/read", notificationHandler.MarkRead)
			})
		})
	})
}
