package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/rentfolio/backend/api/handler"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Property  *apiHandler.PropertyHandler
	Tenant    *apiHandler.TenantHandler
	Payment   *apiHandler.PaymentHandler
	Dashboard *apiHandler.DashboardHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.SignUp)
	r.POST("/api/v1/auth/confirm", handlers.Auth.ConfirmEmail)
	r.POST("/api/v1/auth/login", handlers.Auth.SignIn)
	r.POST("/api/v1/auth/resend", handlers.Auth.ResendVerification)
	r.POST("/api/v1/auth/forgot", handlers.Auth.ForgotPassword)
	r.POST("/api/v1/auth/reset", handlers.Auth.ResetPassword)

	// Protected routes
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.SignOut))
	r.PUT("/api/v1/auth/password", authMiddleware(handlers.Auth.UpdatePassword))
	r.GET("/api/v1/profile", authMiddleware(handlers.Auth.Profile))

	r.GET("/api/v1/portfolio", authMiddleware(handlers.Property.Snapshot))

	r.GET("/api/v1/properties", authMiddleware(handlers.Property.List))
	r.POST("/api/v1/properties", authMiddleware(handlers.Property.Create))
	r.PUT("/api/v1/properties/{id}", authMiddleware(handlers.Property.Update))
	r.DELETE("/api/v1/properties/{id}", authMiddleware(handlers.Property.Delete))
	r.POST("/api/v1/properties/{id}/unassign", authMiddleware(handlers.Property.Unassign))

	r.GET("/api/v1/tenants", authMiddleware(handlers.Tenant.List))
	r.POST("/api/v1/tenants", authMiddleware(handlers.Tenant.Create))
	r.PUT("/api/v1/tenants/{id}", authMiddleware(handlers.Tenant.Update))
	r.DELETE("/api/v1/tenants/{id}", authMiddleware(handlers.Tenant.Delete))
	r.POST("/api/v1/tenants/{id}/assign", authMiddleware(handlers.Tenant.Assign))
	r.GET("/api/v1/tenants/{id}/rent-status", authMiddleware(handlers.Payment.RentStatus))

	r.GET("/api/v1/payments", authMiddleware(handlers.Payment.List))
	r.POST("/api/v1/payments", authMiddleware(handlers.Payment.Create))
	r.GET("/api/v1/payments/export", authMiddleware(handlers.Payment.Export))

	r.GET("/api/v1/dashboard", authMiddleware(handlers.Dashboard.Summary))

	return r
}
