// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"crm/internal/delivery/http/middleware"
	"crm/internal/delivery/http/router/handler"
	"crm/internal/domain/authz"
	"crm/internal/domain/entity"
)

// API key scope names. Scopes only constrain API-key principals; token
// logins pass through unchecked.
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
	ScopeAdmin = "admin"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	CustomerHandler  *handler.CustomerHandler
	BranchHandler    *handler.BranchHandler
	StaffHandler     *handler.StaffHandler
	UserHandler      *handler.UserHandler
	APIKeyHandler    *handler.APIKeyHandler
	DashboardHandler *handler.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Role policy: account administration stays with the owner and manager
	// tiers; branch and staff administration with any management account;
	// customer data with every authenticated principal, branch-scoped for
	// staff inside the usecases.
	adminOnly := authz.Management(entity.RoleOwner, entity.RoleManager)
	anyManagement := authz.AnyManagement()
	anyPrincipal := authz.AnyPrincipal()

	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
		authGroup.GET("/me", r.params.AuthHandler.Me, auth.Authenticate)
		authGroup.POST("/logout", r.params.AuthHandler.Logout, auth.Authenticate)
	}

	customerGroup := api.Group("/customers")
	customerGroup.Use(auth.Authenticate)
	customerGroup.Use(auth.RequireRoles(anyPrincipal))
	{
		customerGroup.GET("", r.params.CustomerHandler.List, auth.RequireScope(ScopeRead, ScopeAdmin))
		customerGroup.GET("/:id", r.params.CustomerHandler.Get, auth.RequireScope(ScopeRead, ScopeAdmin))
		customerGroup.POST("", r.params.CustomerHandler.Create, auth.RequireScope(ScopeWrite, ScopeAdmin))
		customerGroup.PUT("/:id", r.params.CustomerHandler.Update, auth.RequireScope(ScopeWrite, ScopeAdmin))
		customerGroup.DELETE("/:id", r.params.CustomerHandler.Delete, auth.RequireScope(ScopeWrite, ScopeAdmin))
	}

	branchGroup := api.Group("/branches")
	branchGroup.Use(auth.Authenticate)
	{
		// Every principal may read the branch directory (login pickers,
		// customer forms); only management may change it.
		branchGroup.GET("", r.params.BranchHandler.List, auth.RequireRoles(anyPrincipal), auth.RequireScope(ScopeRead, ScopeAdmin))
		branchGroup.GET("/:id", r.params.BranchHandler.Get, auth.RequireRoles(anyPrincipal), auth.RequireScope(ScopeRead, ScopeAdmin))
		branchGroup.POST("", r.params.BranchHandler.Create, auth.RequireRoles(anyManagement), auth.RequireScope(ScopeWrite, ScopeAdmin))
		branchGroup.PUT("/:id", r.params.BranchHandler.Update, auth.RequireRoles(anyManagement), auth.RequireScope(ScopeWrite, ScopeAdmin))
		branchGroup.DELETE("/:id", r.params.BranchHandler.Delete, auth.RequireRoles(adminOnly), auth.RequireScope(ScopeAdmin))
	}

	staffGroup := api.Group("/staff")
	staffGroup.Use(auth.Authenticate)
	staffGroup.Use(auth.RequireRoles(anyManagement))
	staffGroup.Use(auth.RequireScope(ScopeAdmin))
	{
		staffGroup.GET("", r.params.StaffHandler.List)
		staffGroup.GET("/:id", r.params.StaffHandler.Get)
		staffGroup.POST("", r.params.StaffHandler.Create)
		staffGroup.PUT("/:id", r.params.StaffHandler.Update)
		staffGroup.DELETE("/:id", r.params.StaffHandler.Delete)
	}

	userGroup := api.Group("/users")
	userGroup.Use(auth.Authenticate)
	userGroup.Use(auth.RequireRoles(adminOnly))
	userGroup.Use(auth.RequireScope(ScopeAdmin))
	{
		userGroup.GET("", r.params.UserHandler.List)
		userGroup.GET("/:id", r.params.UserHandler.Get)
		userGroup.POST("", r.params.UserHandler.Create)
		userGroup.PUT("/:id", r.params.UserHandler.Update)
		userGroup.DELETE("/:id", r.params.UserHandler.Delete)
	}

	apiKeyGroup := api.Group("/api-keys")
	apiKeyGroup.Use(auth.Authenticate)
	apiKeyGroup.Use(auth.RequireRoles(adminOnly))
	{
		apiKeyGroup.GET("", r.params.APIKeyHandler.List)
		apiKeyGroup.POST("", r.params.APIKeyHandler.Create)
		apiKeyGroup.DELETE("/:id", r.params.APIKeyHandler.Revoke)
	}

	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.Use(auth.Authenticate)
	dashboardGroup.Use(auth.RequireRoles(anyPrincipal))
	dashboardGroup.Use(auth.RequireScope(ScopeRead, ScopeAdmin))
	{
		dashboardGroup.GET("/stats", r.params.DashboardHandler.Stats)
		dashboardGroup.GET("/branch-stats", r.params.DashboardHandler.BranchStats, auth.RequireRoles(anyManagement))
		dashboardGroup.GET("/customer-trends", r.params.DashboardHandler.CustomerTrends, auth.RequireRoles(anyManagement))
		dashboardGroup.GET("/recent-customers", r.params.DashboardHandler.RecentCustomers)
	}
}
