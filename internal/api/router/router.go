package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recruit-tracker/config"
	"recruit-tracker/internal/api/handler"
	"recruit-tracker/internal/api/middleware"
	"recruit-tracker/pkg/jwt"
	"recruit-tracker/pkg/metrics"
)

// Options optional collaborators; nil Blacklist or Limiter turn those features off
type Options struct {
	Blacklist middleware.TokenChecker
	Limiter   middleware.RateLimiter
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// Setup builds the Gin engine with every route
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, opts Options) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── ops ──
	r.GET("/health", h.Health.Health)
	if cfg.Metrics.Enabled && opts.Metrics != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(opts.Metrics.Handler()))
	}

	const (
		admin   = "admin"
		manager = "manager"
	)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth, no token needed
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(opts.Limiter, cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow, opts.Metrics),
				h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, opts.Blacklist, opts.Logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			users := authorized.Group("/users")
			{
				users.PUT("/me/profile", h.User.UpdateProfile)
				users.PUT("/me/password", h.User.ChangePassword)
				users.GET("", middleware.RoleAuth(admin, manager), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth(admin, manager), h.User.GetUser)
				users.POST("", middleware.RoleAuth(admin), h.User.CreateUser)
				users.PUT("/:id", middleware.RoleAuth(admin), h.User.UpdateUser)
				users.PUT("/:id/active", middleware.RoleAuth(admin), h.User.SetActive)
			}

			teams := authorized.Group("/teams")
			{
				teams.GET("", h.Team.ListTeams)
				teams.GET("/:id", h.Team.GetTeam)
				teams.GET("/:id/members", h.Team.GetMembers)
				teams.POST("", middleware.RoleAuth(admin), h.Team.CreateTeam)
				teams.PUT("/:id", middleware.RoleAuth(admin), h.Team.UpdateTeam)
				teams.DELETE("/:id", middleware.RoleAuth(admin), h.Team.DeleteTeam)
			}

			daily := authorized.Group("/metrics")
			{
				daily.GET("/daily", h.Metric.GetDaily)
				daily.PUT("/daily", h.Metric.SaveDaily)
				daily.GET("/monthly", h.Metric.Monthly)
				daily.GET("/rankings", middleware.RoleAuth(admin, manager), h.Metric.Rankings)
			}

			goals := authorized.Group("/goals")
			{
				goals.GET("", h.Goal.ListGoals)
				goals.PUT("", middleware.RoleAuth(admin, manager), h.Goal.UpsertGoal)
				goals.DELETE("/:id", middleware.RoleAuth(admin, manager), h.Goal.DeleteGoal)
			}

			interviews := authorized.Group("/interviews")
			{
				interviews.GET("", h.Interview.ListInterviews)
				interviews.GET("/calendar.ics", h.Export.InterviewCalendar)
				interviews.POST("", h.Interview.CreateInterview)
				interviews.PUT("/:id/status", h.Interview.UpdateStatus)
			}

			deals := authorized.Group("/deals")
			{
				deals.GET("", h.Deal.ListDeals)
				deals.GET("/options", h.Deal.Options)
				deals.POST("", h.Deal.CreateDeal)
				deals.PUT("/:id/status", h.Deal.UpdateStatus)
			}

			placements := authorized.Group("/placements")
			{
				placements.GET("", h.Placement.ListPlacements)
				placements.POST("", h.Placement.CreatePlacement)
			}

			authorized.GET("/dashboard", h.Report.Dashboard)

			forecast := authorized.Group("/forecast")
			{
				forecast.POST("", h.Forecast.Compute)
				forecast.POST("/save", middleware.RoleAuth(admin, manager), h.Forecast.Save)
				forecast.GET("/settings", h.Forecast.GetSettings)
				forecast.PUT("/settings", middleware.RoleAuth(admin), h.Forecast.UpdateSettings)
			}

			yearly := authorized.Group("/yearly")
			{
				yearly.GET("", h.Report.Yearly)
				yearly.GET("/export.csv", h.Export.YearlyCSV)
				yearly.GET("/export.xlsx", h.Export.YearlyXLSX)
			}
		}
	}

	return r
}
