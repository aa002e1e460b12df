package routes

import (
	"log/slog"
	"net/http"
	"time"

	"capster-board/config"
	"capster-board/controllers"
	"capster-board/metrics"
	"capster-board/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything the router hands requests to.
type Dependencies struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer

	CORSOrigins []string
	// JWTSecret enables staff auth on /api when Auth is set.
	JWTSecret string

	Appointments *controllers.AppointmentController
	Customers    *controllers.CustomerController
	Masters      *controllers.MasterController
	Summary      *controllers.SummaryController
	Export       *controllers.ExportController
	Health       *controllers.HealthController
	Auth         *controllers.AuthController
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	corsConfig := cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(deps.CORSOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.Use(utils.RequestID())
	// Recovery sits inside the access log so a panic still gets logged and timed.
	r.Use(config.PerformanceLogger(deps.Logger, deps.Metrics))
	r.Use(config.Recovery(deps.Logger))

	r.GET("/health", deps.Health.Health)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	if deps.Auth != nil {
		r.POST("/auth/login", deps.Auth.Login)
		api.Use(utils.AuthMiddleware(deps.JWTSecret))
	}
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", deps.Appointments.ListAppointments)
			appointments.GET("/grouped", deps.Appointments.ListGroupedAppointments)
			appointments.GET("/:id", deps.Appointments.GetAppointment)
			appointments.POST("", deps.Appointments.CreateAppointment)
			appointments.PUT("", deps.Appointments.UpdateAppointment)
			appointments.PUT("/:id", deps.Appointments.UpdateAppointment)
			appointments.DELETE("/:id", deps.Appointments.DeleteAppointment)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", deps.Customers.SearchCustomers)
			customers.POST("", deps.Customers.CreateCustomer)
		}

		api.GET("/masters", deps.Masters.GetMasters)
		api.GET("/summary", deps.Summary.GetSummary)

		export := api.Group("/export")
		{
			export.POST("", deps.Export.ExportToday)
			export.GET("/summary", deps.Export.GetExportSummary)
			export.GET("/sheet", deps.Export.GetSheet)
			export.DELETE("/sheet", deps.Export.ClearSheet)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "route not found")
	})

	return r
}
