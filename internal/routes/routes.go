package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/auth"
	"github.com/BruksfildServices01/agendamento-api/internal/config"
	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/handlers"
	"github.com/BruksfildServices01/agendamento-api/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/agendamento-api/internal/infra/repository"
	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/middleware"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
	"github.com/BruksfildServices01/agendamento-api/internal/storage"
	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agendamento-api/internal/usecase/appointment"
)

// Deps são os singletons montados em main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *zap.Logger
	Metrics   *metrics.Collector
	Tokens    *auth.TokenManager
	Blacklist auth.Blacklist
	Notifier  ucAppointment.Notifier
	Images    *storage.ServiceImages
	Clock     timezone.Clock

	// AppointmentRepo substitui o repositório gorm (testes, execução sem banco).
	AppointmentRepo domain.Repository
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Metrics(d.Metrics),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORS(d.Config.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := d.AppointmentRepo
	if appointmentRepo == nil {
		appointmentRepo = infraRepo.NewAppointmentGormRepository(d.DB)
	}

	mode, err := domain.ParseConflictMode(d.Config.ConflictMode)
	if err != nil {
		mode = domain.ConflictExact
	}

	// ======================================================
	// USE CASES
	// ======================================================
	appointments := ucAppointment.NewServices(ucAppointment.Deps{
		Repo:         appointmentRepo,
		Checker:      domain.NewConflictChecker(mode),
		Policy:       domain.RolePolicy{},
		DeletePolicy: domain.DeletePolicy{AllowPast: d.Config.AllowPastDelete},
		Clock:        d.Clock,
		Notifier:     d.Notifier,
		Log:          d.Log,
		Metrics:      d.Metrics,
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(appointments, d.Clock.Location())
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens, d.Blacklist, d.Log)
	personHandler := handlers.NewPersonHandler(d.DB, d.Config.CheckEmailDomain)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Images)
	notificationHandler := handlers.NewNotificationHandler(notification.NewStore(d.DB))

	authMW := middleware.AuthMiddleware(d.Tokens, d.Blacklist)
	loginLimiter := middleware.NewIPRateLimiter(d.Config.LoginRatePerMinute)

	// ======================================================
	// HEALTH / METRICS
	// ======================================================
	r.GET("/", func(c *gin.Context) {
		httpresp.Message(c, "API de agendamento funcionando")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	api.POST("/login", loginLimiter.RateLimit(), authHandler.Login)
	api.POST("/refresh-token", loginLimiter.RateLimit(), authHandler.Refresh)
	api.POST("/logout", authMW, authHandler.Logout)

	// ======================================================
	// PESSOAS
	// ======================================================
	api.POST("/pessoa", personHandler.Create)
	api.GET("/prestadores", personHandler.ListProviders)

	people := api.Group("", authMW)
	people.GET("/pessoa", middleware.RequireRoles(models.RoleAdmin), personHandler.List)
	people.GET("/clientes", middleware.RequireRoles(models.RoleAdmin, models.RoleProvider), personHandler.ListClients)
	people.GET("/pessoa/:id", personHandler.Get)
	people.PUT("/pessoa/:id", personHandler.Update)
	people.DELETE("/pessoa/:id", personHandler.Delete)
	people.PATCH("/pessoa/:id/role", middleware.RequireRoles(models.RoleAdmin), personHandler.UpdateRole)

	// ======================================================
	// SERVIÇOS
	// ======================================================
	api.GET("/servico", serviceHandler.List)
	api.GET("/servico/:id", serviceHandler.Get)

	services := api.Group("/servico", authMW, middleware.RequireRoles(models.RoleAdmin, models.RoleProvider))
	services.POST("", serviceHandler.Create)
	services.PUT("/:id", serviceHandler.Update)
	services.DELETE("/:id", serviceHandler.Delete)

	// ======================================================
	// AGENDAMENTOS
	// ======================================================
	ag := api.Group("/agendamento", authMW)
	ag.GET("", appointmentHandler.List)
	ag.GET("/:id", appointmentHandler.Get)
	ag.POST("", appointmentHandler.Create)
	ag.PUT("/:id", appointmentHandler.Update)
	ag.DELETE("/:id", appointmentHandler.Delete)

	// ======================================================
	// NOTIFICAÇÕES
	// ======================================================
	nt := api.Group("/notificacoes", authMW)
	nt.GET("/usuario/:usuarioId", notificationHandler.ListForUser)
	nt.PATCH("/usuario/:usuarioId/lidas", notificationHandler.MarkAllRead)
	nt.PATCH("/:id/lida", notificationHandler.MarkRead)
}
