package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/nidoapp/nido/internal/appointment"
	"github.com/nidoapp/nido/internal/auth"
	"github.com/nidoapp/nido/internal/config"
	"github.com/nidoapp/nido/internal/document"
	"github.com/nidoapp/nido/internal/logger"
	"github.com/nidoapp/nido/internal/metrics"
	"github.com/nidoapp/nido/internal/note"
	"github.com/nidoapp/nido/internal/pregnancy"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config             config.Config
	DB                 *pgxpool.Pool
	ObjectStore        *minio.Client
	Logger             *zap.Logger
	AuthService        *auth.Service
	DocumentService    *document.Service
	NoteService        *note.Service
	AppointmentService *appointment.Service
	PregnancyService   *pregnancy.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(deps.Logger))
	router.Use(metrics.Middleware())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	if deps.AuthService != nil {
		auth.NewHandler(deps.AuthService).RegisterRoutes(api)

		protected := api.Group("/")
		protected.Use(auth.AuthMiddleware(deps.AuthService))

		if deps.DocumentService != nil {
			document.RegisterRoutes(protected, deps.DocumentService)
		}
		if deps.NoteService != nil {
			note.RegisterRoutes(protected, deps.NoteService)
		}
		if deps.AppointmentService != nil {
			appointment.RegisterRoutes(protected, deps.AppointmentService)
		}
		if deps.PregnancyService != nil {
			pregnancy.RegisterRoutes(protected, deps.PregnancyService)
		}
	}

	return router
}
