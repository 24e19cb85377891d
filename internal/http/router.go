// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, auth, CORS,
// security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/Lucho2590/LaburoYA/internal/config"
	"github.com/Lucho2590/LaburoYA/internal/domain"
	"github.com/Lucho2590/LaburoYA/internal/http/handlers"
	"github.com/Lucho2590/LaburoYA/internal/http/middleware"
	"github.com/Lucho2590/LaburoYA/internal/repo"
	"github.com/Lucho2590/LaburoYA/internal/services"
)

// engineStoreShim adapts the repository free functions to the
// services.EngineStore interface expected by the MatchEngine. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type engineStoreShim struct{}

// ListActiveOffersByCategory proxies repo.ListActiveOffersByCategory.
func (engineStoreShim) ListActiveOffersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.JobOffer, error) {
	return repo.ListActiveOffersByCategory(ctx, db, rubro, puesto)
}

// ListActiveWorkersByCategory proxies repo.ListActiveWorkersByCategory.
func (engineStoreShim) ListActiveWorkersByCategory(ctx context.Context, db *gorm.DB, rubro, puesto string) ([]domain.WorkerProfile, error) {
	return repo.ListActiveWorkersByCategory(ctx, db, rubro, puesto)
}

// CreateMatch proxies repo.CreateMatch.
func (engineStoreShim) CreateMatch(ctx context.Context, db *gorm.DB, m *domain.Match) error {
	return repo.CreateMatch(ctx, db, m)
}

// matchStoreShim adapts the repository free functions to the
// services.MatchStore interface expected by the MatchService.
type matchStoreShim struct{}

// GetMatch proxies repo.GetMatch.
func (matchStoreShim) GetMatch(ctx context.Context, db *gorm.DB, id string) (*domain.Match, error) {
	return repo.GetMatch(ctx, db, id)
}

// UpdateMatchStatus proxies repo.UpdateMatchStatus.
func (matchStoreShim) UpdateMatchStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	return repo.UpdateMatchStatus(ctx, db, id, status)
}

// ListMatchesByWorker proxies repo.ListMatchesByWorker.
func (matchStoreShim) ListMatchesByWorker(ctx context.Context, db *gorm.DB, workerID string) ([]domain.Match, error) {
	return repo.ListMatchesByWorker(ctx, db, workerID)
}

// ListMatchesByEmployer proxies repo.ListMatchesByEmployer.
func (matchStoreShim) ListMatchesByEmployer(ctx context.Context, db *gorm.DB, employerID string) ([]domain.Match, error) {
	return repo.ListMatchesByEmployer(ctx, db, employerID)
}

// GetWorkerProfile proxies repo.GetWorkerProfile.
func (matchStoreShim) GetWorkerProfile(ctx context.Context, db *gorm.DB, uid string) (*domain.WorkerProfile, error) {
	return repo.GetWorkerProfile(ctx, db, uid)
}

// GetEmployerProfile proxies repo.GetEmployerProfile.
func (matchStoreShim) GetEmployerProfile(ctx context.Context, db *gorm.DB, uid string) (*domain.EmployerProfile, error) {
	return repo.GetEmployerProfile(ctx, db, uid)
}

// GetJobOffer proxies repo.GetJobOffer.
func (matchStoreShim) GetJobOffer(ctx context.Context, db *gorm.DB, id string) (*domain.JobOffer, error) {
	return repo.GetJobOffer(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. Gzip compression
//  9. CORS and security headers
//  10. Auth (API routes only)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	engine := services.NewMatchEngine(db, engineStoreShim{}, func(err error) bool {
		return errors.Is(err, repo.ErrDuplicate)
	})
	userSvc := services.NewUserService(db)
	profileSvc := services.NewProfileService(db, engine)
	offerSvc := services.NewOfferService(db, engine)
	matchSvc := services.NewMatchService(db, matchStoreShim{})
	chatSvc := services.NewChatService(db)
	chatSvc.PreviewMaxRunes = cfg.ChatPreviewLen
	chatSvc.DefaultPageSize = cfg.ChatPageSize
	adminSvc := services.NewAdminService(db)
	h := handlers.New(userSvc, profileSvc, offerSvc, matchSvc, chatSvc, adminSvc)

	// Public API (authenticated)
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))
	{
		// Catalog
		api.GET("/catalog", h.Catalog)

		// Auth / accounts
		api.POST("/auth/register", h.Register)
		api.GET("/auth/me", h.Me)
		api.PATCH("/auth/secondary-role", h.SetSecondaryRole)

		// Workers
		api.POST("/workers", h.SaveWorkerProfile)
		api.GET("/workers/me", h.GetMyWorkerProfile)
		api.PATCH("/workers/status", h.SetWorkerStatus)

		// Employers
		api.POST("/employers", h.SaveEmployerProfile)
		api.GET("/employers/me", h.GetMyEmployerProfile)

		// Job offers
		api.POST("/job-offers", h.PublishOffer)
		api.GET("/job-offers/my-offers", h.ListMyOffers)
		api.PATCH("/job-offers/:id", h.PatchOffer)
		api.DELETE("/job-offers/:id", h.DeleteOffer)

		// Matches
		api.GET("/matches", h.ListMatches)
		api.PATCH("/matches/:id/status", h.UpdateMatchStatus)

		// Chats (":id" is the match id on POST /chats/:id, the chat id elsewhere)
		api.GET("/chats", h.ListChats)
		api.POST("/chats/:id", h.OpenChat)
		api.GET("/chats/:id/messages", h.ListMessages)
		api.POST("/chats/:id/messages", h.PostMessage)

		// Admin back-office
		admin := api.Group("/admin")
		{
			admin.GET("/stats", h.AdminStats)
			admin.GET("/users", h.AdminListUsers)
			admin.GET("/users/:uid", h.AdminGetUser)
			admin.PATCH("/users/:uid", h.AdminUpdateUser)
			admin.DELETE("/users/:uid", h.AdminDeleteUser)
			admin.GET("/job-offers", h.AdminListOffers)
			admin.GET("/matches", h.AdminListMatches)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
