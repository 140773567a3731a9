package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mediculture/mediculture-backend/config"
	httpapi "github.com/mediculture/mediculture-backend/internal/api/http"
	apimw "github.com/mediculture/mediculture-backend/internal/api/http/middleware"
	"github.com/mediculture/mediculture-backend/internal/auth"
	authmw "github.com/mediculture/mediculture-backend/internal/auth/middleware"
	"github.com/mediculture/mediculture-backend/internal/cache"
	"github.com/mediculture/mediculture-backend/internal/db"

	appointmentshttp "github.com/mediculture/mediculture-backend/internal/appointments/http"
	appointmentsrepo "github.com/mediculture/mediculture-backend/internal/appointments/repository"
	appointmentssvc "github.com/mediculture/mediculture-backend/internal/appointments/service"
	communityhttp "github.com/mediculture/mediculture-backend/internal/community/http"
	communityrepo "github.com/mediculture/mediculture-backend/internal/community/repository"
	communitysvc "github.com/mediculture/mediculture-backend/internal/community/service"
	medicineshttp "github.com/mediculture/mediculture-backend/internal/medicines/http"
	medicinesrepo "github.com/mediculture/mediculture-backend/internal/medicines/repository"
	medicinessvc "github.com/mediculture/mediculture-backend/internal/medicines/service"
	usershttp "github.com/mediculture/mediculture-backend/internal/users/http"
	usersrepo "github.com/mediculture/mediculture-backend/internal/users/repository"
	userssvc "github.com/mediculture/mediculture-backend/internal/users/service"
)

type RouterDeps struct {
	Config   *config.Config
	Logger   zerolog.Logger
	DB       *db.DB
	Cache    *cache.RedisCache // nil when disabled
	Verifier auth.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(apimw.RequestIDMiddleware(dep.Logger))
	r.Use(apimw.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(apimw.RateLimit(apimw.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	}))

	var (
		categories cache.Strings = cache.Noop{}
		cachePing  httpapi.Pinger
	)
	if dep.Cache != nil {
		categories = dep.Cache
		cachePing = dep.Cache
	}

	healthHandler := httpapi.NewHealthHandler(cfg.App.Version, dep.DB, cachePing)
	healthHandler.RegisterRoutes(r)

	requireAuth := authmw.FirebaseAuthMiddleware(dep.Verifier)
	optionalAuth := authmw.OptionalFirebaseAuth(dep.Verifier)
	maxLimit := cfg.App.MaxPageLimit
	database := dep.DB.Database

	api := r.Group("/api")

	userService := userssvc.NewUserService(usersrepo.NewUserRepository(database))
	usershttp.New(userService).Register(api.Group("/users"), requireAuth, optionalAuth)

	medicineService := medicinessvc.NewMedicineService(medicinesrepo.NewMedicineRepository(database), categories, maxLimit)
	medicineshttp.New(medicineService).Register(api.Group("/medicines"))

	appointmentService := appointmentssvc.NewAppointmentService(
		appointmentsrepo.NewAppointmentRepository(database), medicineService, maxLimit)
	appointmentshttp.New(appointmentService).Register(api.Group("/appointments"), optionalAuth)

	postService := communitysvc.NewPostService(communityrepo.NewPostRepository(database), maxLimit)
	communityhttp.New(postService).Register(api.Group("/community"), requireAuth)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", apimw.HeaderRequestID},
		ExposeHeaders: []string{apimw.HeaderRequestID},
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
