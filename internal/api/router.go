package api

import (
	"net/http"
	"time"

	"playex_v2/internal/api/handler"
	"playex_v2/internal/app/service"
	"playex_v2/internal/common/security"
	"playex_v2/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authService *service.AuthService,
	identityService *service.IdentityService,
	catalogService *service.CatalogService,
	solveService *service.SolveService,
	userService *service.UserService,
	taskService *service.TaskService,
	practiceService *service.PracticeService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AppConfig.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Telegram-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Verifies a token when present, puts claims in context. Routes decide
	// whether identity is required (Authenticator) or optional.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		userHandler := handler.NewUserHandler(userService)
		v1.Route("/users", userHandler.RegisterRoutes)

		categoryHandler := handler.NewCategoryHandler(catalogService)
		v1.Route("/categories", categoryHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(catalogService)
		v1.Route("/problems", problemHandler.RegisterRoutes)

		solveHandler := handler.NewSolveHandler(solveService, identityService)
		v1.Route("/solve", solveHandler.RegisterRoutes)

		leaderboardHandler := handler.NewLeaderboardHandler(userService)
		v1.Route("/leaderboard", leaderboardHandler.RegisterRoutes)

		taskHandler := handler.NewTaskHandler(taskService)
		v1.Route("/tasks", taskHandler.RegisterRoutes)

		practiceHandler := handler.NewPracticeHandler(practiceService, identityService)
		v1.Route("/practice", practiceHandler.RegisterRoutes)
	})

	return r
}
