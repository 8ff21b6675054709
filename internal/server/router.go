package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gropower-backend/internal/access"
	"gropower-backend/internal/config"
	"gropower-backend/internal/handler"
)

// Handlers groups everything NewRouter wires up.
type Handlers struct {
	Health       handler.HealthHandler
	Auth         handler.AuthHandler
	Profile      handler.ProfileHandler
	Products     handler.ProductHandler
	ProductAdmin handler.ProductAdminHandler
	Orders       handler.OrderHandler
	OrderAdmin   handler.OrderAdminHandler
	UserAdmin    handler.UserAdminHandler
	Tasks        handler.TaskHandler
	Messages     handler.MessageHandler
	Dashboard    handler.DashboardHandler
	Posts        handler.PostHandler
	Payment      handler.PaymentHandler
	Uploads      handler.UploadHandler
}

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config, logger *slog.Logger, profiles ProfileStore, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	// Public surface: storefront catalog, news, auth, payment details.
	h.Health.RegisterRoutes(r)
	h.Auth.RegisterRoutes(r)
	h.Products.RegisterRoutes(r)
	h.Posts.RegisterRoutes(r)
	h.Payment.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())
	h.Uploads.ServeStatic(r)

	// Commercial order surface. The whole chain redirects to the become-a-
	// distributor page: missing identity and wrong role alike end up there.
	r.Group(func(br chi.Router) {
		br.Use(AuthMiddleware(cfg.JWTSecret, "/distributors"))
		br.Use(AccessGate(profiles, "/distributors"))
		br.Use(RequireCapability(access.PlaceOrders, "/distributors"))
		h.Orders.RegisterRoutes(br)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret, "/"))

		// Reachable before onboarding completes.
		pr.Group(func(or chi.Router) {
			or.Use(OnboardingGate(profiles))
			h.Auth.RegisterProtectedRoutes(or)
			h.Profile.RegisterOnboardingRoutes(or)
		})

		// Everything below requires an active, onboarded account.
		pr.Group(func(gr chi.Router) {
			gr.Use(AccessGate(profiles, "/"))
			h.Profile.RegisterRoutes(gr)
			h.Messages.RegisterRoutes(gr)
			h.Uploads.RegisterRoutes(gr)

			gr.Group(func(sr chi.Router) {
				sr.Use(RequireCapability(access.WorkTasks, "/dashboard"))
				h.Tasks.RegisterRoutes(sr)
			})

			gr.Group(func(ar chi.Router) {
				ar.Use(RequireCapability(access.ManageStore, "/dashboard"))
				h.ProductAdmin.RegisterRoutes(ar)
				h.OrderAdmin.RegisterRoutes(ar)
				h.UserAdmin.RegisterRoutes(ar)
				h.Tasks.RegisterAdminRoutes(ar)
				h.Messages.RegisterAdminRoutes(ar)
				h.Dashboard.RegisterRoutes(ar)
				h.Posts.RegisterAdminRoutes(ar)
			})
		})
	})

	return r
}
