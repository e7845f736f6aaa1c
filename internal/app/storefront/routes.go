// Package storefront предоставляет маршруты магазина.
package storefront

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/greenbowl/salad-storefront/internal/http/handlers/auth/login"
	signuphandler "github.com/greenbowl/salad-storefront/internal/http/handlers/auth/signup"
	"github.com/greenbowl/salad-storefront/internal/http/handlers/health"
	membershipcreate "github.com/greenbowl/salad-storefront/internal/http/handlers/membership/create"
	membershipget "github.com/greenbowl/salad-storefront/internal/http/handlers/membership/get"
	membershiplist "github.com/greenbowl/salad-storefront/internal/http/handlers/membership/list"
	membershipremove "github.com/greenbowl/salad-storefront/internal/http/handlers/membership/remove"
	membershipupdate "github.com/greenbowl/salad-storefront/internal/http/handlers/membership/update"
	membershipstatus "github.com/greenbowl/salad-storefront/internal/http/handlers/membership/updatestatus"
	ordercreate "github.com/greenbowl/salad-storefront/internal/http/handlers/order/create"
	orderlistall "github.com/greenbowl/salad-storefront/internal/http/handlers/order/listall"
	orderlistuser "github.com/greenbowl/salad-storefront/internal/http/handlers/order/listuser"
	orderstatus "github.com/greenbowl/salad-storefront/internal/http/handlers/order/updatestatus"
	saladcreate "github.com/greenbowl/salad-storefront/internal/http/handlers/salad/create"
	saladget "github.com/greenbowl/salad-storefront/internal/http/handlers/salad/get"
	saladlist "github.com/greenbowl/salad-storefront/internal/http/handlers/salad/list"
	saladremove "github.com/greenbowl/salad-storefront/internal/http/handlers/salad/remove"
	saladupdate "github.com/greenbowl/salad-storefront/internal/http/handlers/salad/update"
	"github.com/greenbowl/salad-storefront/internal/http/middlewarectx"
	authservice "github.com/greenbowl/salad-storefront/internal/services/auth"
	catalogservice "github.com/greenbowl/salad-storefront/internal/services/catalog"
	orderservice "github.com/greenbowl/salad-storefront/internal/services/order"
	userservice "github.com/greenbowl/salad-storefront/internal/services/user"
	"github.com/greenbowl/salad-storefront/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	catalogService *catalogservice.CatalogService,
	orderService *orderservice.OrderService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	// Открытые конечные точки
	r.Post("/auth/signup", signuphandler.New(logger, authService).ServeHTTP)
	r.Post("/auth/login", loginhandler.New(logger, authService).ServeHTTP)
	r.Get("/salads/all", saladlist.New(logger, catalogService, true).ServeHTTP)
	r.Get("/salads/get/{saladId}", saladget.New(logger, catalogService).ServeHTTP)
	r.Get("/memberships/all", membershiplist.New(logger, catalogService, true).ServeHTTP)
	r.Get("/memberships/get/{membershipId}", membershipget.New(logger, catalogService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/orders/create", ordercreate.New(logger, orderService).ServeHTTP)
		r.Get("/orders/user/{email}", orderlistuser.New(logger, orderService).ServeHTTP)

		// Администраторские конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAdmin(logger))

			r.Get("/orders/all", orderlistall.New(logger, orderService).ServeHTTP)
			r.Put("/orders/update-status/{orderId}", orderstatus.New(logger, orderService).ServeHTTP)

			r.Post("/salads/create", saladcreate.New(logger, catalogService).ServeHTTP)
			r.Get("/salads/list", saladlist.New(logger, catalogService, false).ServeHTTP)
			r.Put("/salads/update/{saladId}", saladupdate.New(logger, catalogService).ServeHTTP)
			r.Delete("/salads/remove/{saladId}", saladremove.New(logger, catalogService).ServeHTTP)

			r.Post("/memberships/create", membershipcreate.New(logger, catalogService).ServeHTTP)
			r.Get("/memberships/list", membershiplist.New(logger, catalogService, false).ServeHTTP)
			r.Put("/memberships/update/{membershipId}", membershipupdate.New(logger, catalogService).ServeHTTP)
			r.Delete("/memberships/remove/{membershipId}", membershipremove.New(logger, catalogService).ServeHTTP)
			r.Put("/memberships/update-status/{userId}", membershipstatus.New(logger, userService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
