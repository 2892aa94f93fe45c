package router

import (
	"clinic/config"
	_ "clinic/docs" //nolint:revive
	"clinic/internal/handlers/activitylog"
	"clinic/internal/handlers/admin"
	"clinic/internal/handlers/auth"
	"clinic/internal/handlers/customer"
	"clinic/internal/handlers/disease"
	"clinic/internal/handlers/finance"
	"clinic/internal/handlers/health"
	"clinic/internal/handlers/product"
	"clinic/internal/handlers/reservation"
	"clinic/internal/handlers/salesreport"
	"clinic/shared/constant"
	"clinic/transport/http/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	Admin       admin.Handler
	Product     product.Handler
	Customer    customer.Handler
	Reservation reservation.Handler
	ActivityLog activitylog.Handler
	Finance     finance.Handler
	SalesReport salesreport.Handler
	Disease     disease.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(r.corsOptions()))
	}

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.Tracing)
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
		r.DomainHandlers.Product.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.ActivityLog.Router(routerGroup)
		r.DomainHandlers.Finance.Router(routerGroup)
		r.DomainHandlers.SalesReport.Router(routerGroup)
		r.DomainHandlers.Disease.Router(routerGroup)
	})
}

func (r *Router) corsOptions() cors.Options {
	corsConfig := r.Config.App.CORS

	methods := corsConfig.AllowedMethods
	if len(methods) == 0 {
		methods = []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		}
	}

	headers := corsConfig.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{
			constant.RequestHeaderAuthorization,
			constant.RequestHeaderContentType,
			constant.RequestHeaderAPIKey,
			constant.RequestHeaderRequestID,
		}
	}

	return cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{constant.RequestHeaderRateLimitRemaining, constant.RequestHeaderRequestID},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Config:         cfg,
	}
}
