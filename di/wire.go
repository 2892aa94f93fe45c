//go:build wireinject
// +build wireinject

package di

import (
	"clinic/config"
	"clinic/infras/jwt"
	"clinic/infras/kafka"
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/infras/rabbitmq"
	"clinic/infras/redis"
	"clinic/infras/s3"
	activityRepository "clinic/internal/domains/activitylog/repository"
	activityService "clinic/internal/domains/activitylog/service"
	activitySink "clinic/internal/domains/activitylog/sink"
	adminRepository "clinic/internal/domains/admin/repository"
	adminService "clinic/internal/domains/admin/service"
	authService "clinic/internal/domains/auth/service"
	customerRepository "clinic/internal/domains/customer/repository"
	customerService "clinic/internal/domains/customer/service"
	diseaseRepository "clinic/internal/domains/disease/repository"
	diseaseService "clinic/internal/domains/disease/service"
	financeRepository "clinic/internal/domains/finance/repository"
	financeService "clinic/internal/domains/finance/service"
	orderRepository "clinic/internal/domains/order/repository"
	orderService "clinic/internal/domains/order/service"
	productRepository "clinic/internal/domains/product/repository"
	productService "clinic/internal/domains/product/service"
	reservationRepository "clinic/internal/domains/reservation/repository"
	reservationService "clinic/internal/domains/reservation/service"
	salesReportRepository "clinic/internal/domains/salesreport/repository"
	salesReportService "clinic/internal/domains/salesreport/service"
	activityHandler "clinic/internal/handlers/activitylog"
	adminHandler "clinic/internal/handlers/admin"
	authHandler "clinic/internal/handlers/auth"
	customerHandler "clinic/internal/handlers/customer"
	diseaseHandler "clinic/internal/handlers/disease"
	financeHandler "clinic/internal/handlers/finance"
	healthHandler "clinic/internal/handlers/health"
	productHandler "clinic/internal/handlers/product"
	reservationHandler "clinic/internal/handlers/reservation"
	salesReportHandler "clinic/internal/handlers/salesreport"
	"clinic/permissions"
	"clinic/shared/cache"
	"clinic/shared/transaction"
	"clinic/transport/http"
	"clinic/transport/http/middleware"
	"clinic/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	rabbitmq.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	transaction.New,
)

var activityDomain = wire.NewSet(
	activityRepository.New,
	activitySink.New,
	activityService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var productDomain = wire.NewSet(
	productRepository.New,
	productService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationRepository.NewHold,
	reservationService.New,
)

var financeDomain = wire.NewSet(
	financeRepository.New,
	financeService.New,
)

var salesReportDomain = wire.NewSet(
	salesReportRepository.New,
	salesReportService.New,
)

var diseaseDomain = wire.NewSet(
	diseaseRepository.New,
	diseaseRepository.NewCategory,
	diseaseService.New,
)

var domains = wire.NewSet(
	activityDomain,
	adminDomain,
	authDomain,
	productDomain,
	customerDomain,
	orderDomain,
	reservationDomain,
	financeDomain,
	salesReportDomain,
	diseaseDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	adminHandler.New,
	productHandler.New,
	customerHandler.New,
	reservationHandler.New,
	activityHandler.New,
	financeHandler.New,
	salesReportHandler.New,
	diseaseHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
