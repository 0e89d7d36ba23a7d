//go:build wireinject
// +build wireinject

package di

import (
	"tourizto/config"
	"tourizto/infras/jwt"
	"tourizto/infras/kafka"
	"tourizto/infras/mailer"
	"tourizto/infras/otel"
	"tourizto/infras/postgres"
	"tourizto/infras/redis"
	"tourizto/infras/s3"
	"tourizto/permissions"
	"tourizto/shared/cache"
	"tourizto/transport/http"
	"tourizto/transport/http/middleware"
	"tourizto/transport/http/router"

	"github.com/google/wire"

	authService "tourizto/internal/domains/auth/service"
	bookingReference "tourizto/internal/domains/booking/reference"
	bookingRepository "tourizto/internal/domains/booking/repository"
	bookingService "tourizto/internal/domains/booking/service"
	placeRepository "tourizto/internal/domains/place/repository"
	placeService "tourizto/internal/domains/place/service"
	userRepository "tourizto/internal/domains/user/repository"
	userService "tourizto/internal/domains/user/service"

	authHandler "tourizto/internal/handlers/auth"
	bookingHandler "tourizto/internal/handlers/booking"
	placeHandler "tourizto/internal/handlers/place"
	userHandler "tourizto/internal/handlers/user"
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
	s3.New,
	kafka.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingReference.New,
	bookingService.New,
)

var placeDomain = wire.NewSet(
	placeRepository.New,
	placeService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	placeDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	placeHandler.New,
	bookingHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
