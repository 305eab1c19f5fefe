package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"shiftboard-go/internal/config"
	"shiftboard-go/internal/db"
	employeedomain "shiftboard-go/internal/domain/employee"
	groupdomain "shiftboard-go/internal/domain/group"
	shiftdomain "shiftboard-go/internal/domain/shift"
	swapdomain "shiftboard-go/internal/domain/swap"
	userdomain "shiftboard-go/internal/domain/user"
	wagedomain "shiftboard-go/internal/domain/wage"
	"shiftboard-go/internal/repository/inmemory"
	employeerepo "shiftboard-go/internal/repository/postgres/employee"
	grouprepo "shiftboard-go/internal/repository/postgres/group"
	shiftrepo "shiftboard-go/internal/repository/postgres/shift"
	swaprepo "shiftboard-go/internal/repository/postgres/swap"
	userrepo "shiftboard-go/internal/repository/postgres/user"
	wagerepo "shiftboard-go/internal/repository/postgres/wage"
	redisrepo "shiftboard-go/internal/repository/redis"
	"shiftboard-go/internal/transport/httpserver"
	"shiftboard-go/internal/transport/httpserver/handler"
	commonhandler "shiftboard-go/internal/transport/httpserver/handler/common"
	shiftshandler "shiftboard-go/internal/transport/httpserver/handler/shifts"
	swapshandler "shiftboard-go/internal/transport/httpserver/handler/swaps"
	wageshandler "shiftboard-go/internal/transport/httpserver/handler/wages"
	"shiftboard-go/pkg/logger"
	authtoken "shiftboard-go/pkg/token"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	closers    []func() error
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	application := &App{cfg: cfg, db: dbConn, log: log}

	log.Info("app: initializing rate cache", "backend", cfg.Cache.Backend)
	cache := application.rateCache()

	log.Info("app: initializing router")
	router, err := NewRouter(cfg, dbConn, cache, log)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)
	return application, nil
}

// NewRouter wires repositories, services and handlers over dbConn. A nil
// cache disables rate caching.
func NewRouter(cfg config.Config, dbConn *gorm.DB, cache wagedomain.RateCache, log logger.Logger) (http.Handler, error) {
	tokens, err := authtoken.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	employees := employeedomain.NewService(employeerepo.NewPostgres(dbConn))
	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	groups := groupdomain.NewService(grouprepo.NewPostgres(dbConn))
	shifts := shiftdomain.NewService(shiftrepo.NewPostgres(dbConn), groups)
	swaps := swapdomain.NewService(swaprepo.NewPostgres(dbConn), groups)
	wages := wagedomain.NewServiceWithCache(wagerepo.NewPostgres(dbConn), shifts, employees, groups, cache, cfg.Cache.TTL)

	handlers := handler.New(
		commonhandler.New(users, employees, groups, tokens, log),
		shiftshandler.New(shifts, users, employees, log),
		wageshandler.New(wages, users, employees, groups, log),
		swapshandler.New(swaps, users, log),
	)
	return httpserver.NewRouter(cfg, handlers, log), nil
}

func (a *App) rateCache() wagedomain.RateCache {
	switch a.cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redisrepo.NewClient(redisrepo.Options{
			Addr:     a.cfg.Cache.RedisAddr,
			Password: a.cfg.Cache.RedisPassword,
			DB:       a.cfg.Cache.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		return redisrepo.NewRatesCache(client, a.log)
	case config.CacheBackendNone:
		return nil
	default:
		return inmemory.NewInMemoryRatesCache()
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.db == nil {
		return firstErr
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
