// Package web builds the HTTP server: the middleware pipeline, the route
// groups under /api and the mode dependent handling of everything else.
package web

import (
	"context"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	fiberlogger "github.com/stockroom/stockroom/internal/logger/adapter/fiber"
	"github.com/stockroom/stockroom/internal/web/apierror"
	"github.com/stockroom/stockroom/internal/web/handler/upload"
)

const (
	// LivenessMessage is the answer of GET / outside production.
	LivenessMessage = "API is running..."

	// HealthPath answers 200 while serving and 503 while shutting down.
	HealthPath = "/healthz"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	indexFile = "index.html"
)

var (
	// ErrConfigNil is returned by New without config.
	ErrConfigNil = errors.New("config is nil")
	// ErrDBNil is returned by New without database.
	ErrDBNil = errors.New("db is nil")
)

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	alive atomic.Bool
	db    *gorm.DB
}

// New creates the web service with all middlewares and routes.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if db == nil {
		return nil, ErrDBNil
	}

	errorHandler := apierror.Handler(cfg.Mode)

	app := fiber.New(
		fiber.Config{
			AppName:        cfg.Title,
			BodyLimit:      bodyLimit(cfg.Webserver.BodyLimit, cfg.Webserver.UploadLimit),
			ReadBufferSize: cfg.Webserver.ReadBufferSize,
			ErrorHandler:   errorHandler,
			Immutable:      true,
		},
	)

	service := &Service{
		App: app,
		cfg: cfg,
		db:  db,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recoverer.New(recoverer.Config{EnableStackTrace: cfg.Mode.IsDevelopment()}))
	}

	if cfg.Webserver.Metrics {
		app.Use(metrics)
	}

	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Webserver.CORSAllowOrigins}))

	// request logging is a development aid only
	if cfg.Mode.IsDevelopment() {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Config:       cfg.Log,
			ErrorHandler: errorHandler,
		}))
	}

	app.Use(bodyParser(cfg.Webserver.BodyLimit))

	app.Get(HealthPath, service.health)

	if cfg.Webserver.Metrics {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get(upload.PublicPrefix+"*", static.New(cfg.Webserver.UploadDir))

	if err := mount(app, cfg, db, Groups()); err != nil {
		return nil, err
	}

	if cfg.Mode.IsProduction() {
		app.Get("/*", static.New(cfg.Webserver.StaticDir), service.spa)
	} else {
		app.Get("/", func(c fiber.Ctx) error {
			return c.SendString(LivenessMessage)
		})
	}

	app.Use(apierror.RouteNotFound)

	return service, nil
}

func (s *Service) health(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("ok")
}

// spa answers every GET which is no API call and no static file with the
// index document of the frontend, which does its own routing.
func (s *Service) spa(c fiber.Ctx) error {
	if isAPI(c.Path()) {
		return c.Next()
	}

	return c.SendFile(filepath.Join(s.cfg.Webserver.StaticDir, indexFile))
}

// isAPI reports whether p lies below APIPrefix. Routing is case
// insensitive, so is this check.
func isAPI(p string) bool {
	if len(p) < len(APIPrefix) || !strings.EqualFold(p[:len(APIPrefix)], APIPrefix) {
		return false
	}

	return len(p) == len(APIPrefix) || p[len(APIPrefix)] == '/'
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
// It returns when the server has stopped.
func (s *Service) Start(ctx context.Context, addr string) error {
	var (
		listenErr = make(chan error, 1)
		ready     = make(chan net.Addr, 1)
	)

	go func() {
		listenErr <- s.App.Listen(addr, fiber.ListenConfig{
			DisableStartupMessage: true,
			ListenerAddrFunc: func(a net.Addr) {
				ready <- a
			},
		})
	}()

	select {
	case err := <-listenErr:
		return errors.Wrap(err, "fiber listen error")
	case a := <-ready:
		log.Info().Msgf("Server running in %s mode on port %s", s.cfg.Mode, port(a.String()))
	}

	select {
	case err := <-listenErr:
		if err != nil {
			return errors.Wrap(err, "fiber listen error")
		}

		return nil
	case <-ctx.Done():
	}

	// readiness fails from here on, so load balancers stop sending traffic
	s.alive.Store(false)

	timeout := time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second
	log.Info().Dur("timeout", timeout).Msg("stopping http server ...")

	if err := s.App.ShutdownWithTimeout(timeout); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	if err := <-listenErr; err != nil {
		log.Error().Err(err).Msg("fiber listen error")
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}

func port(addr string) string {
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[i+1:]
	}

	return addr
}

// Addr returns the listen address of cfg.
func Addr(cfg *config.Config) string {
	return cfg.Webserver.Host + ":" + strconv.Itoa(cfg.Webserver.Port)
}
