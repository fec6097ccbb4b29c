package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/config"
	fiberlogger "github.com/address-book/address-book/internal/logger/adapter/fiber"
	"github.com/address-book/address-book/internal/web/handler"
	"github.com/address-book/address-book/internal/web/handler/contact"
	"github.com/address-book/address-book/internal/web/handler/contactgroup"
	"github.com/address-book/address-book/internal/web/handler/membership"
	"github.com/address-book/address-book/internal/web/handler/token"
	"github.com/address-book/address-book/internal/web/handler/user"
	authmiddleware "github.com/address-book/address-book/internal/web/middleware/auth"
)

const (
	// APIPath is the prefix of the REST API.
	APIPath = "/api"

	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the service down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown lets checkalive fail for ShutDownTime seconds, then stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// errorHandler renders errors that escaped the handlers, e.g. unknown routes,
// the way the API renders its own errors.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg := fe.Message
		if fe.Code == fiber.StatusNotFound {
			msg = handler.MsgNotFound
		}

		return handler.Detail(c, fe.Code, msg)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")

	return handler.Detail(c, fiber.StatusInternalServerError, handler.MsgServerError)
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			StrictRouting:  false,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			ErrorHandler:   errorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		User:          authmiddleware.Username,
	}))
	app.Use(requestMetrics())

	authService := auth.NewService(db)

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		authService:  authService,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(APIPath)

	// the token endpoint is the only one reachable without a token
	mustInit(&token.Handler, api, cfg, db)

	api.Use(authmiddleware.New(authService))

	mustInit(&contact.Handler, api, cfg, db)
	mustInit(&contactgroup.Handler, api, cfg, db)
	mustInit(&membership.Handler, api, cfg, db)
	mustInit(&user.Handler, api, cfg, db)

	return service
}

func mustInit(h handler.Service, router fiber.Router, cfg *config.Config, db *gorm.DB) {
	if err := h.Init(router, cfg, db); err != nil {
		log.Fatal().Err(err).Msg(handler.ErrNilACDFatalLogMsg)
	}
}
