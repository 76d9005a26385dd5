// Package web wires the fiber application: middleware, handler routes,
// health endpoint and graceful shutdown.
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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/evination/backoffice/internal/authz"
	"github.com/evination/backoffice/internal/config"
	accesslog "github.com/evination/backoffice/internal/logger/adapter/fiber"
	"github.com/evination/backoffice/internal/web/handler/branch"
	"github.com/evination/backoffice/internal/web/handler/department"
	"github.com/evination/backoffice/internal/web/handler/login"
	"github.com/evination/backoffice/internal/web/handler/menu"
	"github.com/evination/backoffice/internal/web/handler/organization"
	"github.com/evination/backoffice/internal/web/handler/permission"
	"github.com/evination/backoffice/internal/web/handler/role"
	"github.com/evination/backoffice/internal/web/handler/roleright"
	"github.com/evination/backoffice/internal/web/handler/settings"
	"github.com/evination/backoffice/internal/web/handler/user"
)

// CheckAlivePath is the health endpoint used by load balancers.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *authz.Service
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

// WaitShutdown waits for a termination signal and drains before stopping.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access log
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	authService := authz.NewService(db)

	// init web service
	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}
	service.alive.Store(true)

	// health endpoint: 503 while draining so the LB stops routing here
	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	// init handlers (they register their own routes with permission checks)
	initHandlers(app, cfg, db, authService)

	return service
}

func initHandlers(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *authz.Service) {
	if err := login.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}
	if err := roleright.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init role rights handler")
	}
	if err := permission.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init permission handler")
	}
	if err := organization.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init organization handler")
	}
	if err := branch.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init branch handler")
	}
	if err := department.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init department handler")
	}
	if err := user.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init user handler")
	}
	if err := role.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init role handler")
	}
	if err := menu.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init menu handler")
	}
	if err := settings.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init settings handler")
	}
}
