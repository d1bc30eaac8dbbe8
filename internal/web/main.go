package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/config"
	fiberlogger "github.com/caraban-app/caraban-api/internal/logger/adapter/fiber"
	"github.com/caraban-app/caraban-api/internal/user"
	"github.com/caraban-app/caraban-api/internal/web/handler/campsite"
	"github.com/caraban-app/caraban-api/internal/web/handler/health"
	"github.com/caraban-app/caraban-api/internal/web/handler/login"
	"github.com/caraban-app/caraban-api/internal/web/handler/reservation"
	"github.com/caraban-app/caraban-api/internal/web/handler/review"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
	"github.com/caraban-app/caraban-api/internal/web/response"
)

// BasePath is the prefix of every API route.
const BasePath = "/api"

// HealthPath is the full path of the health endpoint, excluded from access
// logging.
const HealthPath = BasePath + health.Path

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
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

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: the health endpoint returns 503
	// for the drain window so the LB removes this pod from active targets.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: returning 503 on %s for %d seconds",
			HealthPath, s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

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
func New(cfg *config.Config, db *gorm.DB, authn *auth.Authenticator, users *user.Service) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "Caraban API",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   response.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(cors.New(corsConfig(cfg.Webserver.CORSOrigins)))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:    cfg.Log,
		HealthURI: HealthPath,
	}))

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	api := app.Group(BasePath)

	health.Handler.Init(api, &service.alive)
	login.Handler.Init(api, authn)
	campsite.Handler.Init(api, db, users, authn)
	reservation.Handler.Init(api, db, authn)
	review.Handler.Init(api, db, authn)

	app.Use(func(c *fiber.Ctx) error {
		return response.Message(c, fiber.StatusNotFound, "Not Found")
	})

	return service
}

// corsConfig builds the CORS middleware config. A "*" entry allows any
// origin; fiber rejects the literal wildcard when credentials are enabled,
// so it is expressed as an origin function instead.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}

	for _, o := range origins {
		if o == "*" {
			c.AllowOriginsFunc = func(string) bool { return true }
			return c
		}
	}

	c.AllowOrigins = strings.Join(origins, ", ")

	return c
}
