// Package daemon wires the persistence layer, the identity providers and
// the web service into a runnable process.
package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/caraban-app/caraban-api/internal/config"
	"github.com/caraban-app/caraban-api/internal/db/dsn"
	"github.com/caraban-app/caraban-api/internal/db/models"
	"github.com/caraban-app/caraban-api/internal/identity"
	"github.com/caraban-app/caraban-api/internal/user"
	"github.com/caraban-app/caraban-api/internal/web"
	"github.com/caraban-app/caraban-api/internal/web/middleware/auth"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// OpenDB opens the configured database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Campsite{},
		&models.Reservation{},
		&models.Review{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	// declared on the interface type: assigning a nil *FirebaseVerifier
	// would make the disabled check in the middleware miss
	var firebase auth.TokenVerifier

	if cfg.Firebase.ProjectID != "" {
		verifier, err := identity.NewFirebaseVerifier(context.Background(), cfg.Firebase.ProjectID)
		if err != nil {
			return nil, err
		}

		firebase = verifier
	} else {
		log.Warn().Msg("firebase project id is not configured, firebase login is disabled")
	}

	kakao := identity.NewKakaoClient(cfg.Kakao.UserInfoURL, cfg.Kakao.Timeout)
	users := user.NewService(db)
	authn := auth.NewAuthenticator(firebase, kakao, users)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, authn, users),
	}, nil
}
