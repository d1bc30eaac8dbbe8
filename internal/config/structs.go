package config

import (
	"time"

	"github.com/caraban-app/caraban-api/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Firebase  Firebase
	Kakao     Kakao
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool     // use clean path middleware to allow multi slash requests
	DisableRecover bool     // disable recover middleware
	Domain         string   // domain name for the webserver
	Port           int      // listening port for the webserver
	ShutDownTime   int      // wait time for shutdown
	URL            string   // base url for the webserver
	CORSOrigins    []string // allowed CORS origins; "*" allows any origin
}

// Firebase holds the Firebase project settings used for ID token verification.
type Firebase struct {
	// ProjectID is the Firebase project. ID tokens must be issued by
	// https://securetoken.google.com/<ProjectID> and carry it as audience.
	ProjectID string
}

// Kakao holds the Kakao profile endpoint settings.
type Kakao struct {
	// UserInfoURL is the profile endpoint. Empty means the public
	// https://kapi.kakao.com endpoint.
	UserInfoURL string
	// Timeout bounds the outbound profile fetch. Zero means 5 seconds.
	Timeout time.Duration
}
